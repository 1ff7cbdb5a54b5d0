package models

// ServiceClass is a fare tier
type ServiceClass string

const (
	ClassFirst  ServiceClass = "first"
	ClassSecond ServiceClass = "second"
	ClassThird  ServiceClass = "third"
)

// Valid reports whether the class is one of the three tiers
func (c ServiceClass) Valid() bool {
	return c == ClassFirst || c == ClassSecond || c == ClassThird
}

// Prices is the price triplet of a fare, in whole currency units
type Prices struct {
	FirstClass  int `json:"first_class" validate:"gte=0"`
	SecondClass int `json:"second_class" validate:"gte=0"`
	ThirdClass  int `json:"third_class" validate:"gte=0"`
}

// For returns the price of a class. Third class is the economy fallback
// for an unset class
func (p Prices) For(class ServiceClass) int {
	switch class {
	case ClassFirst:
		return p.FirstClass
	case ClassSecond:
		return p.SecondClass
	default:
		return p.ThirdClass
	}
}

// Fare prices travel between exactly two stations, in that direction
type Fare struct {
	OriginStationID      StationID `json:"origin_station_id" validate:"required"`
	DestinationStationID StationID `json:"destination_station_id" validate:"required"`
	Prices               Prices    `json:"prices"`
}

// FareKey indexes fares by their ordered station pair
type FareKey struct {
	Origin      StationID
	Destination StationID
}
