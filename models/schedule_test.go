package models

import "testing"

func TestDirection(t *testing.T) {
	tests := []struct {
		dir     Direction
		valid   bool
		inbound bool
		island  string
	}{
		{DirectionNorthbound, true, false, ""},
		{DirectionInbound, true, true, ""},
		{DirectionOutbound, true, false, ""},
		{"from-Lifou", true, true, "Lifou"},
		{"to-Maré", true, false, "Maré"},
		{"to-", false, false, ""},
		{"from-", false, false, ""},
		{"sideways", false, false, ""},
		{"", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			if got := tt.dir.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.dir.IsInbound(); got != tt.inbound {
				t.Errorf("IsInbound() = %v, want %v", got, tt.inbound)
			}
			island, _ := tt.dir.Island()
			if island != tt.island {
				t.Errorf("Island() = %q, want %q", island, tt.island)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("to-Lifou"); err != nil || d != "to-Lifou" {
		t.Errorf("ParseDirection(to-Lifou) = %q, %v", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestSchedule_RunsOnAndStopIndex(t *testing.T) {
	s := Schedule{
		DaysOfWeek: []string{"Monday", "friday"},
		Stops: []Stop{
			{StationID: "A", DepartureTime: ""},
			{StationID: "B", DepartureTime: "08:10"},
			{StationID: "A", DepartureTime: "09:00"},
		},
	}

	if !s.RunsOn("monday") || !s.RunsOn("") || s.RunsOn("sunday") {
		t.Error("RunsOn mismatch")
	}
	if got := s.StopIndex("A", 0); got != 0 {
		t.Errorf("StopIndex(A, 0) = %d, want 0", got)
	}
	if got := s.StopIndex("A", 1); got != 2 {
		t.Errorf("StopIndex(A, 1) = %d, want 2", got)
	}
	if got := s.StopIndex("C", 0); got != -1 {
		t.Errorf("StopIndex(C, 0) = %d, want -1", got)
	}
	if got := s.FirstDeparture(); got != "08:10" {
		t.Errorf("FirstDeparture() = %q, want 08:10", got)
	}
}
