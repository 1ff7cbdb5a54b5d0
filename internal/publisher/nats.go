package publisher

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

type NATSPublisher struct {
	nc      *nats.Conn
	subject string
	metrics PublisherMetrics
}

type PublisherMetrics interface {
	NotifyPublishedInc()
	NotifyErrInc()
	NATSSetConnected(connected bool)
}

func NewNATSPublisher(url, subject string, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("islandtransit-api"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, subject: subject, metrics: m}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// DatasetCounts mirrors the per-collection record counts of a load
type DatasetCounts struct {
	Stations  int `json:"stations"`
	Lines     int `json:"lines"`
	Schedules int `json:"schedules"`
	Fares     int `json:"fares"`
}

// DatasetLoadedMessage announces that a new dataset is being served
type DatasetLoadedMessage struct {
	SnapshotID string            `json:"snapshotId"`
	LoadedAt   time.Time         `json:"loadedAt"`
	Source     string            `json:"source"`
	Counts     DatasetCounts     `json:"counts"`
	Failed     bool              `json:"failed"`
	Failures   map[string]string `json:"failures,omitempty"`
}

// Encode marshals the message payload
func (m DatasetLoadedMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

func (p *NATSPublisher) PublishDatasetLoaded(msg DatasetLoadedMessage) error {
	b, err := msg.Encode()
	if err != nil {
		return err
	}
	err = p.nc.Publish(p.subject, b)
	if p.metrics != nil {
		if err != nil {
			p.metrics.NotifyErrInc()
		} else {
			p.metrics.NotifyPublishedInc()
		}
	}
	return err
}
