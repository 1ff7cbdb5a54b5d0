package main

import (
	"log"

	"github.com/you/islandtransit/internal/metrics"
	"github.com/you/islandtransit/internal/publisher"
	"github.com/you/islandtransit/models"
)

// metricsObserver exports every load to Prometheus
type metricsObserver struct {
	collector *metrics.Collector
}

func (o metricsObserver) DatasetLoaded(ds *models.Dataset, status models.LoadStatus) {
	counts := ds.Counts()
	var failed []string
	for name := range status.Failures() {
		failed = append(failed, name)
	}
	o.collector.ObserveLoad(map[string]int{
		models.CollectionStations:  counts.Stations,
		models.CollectionLines:     counts.Lines,
		models.CollectionSchedules: counts.Schedules,
		models.CollectionPrices:    counts.Fares,
	}, failed, ds.LoadedAt)
}

// natsObserver announces every load on NATS
type natsObserver struct {
	pub *publisher.NATSPublisher
}

func (o natsObserver) DatasetLoaded(ds *models.Dataset, status models.LoadStatus) {
	if err := o.pub.PublishDatasetLoaded(datasetLoadedMessage(ds, status)); err != nil {
		log.Printf("Warning: failed to publish dataset %s: %v", ds.SnapshotID, err)
	}
}

func datasetLoadedMessage(ds *models.Dataset, status models.LoadStatus) publisher.DatasetLoadedMessage {
	counts := ds.Counts()
	msg := publisher.DatasetLoadedMessage{
		SnapshotID: ds.SnapshotID.String(),
		LoadedAt:   ds.LoadedAt,
		Source:     ds.Source,
		Counts: publisher.DatasetCounts{
			Stations:  counts.Stations,
			Lines:     counts.Lines,
			Schedules: counts.Schedules,
			Fares:     counts.Fares,
		},
		Failed: status.Failed,
	}
	if status.Failed {
		msg.Failures = status.Failures()
	}
	return msg
}
