package publisher

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDatasetLoadedMessage_Encode(t *testing.T) {
	msg := DatasetLoadedMessage{
		SnapshotID: "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		LoadedAt:   time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
		Source:     "./data",
		Counts:     DatasetCounts{Stations: 3, Lines: 2, Schedules: 5, Fares: 4},
		Failed:     true,
		Failures:   map[string]string{"prices": "status 404"},
	}

	b, err := msg.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	for _, key := range []string{"snapshotId", "loadedAt", "source", "counts", "failed", "failures"} {
		if _, ok := got[key]; !ok {
			t.Errorf("payload missing %q: %s", key, b)
		}
	}
	if got["loadedAt"] != "2024-03-01T06:00:00Z" {
		t.Errorf("loadedAt = %v", got["loadedAt"])
	}
	counts := got["counts"].(map[string]any)
	if counts["schedules"] != float64(5) {
		t.Errorf("counts.schedules = %v, want 5", counts["schedules"])
	}
}

func TestDatasetLoadedMessage_OmitsEmptyFailures(t *testing.T) {
	b, err := DatasetLoadedMessage{SnapshotID: "x"}.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["failures"]; ok {
		t.Errorf("failures should be omitted: %s", b)
	}
}
