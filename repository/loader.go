package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/you/islandtransit/internal/timetable"
	"github.com/you/islandtransit/models"
)

// ErrNotFound is returned by lookups on an unknown id
var ErrNotFound = errors.New("not found")

// Loader builds a dataset from one backend. A failed collection is replaced
// by an empty one and recorded in the status; the returned error is only
// set when the load was cancelled, in which case the result is discarded
type Loader interface {
	Load(ctx context.Context) (*models.Dataset, models.LoadStatus, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := timetable.ParseClock(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
		return models.Direction(fl.Field().String()).Valid()
	})
	return v
}

// validateRecords checks every record of a collection, reporting the first
// invalid one by index
func validateRecords[T any](records []T) error {
	for i := range records {
		if err := validate.Struct(records[i]); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// finishStatus fills the dataset-level fields of a status
func finishStatus(ds *models.Dataset, status *models.LoadStatus) {
	status.SnapshotID = ds.SnapshotID
	status.Source = ds.Source
	status.LoadedAt = ds.LoadedAt
	status.Duplicates = ds.Duplicates()
}
