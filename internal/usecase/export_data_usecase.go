package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/samber/do"
)

// FormatJSON is the only supported export/import format.
const FormatJSON = "json"

type ExportDataUsecase interface {
	Execute(ctx context.Context, format string) ([]byte, error)
}

type exportDataUsecaseImpl struct {
	eventStore *store.Store
	now        func() time.Time
}

// Execute serializes the full store as a single document. Non-JSON
// formats are rejected, not silently ignored.
func (e *exportDataUsecaseImpl) Execute(ctx context.Context, format string) ([]byte, error) {
	if format != FormatJSON {
		return nil, fmt.Errorf("format %q: %w", format, entity.ErrUnsupportedFormat)
	}
	snap := e.eventStore.Snapshot()
	payload := entity.Export{
		ExportedAt:  e.now().UTC(),
		Deployments: snap.Deployments,
		Incidents:   snap.Incidents,
		Commits:     snap.Commits,
	}
	return json.MarshalIndent(payload, "", "  ")
}

func NewExportDataUsecase(injector *do.Injector) (ExportDataUsecase, error) {
	return &exportDataUsecaseImpl{
		eventStore: do.MustInvoke[*store.Store](injector),
		now:        time.Now,
	}, nil
}
