package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/samber/do"
)

type ImportDataUsecase interface {
	Execute(ctx context.Context, payload []byte, format string) error
}

type importDataUsecaseImpl struct {
	eventStore *store.Store
}

// Execute replaces the current store state with the imported document
// and persists it. There are no merge semantics.
func (i *importDataUsecaseImpl) Execute(ctx context.Context, payload []byte, format string) error {
	if format != FormatJSON {
		return fmt.Errorf("format %q: %w", format, entity.ErrUnsupportedFormat)
	}
	var doc entity.Export
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("decode import payload: %w", entity.ErrInvalid)
	}
	return i.eventStore.Replace(store.Snapshot{
		Deployments: doc.Deployments,
		Incidents:   doc.Incidents,
		Commits:     doc.Commits,
	})
}

func NewImportDataUsecase(injector *do.Injector) (ImportDataUsecase, error) {
	return &importDataUsecaseImpl{
		eventStore: do.MustInvoke[*store.Store](injector),
	}, nil
}
