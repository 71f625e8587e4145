package table

import (
	"context"
	"fmt"

	"github.com/betrhq/betr/go-data-server/internal/model"
	"github.com/betrhq/betr/go-data-server/internal/shared/database"
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/tabular"
)

// TableService exposes the registered tables through the gateway. Tables outside the
// registry are reported as not found.
type TableService struct {
	gateway  *database.Gateway
	registry *model.Registry
}

func NewTableService(gateway *database.Gateway, registry *model.Registry) *TableService {
	return &TableService{
		gateway:  gateway,
		registry: registry,
	}
}

func (s *TableService) List(ctx context.Context) []TableSummary {
	tables := s.registry.Tables()
	summaries := make([]TableSummary, 0, len(tables))
	for _, name := range tables {
		summaries = append(summaries, TableSummary{
			Name:   name,
			Exists: s.gateway.HasTable(ctx, name),
		})
	}
	return summaries
}

func (s *TableService) Describe(ctx context.Context, name string) (*database.TableHandle, error) {
	if err := s.registered(name); err != nil {
		return nil, err
	}
	return s.gateway.ReflectTable(ctx, name)
}

// Dump reads the whole table. Row count is not bounded.
func (s *TableService) Dump(ctx context.Context, name string) (*tabular.Frame, error) {
	if err := s.registered(name); err != nil {
		return nil, err
	}
	return s.gateway.SelectFrame(ctx, name)
}

func (s *TableService) registered(name string) error {
	if _, ok := s.registry.Lookup(name); !ok {
		return fmt.Errorf("등록되지 않은 테이블 %q: %w", name, sharedError.ErrNotFound)
	}
	return nil
}
