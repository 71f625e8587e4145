package model

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/betrhq/betr/go-data-server/internal/shared/database"
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
)

// Registry is the explicit entity type -> table mapping of a deployment.
// Two types mapping to one table are rejected when the second one registers.
type Registry struct {
	mu      sync.RWMutex
	byTable map[string]reflect.Type
	order   []Entity
	tables  []string
}

func NewRegistry() *Registry {
	return &Registry{byTable: make(map[string]reflect.Type)}
}

// Register records the table declared by entity, or the derived name when the declared
// one is empty. Registering the same type twice is a no-op.
func (r *Registry) Register(entity Entity) error {
	t := reflect.TypeOf(entity)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	table := entity.TableName()
	if table == "" {
		table = TableNameOf(t.Name())
	}
	if err := database.ValidateIdentifier(table); err != nil {
		return fmt.Errorf("register %s: %w", t.Name(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byTable[table]; ok {
		if existing == t {
			return nil
		}
		return fmt.Errorf("register %s: table %q already mapped to %s: %w", t.Name(), table, existing.Name(), sharedError.ErrConflict)
	}

	r.byTable[table] = t
	r.order = append(r.order, entity)
	r.tables = append(r.tables, table)
	return nil
}

// Declare registers T.
func Declare[T any, PT interface {
	*T
	Entity
}](r *Registry) error {
	return r.Register(PT(new(T)))
}

// Lookup returns the type registered for table.
func (r *Registry) Lookup(table string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byTable[table]
	return t, ok
}

// Tables returns the registered tables in registration order.
func (r *Registry) Tables() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.tables...)
}

// Models returns one zero value per registered type, in registration order,
// ready to hand to database.Migrate.
func (r *Registry) Models() []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	models := make([]any, 0, len(r.order))
	for _, e := range r.order {
		models = append(models, reflect.New(reflect.TypeOf(e).Elem()).Interface())
	}
	return models
}

// NewAppRegistry registers every entity of the application, referenced tables first.
func NewAppRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := Declare[Team](r); err != nil {
		return nil, err
	}
	if err := Declare[Player](r); err != nil {
		return nil, err
	}
	return r, nil
}
