// Package repository implements generic CRUD over one entity table.
//
// A Repository is instantiated once per entity type and holds no connection state;
// every operation receives the session handle (*gorm.DB) to run against. Operations
// are synchronous and perform no locking beyond the single transaction each write
// runs in.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/betrhq/betr/go-data-server/internal/model"
	"github.com/betrhq/betr/go-data-server/internal/shared/database"
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/shared/logger"
	sharedValidator "github.com/betrhq/betr/go-data-server/internal/shared/validator"
	"github.com/betrhq/betr/go-data-server/internal/tabular"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const createdAtColumn = "created_at"

// Criteria is an exact-match filter keyed by column name (or Go field name).
type Criteria map[string]any

func (c Criteria) String() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Repository is the persistence model of entity type T.
type Repository[T any, PT interface {
	*T
	model.Entity
}] struct {
	schema   *schema.Schema
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
}

// New parses the schema of T and returns its repository.
func New[T any, PT interface {
	*T
	model.Entity
}](log *slog.Logger) (*Repository[T, PT], error) {
	if log == nil {
		log = slog.Default()
	}

	s, err := schema.Parse(PT(new(T)), &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("parse schema of %T: %w", new(T), err)
	}

	v, err := sharedValidator.NewEntityValidator()
	if err != nil {
		return nil, err
	}

	return &Repository[T, PT]{
		schema:   s,
		validate: v,
		log:      log.With("table", s.Table),
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}, nil
}

// TableName returns the table the repository reads and writes.
func (r *Repository[T, PT]) TableName() string {
	return r.schema.Table
}

// PrimaryKeys returns the primary key columns of T.
func (r *Repository[T, PT]) PrimaryKeys() []string {
	return append([]string(nil), r.schema.PrimaryFieldDBNames...)
}

// Columns returns every column of T in declaration order.
func (r *Repository[T, PT]) Columns() []string {
	return append([]string(nil), r.schema.DBNames...)
}

// GetOrCreate returns the first row matching criteria, ordered by primary key. When no
// row matches it builds an entity from criteria and inserts it in the same transaction.
//
// There is no locking: two concurrent callers with the same criteria can both insert
// unless the table carries a unique constraint, in which case the loser gets ErrPersistence.
func (r *Repository[T, PT]) GetOrCreate(ctx context.Context, db *gorm.DB, criteria Criteria) (PT, bool, error) {
	log := logger.FromContext(ctx, r.log)

	where, err := r.normalize(criteria)
	if err != nil {
		return nil, false, fmt.Errorf("get or create %s %s: %w", r.schema.Table, criteria, err)
	}

	var (
		entity  PT
		created bool
	)
	err = database.WithTransaction(ctx, db, func(tx *gorm.DB) error {
		found, err := r.first(tx, where)
		if err != nil {
			return err
		}
		if found != nil {
			entity = found
			return nil
		}

		entity, err = r.build(ctx, where)
		if err != nil {
			return err
		}
		r.stamp(entity)

		if err := tx.Create(entity).Error; err != nil {
			return fmt.Errorf("insert: %w: %w", sharedError.ErrPersistence, err)
		}
		created = true
		return nil
	})
	if err != nil {
		log.Error("조회 또는 생성 실패", "criteria", criteria.String(), "error", err)
		return nil, false, database.Wrap(fmt.Sprintf("get or create %s %s", r.schema.Table, criteria), err)
	}

	if created {
		log.Info("행 생성 완료", "id", idOf(entity), "criteria", criteria.String())
	}
	return entity, created, nil
}

// Get returns the first row matching criteria, or nil when none does.
func (r *Repository[T, PT]) Get(ctx context.Context, db *gorm.DB, criteria Criteria) (PT, error) {
	where, err := r.normalize(criteria)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", r.schema.Table, criteria, err)
	}

	entity, err := r.first(db.WithContext(ctx), where)
	if err != nil {
		return nil, database.Wrap(fmt.Sprintf("get %s %s", r.schema.Table, criteria), err)
	}
	return entity, nil
}

// Save inserts entity when it has no identity yet, otherwise updates its row.
//
// An insert stamps both audit times. An update keeps the stored created_at, whatever the
// entity carries, and moves updated_at strictly past the stored value; a missing row is
// ErrNotFound. On failure the entity's audit times are left as they were passed in.
func (r *Repository[T, PT]) Save(ctx context.Context, db *gorm.DB, entity PT) (PT, error) {
	if entity == nil {
		return nil, fmt.Errorf("save %s: nil entity: %w", r.schema.Table, sharedError.ErrValidation)
	}

	log := logger.FromContext(ctx, r.log)
	insert := entity.Identity() == nil
	createdAt, updatedAt := entity.Timestamps()

	err := database.WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if insert {
			r.stamp(entity)
			return tx.Create(entity).Error
		}
		return r.update(tx, entity)
	})
	if err != nil {
		entity.SetTimestamps(createdAt, updatedAt)
		log.Error("저장 실패", "id", idOf(entity), "insert", insert, "error", err)
		return nil, database.Wrap(fmt.Sprintf("save %s", r.schema.Table), err)
	}

	log.Debug("행 저장 완료", "id", idOf(entity), "insert", insert)
	return entity, nil
}

// update rewrites every column of entity's row except created_at.
func (r *Repository[T, PT]) update(tx *gorm.DB, entity PT) error {
	pk := r.schema.PrioritizedPrimaryField
	if pk == nil {
		return fmt.Errorf("%s has no single primary key: %w", r.schema.Table, sharedError.ErrUnsupported)
	}

	id := *entity.Identity()
	stored, err := r.first(tx, map[string]any{pk.DBName: id})
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("no row with %s=%d: %w", pk.DBName, id, sharedError.ErrNotFound)
	}

	entity.SetTimestamps(stored.Timestamps())
	entity.Touch(r.now())
	return tx.Omit(createdAtColumn).Save(entity).Error
}

// stamp sets both audit times of an unpersisted entity to the same reading.
func (r *Repository[T, PT]) stamp(entity PT) {
	now := r.now()
	entity.SetTimestamps(now, now)
}

// TableExists reports whether name exists, whatever its row count.
func (r *Repository[T, PT]) TableExists(ctx context.Context, db *gorm.DB, name string) bool {
	return database.NewGateway(db, "", r.log).HasTable(ctx, name)
}

// FetchAllRows loads the whole table into a frame. The read is unbounded.
func (r *Repository[T, PT]) FetchAllRows(ctx context.Context, db *gorm.DB, name string) (*tabular.Frame, error) {
	frame, err := database.NewGateway(db, "", r.log).SelectFrame(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return frame, nil
}

// Validate converts every record of frame into an entity. Conversion stops at the first
// record with a type mismatch or a failed field constraint, and the returned
// *sharedError.ValidationError names that record. Columns unknown to T are ignored.
// Nothing is written to the database.
func (r *Repository[T, PT]) Validate(ctx context.Context, frame *tabular.Frame) ([]PT, error) {
	log := logger.FromContext(ctx, r.log)
	if frame == nil {
		log.Error("검증 실패", "reason", "nil frame")
		return nil, &sharedError.ValidationError{Reason: "nil frame"}
	}

	entities := make([]PT, 0, frame.Len())
	for i, row := range frame.Rows {
		entity, vErr := r.decodeRow(ctx, frame.Columns, row)
		if vErr == nil {
			vErr = r.check(ctx, entity)
		}
		if vErr != nil {
			vErr.Index = i
			log.Error("검증 실패", "record", i, "column", vErr.Column, "reason", vErr.Reason)
			return nil, vErr
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (r *Repository[T, PT]) decodeRow(ctx context.Context, columns []string, row []any) (PT, *sharedError.ValidationError) {
	entity := PT(new(T))
	target := reflect.ValueOf(entity).Elem()

	for j, column := range columns {
		if j >= len(row) || row[j] == nil {
			continue
		}
		field := r.schema.LookUpField(column)
		if field == nil || field.DBName == "" {
			continue
		}
		if err := setField(ctx, field, target, row[j]); err != nil {
			return nil, &sharedError.ValidationError{
				Column: field.DBName,
				Reason: fmt.Sprintf("cannot use %T as %s", row[j], field.FieldType),
				Err:    err,
			}
		}
	}
	return entity, nil
}

func (r *Repository[T, PT]) check(ctx context.Context, entity PT) *sharedError.ValidationError {
	err := r.validate.StructCtx(ctx, entity)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		column := fe.Field()
		if field := r.schema.LookUpField(fe.StructField()); field != nil {
			column = field.DBName
		}
		reason := "failed " + fe.Tag()
		if fe.Tag() == "required" {
			reason = "missing required field"
		} else if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return &sharedError.ValidationError{Column: column, Reason: reason, Err: err}
	}
	return &sharedError.ValidationError{Reason: err.Error(), Err: err}
}

// normalize maps criteria keys to column names. Unknown keys are ErrValidation.
func (r *Repository[T, PT]) normalize(criteria Criteria) (map[string]any, error) {
	where := make(map[string]any, len(criteria))
	for key, value := range criteria {
		field := r.schema.LookUpField(key)
		if field == nil || field.DBName == "" {
			return nil, fmt.Errorf("unknown column %q: %w", key, sharedError.ErrValidation)
		}
		where[field.DBName] = value
	}
	return where, nil
}

func (r *Repository[T, PT]) first(tx *gorm.DB, where map[string]any) (PT, error) {
	entity := PT(new(T))
	query := tx
	if len(where) > 0 {
		query = query.Where(where)
	}

	err := query.First(entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// build creates an unpersisted entity holding the criteria values.
func (r *Repository[T, PT]) build(ctx context.Context, where map[string]any) (PT, error) {
	entity := PT(new(T))
	target := reflect.ValueOf(entity).Elem()

	for column, value := range where {
		if value == nil {
			continue
		}
		if err := setField(ctx, r.schema.LookUpField(column), target, value); err != nil {
			return nil, fmt.Errorf("column %q: %w: %w", column, sharedError.ErrValidation, err)
		}
	}
	return entity, nil
}

// setField assigns through the GORM field setter, which converts between driver types.
func setField(ctx context.Context, field *schema.Field, target reflect.Value, value any) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("set %s: %v", field.DBName, p)
		}
	}()
	return field.Set(ctx, target, value)
}

func idOf(entity model.Entity) any {
	if id := entity.Identity(); id != nil {
		return *id
	}
	return nil
}
