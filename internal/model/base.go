package model

import (
	"time"

	"github.com/betrhq/betr/go-data-server/internal/shared/database"
)

// Entity is the capability set the generic repository needs from a record type.
type Entity interface {
	TableName() string
	Identity() *int64
	Timestamps() (createdAt, updatedAt time.Time)
	SetTimestamps(createdAt, updatedAt time.Time)
	Touch(now time.Time)
}

// Base carries identity and audit fields shared by every table.
// GORM's automatic timestamps are off: the repository stamps them through SetTimestamps and Touch.
type Base struct {
	ID        *int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updatedAt"`
	UpdatedBy *string    `gorm:"column:updated_by" json:"updatedBy,omitempty"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
	DeletedBy *string    `gorm:"column:deleted_by" json:"deletedBy,omitempty"`
}

// NewBase returns an unpersisted Base created at now.
func NewBase(now time.Time) Base {
	return Base{CreatedAt: now, UpdatedAt: now}
}

func (b *Base) Identity() *int64 {
	return b.ID
}

func (b *Base) Timestamps() (time.Time, time.Time) {
	return b.CreatedAt, b.UpdatedAt
}

// SetTimestamps overwrites both audit times, e.g. with the values a stored row holds.
func (b *Base) SetTimestamps(createdAt, updatedAt time.Time) {
	b.CreatedAt = createdAt
	b.UpdatedAt = updatedAt
}

// Touch refreshes UpdatedAt. The result is always strictly later than both the
// previous UpdatedAt and CreatedAt. CreatedAt is never changed; an unstamped Base
// gets UpdatedAt = now.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() && b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
		return
	}

	floor := b.UpdatedAt
	if floor.Before(b.CreatedAt) {
		floor = b.CreatedAt
	}
	if !now.After(floor) {
		now = floor.Add(time.Microsecond)
	}
	b.UpdatedAt = now
}

// SoftDelete marks the record deleted by the given actor. The row stays in place.
func (b *Base) SoftDelete(by string, now time.Time) {
	b.DeletedAt = &now
	b.DeletedBy = &by
	b.UpdatedBy = &by
}

func (b *Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// BaseColumns returns the column specs of the Base fields, for tables created
// through the gateway that back an entity.
func BaseColumns() []database.ColumnSpec {
	return []database.ColumnSpec{
		{Name: "id", Type: database.BigInt, PrimaryKey: true},
		{Name: "created_at", Type: database.Timestamp},
		{Name: "updated_at", Type: database.Timestamp},
		{Name: "updated_by", Type: database.Text, Nullable: true},
		{Name: "deleted_at", Type: database.Timestamp, Nullable: true},
		{Name: "deleted_by", Type: database.Text, Nullable: true},
	}
}
