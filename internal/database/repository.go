package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avaldes/biblioteca/internal/entities"
)

// Model is what the generic repository can store: a record that knows its
// own table name, so the collection is fixed at construction time.
type Model interface {
	entities.Record
	TableName() string
}

// Repository is a uniform CRUD facade over one named table. One instance
// is constructed per entity kind; all five kinds share this implementation.
//
// Every operation is a single best-effort round trip to the store. There is
// no retry, no cache and no coordination between concurrent calls against
// the same id; last-write-wins is inherited from the store's UPDATE
// semantics.
type Repository[T Model] struct {
	db            *gorm.DB
	table         string
	upsertColumns []string
}

// NewRepository binds a repository to the table named by T. upsertColumns,
// when given, restricts which columns Upsert overwrites on conflict; the
// default overwrites every non-key column.
func NewRepository[T Model](db *gorm.DB, upsertColumns ...string) *Repository[T] {
	var t T
	return &Repository[T]{db: db, table: t.TableName(), upsertColumns: upsertColumns}
}

func (r *Repository[T]) wrap(op string, err error) *StoreError {
	return &StoreError{Op: op, Table: r.table, Err: err}
}

// List returns every record in store order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, r.wrap("list", err)
	}
	return out, nil
}

// Get returns the record with the given id, or (nil, nil) when no row
// matches. A missing record is an expected outcome, not an error.
func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap("get", err)
	}
	return &rec, nil
}

// Create inserts the record and returns it with the store-assigned id and
// creation timestamp filled in. Constraint violations (uniqueness, foreign
// key) surface as a StoreError carrying the store's message.
func (r *Repository[T]) Create(ctx context.Context, rec *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, r.wrap("create", err)
	}
	return rec, nil
}

// Update applies a partial patch to the record with the given id and
// returns the full updated record. An id with no matching row fails with a
// not-found StoreError rather than succeeding on zero rows.
func (r *Repository[T]) Update(ctx context.Context, id string, patch entities.Patch) (*T, error) {
	changes := patch.Changes()
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, r.wrap("update", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, r.wrap("update", ErrNotFound)
		}
	}
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, r.wrap("update", ErrNotFound)
	}
	return rec, nil
}

// Upsert inserts the record, or updates the existing row when the id is
// already present. Used for profiles, where a row may not exist yet for an
// already-authenticated identity.
func (r *Repository[T]) Upsert(ctx context.Context, rec *T) (*T, error) {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}
	if len(r.upsertColumns) > 0 {
		onConflict.UpdateAll = false
		onConflict.DoUpdates = clause.AssignmentColumns(r.upsertColumns)
	}
	if err := r.db.WithContext(ctx).Clauses(onConflict).Create(rec).Error; err != nil {
		return nil, r.wrap("upsert", err)
	}
	// Re-read so the caller sees the stored row, not the insert attempt
	// (the original creation timestamp survives a conflicting upsert).
	stored, err := r.Get(ctx, (*rec).GetID())
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, r.wrap("upsert", ErrNotFound)
	}
	return stored, nil
}

// Delete removes the record with the given id. Deleting an id with no
// matching row is indistinguishable from a one-row delete and succeeds
// silently.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return r.wrap("delete", err)
	}
	return nil
}
