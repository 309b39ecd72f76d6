package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"museum-backend/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Scope narrows a listing beyond column equality.
type Scope = func(*gorm.DB) *gorm.DB

// ListQuery selects one page of records.
type ListQuery struct {
	Page     int
	PerPage  int
	Includes []string
	// Filters are column equality conditions.
	Filters map[string]any
	Scopes  []Scope
}

// Repository is the persistence contract shared by every resource.
type Repository[T any] interface {
	List(ctx context.Context, q ListQuery) ([]T, int64, error)
	FindByID(ctx context.Context, id string, includes ...string) (*T, error)
	FindOne(ctx context.Context, conditions map[string]any, includes ...string) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id string, changes map[string]any) error
	Delete(ctx context.Context, id string) error
	SetFlag(ctx context.Context, id, column string, value, exclusive bool) error
	ClearFlag(ctx context.Context, column string) error
	Attach(ctx context.Context, id, relation string, related any) error
	Detach(ctx context.Context, id, relation string, related any) error
}

type repository[T any] struct {
	db      *database.Database
	timeout time.Duration
	cascade []string
}

// New returns a repository for T. Deleting a record also deletes the listed
// relations (has-many rows or many-to-many links).
func New[T any](db *database.Database, cascade ...string) Repository[T] {
	return &repository[T]{
		db:      db,
		timeout: db.GetQueryTimeout(),
		cascade: cascade,
	}
}

func (r *repository[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *repository[T]) List(ctx context.Context, q ListQuery) ([]T, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	base := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(new(T)).Scopes(q.Scopes...)
		return whereAll(tx, q.Filters)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []T
	err := preload(base(), q.Includes).
		Order("created_at ASC").
		Order("id ASC").
		Offset((q.Page - 1) * q.PerPage).
		Limit(q.PerPage).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *repository[T]) FindByID(ctx context.Context, id string, includes ...string) (*T, error) {
	return r.FindOne(ctx, map[string]any{"id": id}, includes...)
}

func (r *repository[T]) FindOne(ctx context.Context, conditions map[string]any, includes ...string) (*T, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	record := new(T)
	err := preload(whereAll(r.db.WithContext(ctx), conditions), includes).First(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *repository[T]) Create(ctx context.Context, entity *T) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *repository[T]) Update(ctx context.Context, id string, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := new(T)
		if err := tx.Where("id = ?", id).First(record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if len(r.cascade) > 0 {
			tx = tx.Select(r.cascade)
		}
		return tx.Delete(record).Error
	})
}

// SetFlag sets a boolean column on one record. When exclusive is set and the
// value is true, the flag is first cleared on every other record.
func (r *repository[T]) SetFlag(ctx context.Context, id, column string, value, exclusive bool) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if exclusive && value {
			err := tx.Model(new(T)).
				Where(clause.Eq{Column: clause.Column{Name: column}, Value: true}).
				Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: id}).
				Update(column, false).Error
			if err != nil {
				return err
			}
		}
		result := tx.Model(new(T)).Where("id = ?", id).Update(column, value)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *repository[T]) ClearFlag(ctx context.Context, column string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Model(new(T)).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: true}).
		Update(column, false).Error
}

// Attach links related to the record through a many-to-many relation.
// Linking twice is a no-op.
func (r *repository[T]) Attach(ctx context.Context, id, relation string, related any) error {
	return r.association(ctx, id, relation, func(a *gorm.Association) error {
		return a.Append(related)
	})
}

func (r *repository[T]) Detach(ctx context.Context, id, relation string, related any) error {
	return r.association(ctx, id, relation, func(a *gorm.Association) error {
		return a.Delete(related)
	})
}

func (r *repository[T]) association(ctx context.Context, id, relation string, fn func(*gorm.Association) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner := new(T)
		if err := tx.Where("id = ?", id).First(owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		association := tx.Model(owner).Association(relationName(relation))
		if association.Error != nil {
			return fmt.Errorf("relation %s: %w", relation, association.Error)
		}
		return fn(association)
	})
}

func whereAll(tx *gorm.DB, conditions map[string]any) *gorm.DB {
	keys := make([]string, 0, len(conditions))
	for k := range conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tx = tx.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: k}, Value: conditions[k]})
	}
	return tx
}

func preload(tx *gorm.DB, includes []string) *gorm.DB {
	for _, include := range includes {
		tx = tx.Preload(relationName(include))
	}
	return tx
}

// relationName maps an include name such as "translations" to the
// association field "Translations".
func relationName(include string) string {
	parts := strings.Split(include, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}
