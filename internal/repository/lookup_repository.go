package repository

import (
	"context"
	"sort"
	"time"

	"museum-backend/internal/database"

	"gorm.io/gorm/clause"
)

// LookupRepository backs the exists and unique validation rules.
type LookupRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewLookupRepository(db *database.Database) *LookupRepository {
	return &LookupRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

// Count compares values exactly, so string matches are case-sensitive on
// both PostgreSQL and SQLite.
func (r *LookupRepository) Count(ctx context.Context, table string, conditions map[string]any, excludeID string) (int64, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	keys := make([]string, 0, len(conditions))
	for k := range conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx := r.db.WithContext(ctx).Table(table)
	for _, k := range keys {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: k}, Value: conditions[k]})
	}
	if excludeID != "" {
		tx = tx.Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: excludeID})
	}

	var n int64
	err := tx.Count(&n).Error
	return n, err
}
