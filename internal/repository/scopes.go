package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Launched keeps the records whose launch date has passed.
func Launched(db *gorm.DB) *gorm.DB {
	return db.Where("launch_date IS NOT NULL AND launch_date <= ?", time.Now().UTC())
}

// Pivot describes one side of a many-to-many join table.
type Pivot struct {
	Table string
	// Column references the listed records, Other the record they belong to.
	Column string
	Other  string
}

var (
	ItemsOfTag = Pivot{Table: "item_tag", Column: "item_id", Other: "tag_id"}
	TagsOfItem = Pivot{Table: "item_tag", Column: "tag_id", Other: "item_id"}
)

// LinkedTo keeps the records joined to id through the pivot table.
func (p Pivot) LinkedTo(id string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("id IN (SELECT %s FROM %s WHERE %s = ?)", p.Column, p.Table, p.Other), id)
	}
}
