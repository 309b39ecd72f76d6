// Package requests declares the accepted parameters of every endpoint.
package requests

import (
	"museum-backend/internal/config"
	"museum-backend/internal/validation"
)

// Resource holds the schemas of one CRUD resource. Store is nil for
// resources that are not created through the API.
type Resource struct {
	Index  *validation.Schema
	Show   *validation.Schema
	Store  *validation.Schema
	Update *validation.Schema
	// Includes are the relations a record can be loaded with.
	Includes []string
	// Filters are the index fields applied as column conditions.
	Filters []string
}

type definition struct {
	includes []string
	filters  []*validation.Field
	store    *validation.Schema
	update   *validation.Schema
}

func (d definition) build(p config.PaginationConfig) Resource {
	index := validation.NewSchema(validation.Page(), validation.PerPage(p.DefaultPerPage, p.MaxPerPage))
	show := validation.NewSchema()
	if len(d.includes) > 0 {
		index = index.With(validation.Include(d.includes...))
		show = show.With(validation.Include(d.includes...))
	}

	r := Resource{
		Index:    index.With(d.filters...),
		Show:     show,
		Store:    d.store,
		Update:   d.update,
		Includes: d.includes,
	}
	for _, f := range d.filters {
		r.Filters = append(r.Filters, f.Name())
	}
	if r.Update == nil && r.Store != nil {
		r.Update = r.Store.ForUpdate().Without("translations").With(validation.Prohibited("id"))
	}
	return r
}

// Listing is the schema of a non-resource paginated listing.
func Listing(p config.PaginationConfig, includes ...string) *validation.Schema {
	s := validation.NewSchema(validation.Page(), validation.PerPage(p.DefaultPerPage, p.MaxPerPage))
	if len(includes) > 0 {
		s = s.With(validation.Include(includes...))
	}
	return s
}

// Empty accepts no parameters at all.
func Empty() *validation.Schema {
	return validation.NewSchema()
}

func internalName(table string, scope ...string) *validation.Field {
	return validation.String("internal_name").Required().Max(255).Unique(table, "internal_name", scope...)
}

func backwardCompatibility() *validation.Field {
	return validation.String("backward_compatibility").Nullable().Max(255)
}

func text(name string) *validation.Field {
	return validation.String(name).Nullable()
}

// reference is a nullable foreign key to a UUID-keyed table.
func reference(name, table string) *validation.Field {
	return validation.String(name).Nullable().UUID().Exists(table, "id")
}

// code is a nullable foreign key to a table keyed by a 3-letter code.
func code(name, table string) *validation.Field {
	return validation.String(name).Nullable().Size(3).Exists(table, "id")
}

func uuidFilter(name string) *validation.Field {
	return validation.String(name).UUID()
}

func codeFilter(name string) *validation.Field {
	return validation.String(name).Size(3)
}
