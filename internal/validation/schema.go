package validation

import (
	"context"
	"math"
	"strings"
)

// Kind is the type a field value must have, after coercion of query-string
// and JSON representations.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindInteger
	KindNumber
	KindBoolean
	KindDate
	KindArray
	KindFile
)

type presence int

const (
	presenceOptional presence = iota
	presenceRequired
	presenceFilled
	presenceProhibited
)

// Rule checks one constraint against an already type-coerced value and
// returns a non-empty message when the constraint is violated. A returned
// error aborts validation altogether.
type Rule func(ctx context.Context, v *Validator, attribute string, value any) (string, error)

// Field declares one allow-listed parameter.
type Field struct {
	name     string
	kind     Kind
	presence presence
	nullable bool
	def      any
	hasDef   bool
	rules    []Rule
	items    *Schema
	minItems int
	// raw keeps surrounding whitespace of string values.
	raw    bool
	unique *uniqueCheck
}

// uniqueCheck is the unique rule of a field together with its scope, so it
// can be rerun when only a scope field changes.
type uniqueCheck struct {
	rule  Rule
	scope []string
}

func newField(name string, kind Kind) *Field {
	return &Field{name: name, kind: kind}
}

func String(name string) *Field  { return newField(name, KindString) }
func Integer(name string) *Field { return newField(name, KindInteger) }
func Number(name string) *Field  { return newField(name, KindNumber) }
func Boolean(name string) *Field { return newField(name, KindBoolean) }
func Date(name string) *Field    { return newField(name, KindDate) }

// File declares a single multipart upload. Max on a file is in kilobytes.
func File(name string) *Field { return newField(name, KindFile) }

// Array declares a list of objects, each validated against items.
func Array(name string, items *Schema) *Field {
	f := newField(name, KindArray)
	f.items = items
	return f
}

// Prohibited declares a field that must be absent whatever its value.
func Prohibited(name string) *Field {
	f := newField(name, KindAny)
	f.presence = presenceProhibited
	return f
}

// Page is the 1-based page number of a listing.
func Page() *Field {
	return Integer("page").Min(1).Max(math.MaxInt32).Default(1)
}

// PerPage is the page size of a listing, bounded by max.
func PerPage(def, max int) *Field {
	return Integer("per_page").Min(1).Max(float64(max)).Default(def)
}

// Include is a comma-separated list of relation names drawn from allowed.
// Any unknown name fails the include field as a whole.
func Include(allowed ...string) *Field {
	return String("include").Rule(includeRule(allowed))
}

func (f *Field) Name() string { return f.name }

func (f *Field) Required() *Field {
	f.presence = presenceRequired
	return f
}

// Filled requires a non-empty value only when the field is present.
func (f *Field) Filled() *Field {
	f.presence = presenceFilled
	return f
}

func (f *Field) Nullable() *Field {
	f.nullable = true
	return f
}

func (f *Field) Default(value any) *Field {
	f.def = value
	f.hasDef = true
	return f
}

func (f *Field) Rule(rule Rule) *Field {
	f.rules = append(f.rules, rule)
	return f
}

// Raw keeps the value untrimmed. A blank value still counts as empty.
func (f *Field) Raw() *Field {
	f.raw = true
	return f
}

// MinItems requires an array to hold at least n elements.
func (f *Field) MinItems(n int) *Field {
	f.minItems = n
	return f
}

func (f *Field) clone() *Field {
	c := *f
	c.rules = append([]Rule(nil), f.rules...)
	return &c
}

// Schema is an ordered, closed set of fields.
type Schema struct {
	fields []*Field
	index  map[string]int
}

func NewSchema(fields ...*Field) *Schema {
	s := &Schema{index: make(map[string]int)}
	return s.add(fields...)
}

func (s *Schema) add(fields ...*Field) *Schema {
	for _, f := range fields {
		if i, ok := s.index[f.name]; ok {
			s.fields[i] = f
			continue
		}
		s.index[f.name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// With returns a copy of s with fields added, replacing same-named ones.
func (s *Schema) With(fields ...*Field) *Schema {
	c := s.copy()
	return c.add(fields...)
}

// Without returns a copy of s without the named fields.
func (s *Schema) Without(names ...string) *Schema {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	c := NewSchema()
	for _, f := range s.fields {
		if !drop[f.name] {
			c.add(f.clone())
		}
	}
	return c
}

// ForUpdate returns a copy of s where required fields become filled, so a
// partial update may omit them but may not blank them.
func (s *Schema) ForUpdate() *Schema {
	c := NewSchema()
	for _, f := range s.fields {
		f = f.clone()
		if f.presence == presenceRequired {
			f.presence = presenceFilled
		}
		c.add(f)
	}
	return c
}

func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

func (s *Schema) copy() *Schema {
	c := NewSchema()
	for _, f := range s.fields {
		c.add(f.clone())
	}
	return c
}

func label(attribute string) string {
	return strings.ReplaceAll(attribute, "_", " ")
}
