package validation

import (
	"context"
	"fmt"
	"math"
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Lookup answers the store-backed rules. Count returns how many rows of
// table match every condition, ignoring the row whose id is excludeID.
type Lookup interface {
	Count(ctx context.Context, table string, conditions map[string]any, excludeID string) (int64, error)
}

type Options struct {
	Lookup Lookup
	// IgnoreID is the id of the record being updated.
	IgnoreID string
	// Current holds the stored values of the record being updated.
	Current map[string]any
}

// Validator runs one schema over one input.
type Validator struct {
	opts  Options
	input map[string]any
	errs  *Errors
}

var integerPattern = regexp.MustCompile(`^[+-]?\d+$`)

// Validate checks input against schema and returns the declared fields only,
// typed and trimmed. Every violation is collected before returning; the
// returned error is then an *Errors. Any other error comes from the lookup.
func Validate(ctx context.Context, schema *Schema, input map[string]any, opts Options) (map[string]any, error) {
	v := &Validator{opts: opts, input: input, errs: NewErrors()}
	values, err := v.object(ctx, schema, input, "")
	if err != nil {
		return nil, err
	}
	if v.errs.Len() > 0 {
		return nil, v.errs
	}
	return values, nil
}

func (v *Validator) object(ctx context.Context, schema *Schema, input map[string]any, prefix string) (map[string]any, error) {
	var unknown []string
	for key := range input {
		if !schema.Has(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		v.errs.Add(prefix+key, fmt.Sprintf("The %s field is not allowed.", label(prefix+key)))
	}

	values := make(map[string]any)
	for _, f := range schema.fields {
		attribute := prefix + f.name
		raw, present := input[f.name]
		if s, ok := raw.(string); ok {
			trimmed := strings.TrimSpace(s)
			switch {
			case trimmed == "":
				raw = nil
			case !f.raw:
				raw = trimmed
			}
		}

		if f.presence == presenceProhibited {
			if present {
				v.errs.Add(attribute, fmt.Sprintf("The %s field is prohibited.", label(attribute)))
			}
			continue
		}

		if !present {
			if f.presence == presenceRequired {
				v.errs.Add(attribute, fmt.Sprintf("The %s field is required.", label(attribute)))
			} else if f.hasDef {
				values[f.name] = f.def
			}
			continue
		}

		if raw == nil || isEmptyArray(raw) {
			if f.presence == presenceRequired || f.presence == presenceFilled {
				v.errs.Add(attribute, fmt.Sprintf("The %s field is required.", label(attribute)))
				continue
			}
		}
		if raw == nil {
			if f.nullable {
				values[f.name] = nil
			} else {
				v.errs.Add(attribute, typeMessage(f.kind, attribute))
			}
			continue
		}

		value, ok := coerce(f.kind, raw)
		if !ok {
			v.errs.Add(attribute, typeMessage(f.kind, attribute))
			continue
		}

		if f.kind == KindArray {
			list := value.([]any)
			if len(list) < f.minItems {
				v.errs.Add(attribute, fmt.Sprintf("The %s field must have at least %d items.", label(attribute), f.minItems))
			}
			if f.items != nil {
				items, err := v.array(ctx, f.items, list, attribute)
				if err != nil {
					return nil, err
				}
				value = items
			}
		}

		failed := false
		for _, rule := range f.rules {
			message, err := rule(ctx, v, attribute, value)
			if err != nil {
				return nil, err
			}
			if message != "" {
				v.errs.Add(attribute, message)
				failed = true
			}
		}
		if !failed {
			values[f.name] = value
		}
	}

	if err := v.rescope(ctx, schema, input, prefix); err != nil {
		return nil, err
	}
	return values, nil
}

// rescope reruns, on update, the unique rules of absent fields whose scope
// changes: moving a record to another scope may collide there even when the
// unique field itself is left as is. The stored value is checked.
func (v *Validator) rescope(ctx context.Context, schema *Schema, input map[string]any, prefix string) error {
	if v.opts.Current == nil {
		return nil
	}
	for _, f := range schema.fields {
		if f.unique == nil || len(f.unique.scope) == 0 {
			continue
		}
		if _, present := input[f.name]; present {
			continue
		}
		stored, ok := v.opts.Current[f.name]
		if !ok || stored == nil {
			continue
		}

		changed := false
		for _, name := range f.unique.scope {
			if _, present := input[name]; present {
				if v.errs.Has(prefix + name) {
					changed = false
					break
				}
				changed = true
			}
		}
		if !changed {
			continue
		}

		attribute := prefix + f.name
		message, err := f.unique.rule(ctx, v, attribute, stored)
		if err != nil {
			return err
		}
		if message != "" {
			v.errs.Add(attribute, message)
		}
	}
	return nil
}

func (v *Validator) array(ctx context.Context, items *Schema, list []any, attribute string) ([]any, error) {
	out := make([]any, 0, len(list))
	for i, elem := range list {
		path := fmt.Sprintf("%s.%d", attribute, i)
		obj, ok := elem.(map[string]any)
		if !ok {
			v.errs.Add(path, fmt.Sprintf("The %s field must be an object.", label(path)))
			continue
		}
		values, err := v.object(ctx, items, obj, path+".")
		if err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	return out, nil
}

// scopeValue resolves a uniqueness scope from the input, falling back to the
// record being updated.
func (v *Validator) scopeValue(name string) (any, bool) {
	if raw, ok := v.input[name]; ok && raw != nil {
		if s, isString := raw.(string); isString {
			return strings.TrimSpace(s), true
		}
		return raw, true
	}
	if raw, ok := v.opts.Current[name]; ok && raw != nil {
		return raw, true
	}
	return nil, false
}

func isEmptyArray(raw any) bool {
	list, ok := raw.([]any)
	return ok && len(list) == 0
}

func coerce(kind Kind, raw any) (any, bool) {
	switch kind {
	case KindAny:
		return raw, true
	case KindString:
		s, ok := raw.(string)
		return s, ok
	case KindInteger:
		switch v := raw.(type) {
		case float64:
			if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
				return int(v), true
			}
		case int:
			return v, true
		case string:
			if integerPattern.MatchString(v) {
				n, err := strconv.Atoi(v)
				return n, err == nil
			}
		}
		return nil, false
	case KindNumber:
		switch v := raw.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			n, err := strconv.ParseFloat(v, 64)
			if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
				return n, true
			}
		}
		return nil, false
	case KindBoolean:
		switch v := raw.(type) {
		case bool:
			return v, true
		case float64:
			if v == 0 || v == 1 {
				return v == 1, true
			}
		case string:
			switch v {
			case "1", "true":
				return true, true
			case "0", "false":
				return false, true
			}
		}
		return nil, false
	case KindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		return nil, false
	case KindArray:
		list, ok := raw.([]any)
		return list, ok
	case KindFile:
		file, ok := raw.(*multipart.FileHeader)
		return file, ok
	}
	return nil, false
}

func typeMessage(kind Kind, attribute string) string {
	name := label(attribute)
	switch kind {
	case KindString:
		return fmt.Sprintf("The %s field must be a string.", name)
	case KindInteger:
		return fmt.Sprintf("The %s field must be an integer.", name)
	case KindNumber:
		return fmt.Sprintf("The %s field must be a number.", name)
	case KindBoolean:
		return fmt.Sprintf("The %s field must be true or false.", name)
	case KindDate:
		return fmt.Sprintf("The %s field must be a valid date.", name)
	case KindArray:
		return fmt.Sprintf("The %s field must be an array.", name)
	case KindFile:
		return fmt.Sprintf("The %s field must be a file.", name)
	}
	return fmt.Sprintf("The %s field is invalid.", name)
}
