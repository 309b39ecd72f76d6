package validation

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Max bounds string length, numeric value or array size, depending on the
// field kind.
func (f *Field) Max(n float64) *Field {
	return f.Rule(func(_ context.Context, _ *Validator, attribute string, value any) (string, error) {
		size, unit, ok := measure(value)
		if !ok || size <= n {
			return "", nil
		}
		return fmt.Sprintf("The %s field must not be greater than %s%s.", label(attribute), number(n), unit), nil
	})
}

// Min is the lower counterpart of Max.
func (f *Field) Min(n float64) *Field {
	return f.Rule(func(_ context.Context, _ *Validator, attribute string, value any) (string, error) {
		size, unit, ok := measure(value)
		if !ok || size >= n {
			return "", nil
		}
		return fmt.Sprintf("The %s field must be at least %s%s.", label(attribute), number(n), unit), nil
	})
}

// Size requires a string of exactly n characters.
func (f *Field) Size(n int) *Field {
	return f.Rule(func(_ context.Context, _ *Validator, attribute string, value any) (string, error) {
		s, ok := value.(string)
		if !ok || utf8.RuneCountInString(s) == n {
			return "", nil
		}
		return fmt.Sprintf("The %s field must be %d characters.", label(attribute), n), nil
	})
}

func (f *Field) UUID() *Field {
	return f.Rule(formatRule("uuid", "The %s field must be a valid UUID."))
}

func (f *Field) Email() *Field {
	return f.Rule(formatRule("email", "The %s field must be a valid email address."))
}

func (f *Field) URL() *Field {
	return f.Rule(formatRule("url", "The %s field must be a valid URL."))
}

// In requires one of values, compared case-sensitively.
func (f *Field) In(values ...string) *Field {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}
	return f.Rule(func(_ context.Context, _ *Validator, attribute string, value any) (string, error) {
		if s, ok := value.(string); ok && allowed[s] {
			return "", nil
		}
		return fmt.Sprintf("The selected %s is invalid.", label(attribute)), nil
	})
}

// Exists requires a row in table whose column equals the value.
func (f *Field) Exists(table, column string) *Field {
	return f.Rule(func(ctx context.Context, v *Validator, attribute string, value any) (string, error) {
		if v.opts.Lookup == nil {
			return "", fmt.Errorf("validation: exists rule on %s needs a lookup", attribute)
		}
		n, err := v.opts.Lookup.Count(ctx, table, map[string]any{column: value}, "")
		if err != nil {
			return "", fmt.Errorf("validation: exists %s.%s: %w", table, column, err)
		}
		if n == 0 {
			return fmt.Sprintf("The selected %s is invalid.", label(attribute)), nil
		}
		return "", nil
	})
}

// Unique requires that no other row in table has the same column value.
// Each scope name is both an input field and a column; its value is taken
// from the input, or from the current record on update. The record being
// updated is never counted against itself.
func (f *Field) Unique(table, column string, scope ...string) *Field {
	rule := func(ctx context.Context, v *Validator, attribute string, value any) (string, error) {
		if v.opts.Lookup == nil {
			return "", fmt.Errorf("validation: unique rule on %s needs a lookup", attribute)
		}
		conditions := map[string]any{column: value}
		for _, name := range scope {
			scoped, ok := v.scopeValue(name)
			if !ok {
				return "", nil
			}
			conditions[name] = scoped
		}
		n, err := v.opts.Lookup.Count(ctx, table, conditions, v.opts.IgnoreID)
		if err != nil {
			return "", fmt.Errorf("validation: unique %s.%s: %w", table, column, err)
		}
		if n > 0 {
			return fmt.Sprintf("The %s has already been taken.", label(attribute)), nil
		}
		return "", nil
	}
	f.unique = &uniqueCheck{rule: rule, scope: scope}
	return f.Rule(rule)
}

// Distinct requires the objects of an array to differ on the given keys.
func (f *Field) Distinct(keys ...string) *Field {
	return f.Rule(func(_ context.Context, _ *Validator, attribute string, value any) (string, error) {
		list, _ := value.([]any)
		seen := make(map[string]bool, len(list))
		for _, elem := range list {
			obj, ok := elem.(map[string]any)
			if !ok {
				continue
			}
			parts := make([]string, len(keys))
			for i, k := range keys {
				parts[i] = fmt.Sprint(obj[k])
			}
			key := strings.Join(parts, "\x00")
			if seen[key] {
				return fmt.Sprintf("The %s field has a duplicate value.", label(attribute)), nil
			}
			seen[key] = true
		}
		return "", nil
	})
}

// Image requires an uploaded file whose content sniffs as an image.
func (f *Field) Image() *Field {
	return f.Rule(func(_ context.Context, _ *Validator, attribute string, value any) (string, error) {
		file, ok := value.(*multipart.FileHeader)
		if ok && strings.HasPrefix(SniffContentType(file), "image/") {
			return "", nil
		}
		return fmt.Sprintf("The %s field must be an image.", label(attribute)), nil
	})
}

// SniffContentType detects a file's MIME type from its first bytes.
func SniffContentType(file *multipart.FileHeader) string {
	f, err := file.Open()
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	return http.DetectContentType(head[:n])
}

func formatRule(tag, format string) Rule {
	return func(_ context.Context, _ *Validator, attribute string, value any) (string, error) {
		if err := validate.Var(value, tag); err != nil {
			return fmt.Sprintf(format, label(attribute)), nil
		}
		return "", nil
	}
}

func includeRule(allowed []string) Rule {
	known := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		known[a] = true
	}
	return func(_ context.Context, _ *Validator, attribute string, value any) (string, error) {
		s, _ := value.(string)
		for _, name := range strings.Split(s, ",") {
			if !known[strings.TrimSpace(name)] {
				return fmt.Sprintf("The selected %s is invalid.", label(attribute)), nil
			}
		}
		return "", nil
	}
}

// ParseInclude splits a validated include value into relation names.
func ParseInclude(value any) []string {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	var names []string
	seen := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func number(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func measure(value any) (float64, string, bool) {
	switch v := value.(type) {
	case string:
		return float64(utf8.RuneCountInString(v)), " characters", true
	case int:
		return float64(v), "", true
	case float64:
		return v, "", true
	case []any:
		return float64(len(v)), " items", true
	case *multipart.FileHeader:
		return float64(v.Size) / 1024, " kilobytes", true
	}
	return 0, "", false
}
