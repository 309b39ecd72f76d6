package validation

import (
	"encoding/json"
	"fmt"
)

// Errors collects every violation of one request, keyed by attribute path.
// Attributes keep the order in which they first failed.
type Errors struct {
	fields map[string][]string
	order  []string
}

func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

func (e *Errors) Add(attribute, message string) {
	if _, ok := e.fields[attribute]; !ok {
		e.order = append(e.order, attribute)
	}
	e.fields[attribute] = append(e.fields[attribute], message)
}

func (e *Errors) Has(attribute string) bool {
	_, ok := e.fields[attribute]
	return ok
}

func (e *Errors) Get(attribute string) []string {
	return e.fields[attribute]
}

func (e *Errors) Len() int {
	return len(e.order)
}

// Attributes returns the failing attribute paths in failure order.
func (e *Errors) Attributes() []string {
	return append([]string(nil), e.order...)
}

func (e *Errors) Fields() map[string][]string {
	return e.fields
}

// Message summarizes the errors as the first message plus a count of the rest.
func (e *Errors) Message() string {
	if len(e.order) == 0 {
		return ""
	}
	total := 0
	for _, messages := range e.fields {
		total += len(messages)
	}
	first := e.fields[e.order[0]][0]
	switch rest := total - 1; rest {
	case 0:
		return first
	case 1:
		return fmt.Sprintf("%s (and 1 more error)", first)
	default:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	}
}

func (e *Errors) Error() string {
	return e.Message()
}

func (e *Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.fields)
}
