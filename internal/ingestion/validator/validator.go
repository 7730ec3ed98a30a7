// Package validator checks a batch of query records before parsing: ids must
// be unique so that object id numbering is unambiguous.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/ingestion"
	apperrors "github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/errors"
)

// ValidationError holds one message per offending query id.
type ValidationError struct {
	Fields map[int]string
}

func (e *ValidationError) Error() string {
	ids := make([]int, 0, len(e.Fields))
	for id := range e.Fields {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("query %d: %s", id, e.Fields[id]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// ValidateQueries reports duplicate query ids.
func ValidateQueries(records []ingestion.QueryRecord) error {
	errs := make(map[int]string)
	firstLine := make(map[int]int, len(records))
	for _, rec := range records {
		if line, dup := firstLine[rec.ID]; dup {
			errs[rec.ID] = fmt.Sprintf("duplicate id on lines %d and %d", line, rec.Line)
			continue
		}
		firstLine[rec.ID] = rec.Line
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
