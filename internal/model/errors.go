package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrMissingID          = errors.New("transaction id is required")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrDefaultCategory    = errors.New("default categories cannot be deleted")
	ErrDuplicateCategory  = errors.New("category already exists")
	ErrEmptyCategoryName  = errors.New("category name is empty")
)

// ValidationError lists the fields of a transaction that failed validation,
// keyed by field name with the failed rule as value.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s (%s)", f, e.Fields[f]))
	}
	return "invalid transaction: " + strings.Join(parts, ", ")
}

// Is lets errors.Is match ErrInvalidTransaction.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTransaction
}
