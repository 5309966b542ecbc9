// Package repository defines error types that are reused across multiple
// repositories. These values allow higher layers such as handlers to
// distinguish between different failure scenarios. ErrNotFound means the
// id did not resolve, while ValidationError carries field level messages
// for input the store refused (bad foreign keys, duplicates, weak
// passwords raised further up).
package repository

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup, update or delete targets an id
// that does not exist. Handlers should translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ValidationError lists one or more messages per offending field.
// Handlers translate it into HTTP 400.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError builds an error with a single message for field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// Add appends msg to the messages of field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// MySQL server error numbers the repositories react to.
const (
	errDuplicateEntry  = 1062
	errNoReferencedRow = 1452
)

func mysqlErrorNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

// IsDuplicate reports whether err is a unique key violation.
func IsDuplicate(err error) bool { return mysqlErrorNumber(err) == errDuplicateEntry }

// IsMissingReference reports whether err is a foreign key violation on
// insert or update.
func IsMissingReference(err error) bool { return mysqlErrorNumber(err) == errNoReferencedRow }
