// Package apperror holds the error taxonomy shared by services and controllers.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ValidationError carries per-field, human readable messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// Add appends a message for field and returns the receiver for chaining.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

// OrNil returns nil when no field collected a message.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func NewValidation(field, msg string) *ValidationError {
	return (&ValidationError{}).Add(field, msg)
}

// AuthorizationError means the actor may not perform the action. Fields lists
// submitted fields outside the actor's allow-list, when that was the cause.
type AuthorizationError struct {
	Action   string
	Resource string
	Fields   []string
}

func (e *AuthorizationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("forbidden: %s %s (fields: %s)", e.Action, e.Resource, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("forbidden: %s %s", e.Action, e.Resource)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne) || errors.Is(err, gorm.ErrRecordNotFound)
}

// FromDB translates driver errors into the taxonomy. Errors it does not
// recognise are returned unchanged.
func FromDB(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Message: "Data duplikat."}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ConflictError{Message: "Data masih direferensikan atau referensi tidak ditemukan."}
	}
	if code := pgCode(err); code != "" {
		switch code {
		case "23505":
			return &ConflictError{Message: "Data duplikat."}
		case "23503":
			return &ConflictError{Message: "Data masih direferensikan atau referensi tidak ditemukan."}
		}
	}
	return err
}

func pgCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
