package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidRequest
	KindValidation
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// ConflictMessage is the fixed message returned for data-integrity violations.
const ConflictMessage = "Operação não permitida devido a violação de integridade de dados."

// Error is the application error carried from services to handlers.
type Error struct {
	Kind    Kind
	Message string
	// Details is an optional human readable cause safe to return to clients.
	Details string
	// Fields holds per-field messages for KindValidation.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a missing entity by id, e.g. "Bairro não encontrado(a) com ID: 7".
func NotFound(entity string, id uint) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s não encontrado(a) com ID: %d", entity, id)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Invalid(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

func Invalidf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// Validation carries field-level shape errors keyed by JSON field name.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Erro de validação", Fields: fields}
}

func Conflict(details string, err error) *Error {
	return &Error{Kind: KindConflict, Message: ConflictMessage, Details: details, Err: err}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Ocorreu um erro interno no servidor.", Err: err}
}

// KindOf returns the kind of err, KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As extracts the *Error from err, wrapping unknown errors as internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

const (
	mysqlDuplicateEntry    = 1062
	mysqlRowIsReferenced   = 1451
	mysqlNoReferencedRow   = 1452
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgNotNullViolation     = "23502"
	sqliteUniqueFailed     = "UNIQUE constraint failed"
	sqliteForeignKeyFailed = "FOREIGN KEY constraint failed"
)

// FromStore translates store errors into application errors. Errors that are already
// application errors pass through untouched; nil stays nil.
func FromStore(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundf("Registro não encontrado")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict("registro duplicado", err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return Conflict("violação de chave estrangeira", err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return Conflict("registro duplicado", err)
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return Conflict("violação de chave estrangeira", err)
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Conflict("registro duplicado", err)
		case pgForeignKeyViolation:
			return Conflict("violação de chave estrangeira", err)
		case pgNotNullViolation:
			return Conflict("valor obrigatório ausente", err)
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, sqliteUniqueFailed):
		return Conflict("registro duplicado", err)
	case strings.Contains(msg, sqliteForeignKeyFailed):
		return Conflict("violação de chave estrangeira", err)
	}

	return Internal(err)
}
