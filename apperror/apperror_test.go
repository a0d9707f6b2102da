package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNotFoundMessageNamesID(t *testing.T) {
	err := NotFound("Bairro", 999)
	assert.Equal(t, KindNotFound, err.Kind)
	assert.Contains(t, err.Error(), "999")
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("create station: %w", Invalid("nome é obrigatório"))
	assert.Equal(t, KindInvalidRequest, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestFromStore(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"gorm duplicated", gorm.ErrDuplicatedKey, KindConflict},
		{"gorm fk", fmt.Errorf("delete: %w", gorm.ErrForeignKeyViolated), KindConflict},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, KindConflict},
		{"mysql referenced", &mysql.MySQLError{Number: 1451, Message: "Cannot delete"}, KindConflict},
		{"mysql other", &mysql.MySQLError{Number: 1045, Message: "Access denied"}, KindInternal},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, KindConflict},
		{"sqlite fk", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), KindConflict},
		{"passthrough", Invalid("x"), KindInvalidRequest},
		{"unknown", errors.New("connection reset"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(FromStore(tt.err)))
		})
	}
	assert.NoError(t, FromStore(nil))
}

func TestConflictKeepsCause(t *testing.T) {
	cause := errors.New("duplicate")
	err := Conflict("registro duplicado", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ConflictMessage, err.Message)
}
