package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsMatchesCopies(t *testing.T) {
	err := ErrInsufficientFunds.With("balance %s is below %s", "200000", "250000")
	wrapped := fmt.Errorf("request credit: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInsufficientFunds))
	assert.False(t, errors.Is(wrapped, ErrActiveCreditExists))
	assert.Equal(t, KindInsufficientFunds, KindOf(wrapped))
	assert.Equal(t, "balance 200000 is below 250000", err.Error())
}

func TestKindSentinels(t *testing.T) {
	assert.True(t, errors.Is(ErrCreditNotFound, &Error{Kind: KindNotFound}))
	assert.False(t, errors.Is(ErrCreditNotFound, ErrSessionNotFound))
	assert.True(t, errors.Is(Validation("bad amount"), ErrValidation))
	assert.True(t, errors.Is(InvalidTransition("credit", "pending", "disburse"), ErrInvalidTransition))
}

func TestFromDB(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"pgx unique", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"pq foreign key", &pq.Error{Code: "23503"}, KindValidation},
		{"gorm duplicated", gorm.ErrDuplicatedKey, KindConflict},
		{"other", errors.New("connection refused"), KindPersistence},
		{"already classified", ErrCreditNotFound, KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(FromDB(tt.err)))
		})
	}
	assert.Nil(t, FromDB(nil))
}

func TestPersistenceKeepsDriverMessage(t *testing.T) {
	err := FromDB(errors.New("dial tcp: connection refused"))
	assert.Contains(t, err.Error(), "dial tcp: connection refused")
	assert.True(t, errors.Is(err, ErrPersistence))
}

func TestNotFoundOr(t *testing.T) {
	assert.Same(t, ErrProjectNotFound, NotFoundOr(gorm.ErrRecordNotFound, ErrProjectNotFound))
	assert.Equal(t, KindPersistence, KindOf(NotFoundOr(errors.New("boom"), ErrProjectNotFound)))
}
