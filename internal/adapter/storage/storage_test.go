package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyErr(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		conflict bool
	}{
		{"UniqueViolation", pgerrcode.UniqueViolation, true},
		{"SerializationFailure", pgerrcode.SerializationFailure, true},
		{"DeadlockDetected", pgerrcode.DeadlockDetected, true},
		{"ForeignKeyViolation", pgerrcode.ForeignKeyViolation, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tc.code}
			err := classifyErr(fmt.Errorf("query: %w", pgErr))
			assert.Equal(t, tc.conflict, errors.Is(err, domain.ErrConflict))
		})
	}

	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, classifyErr(nil))
	})

	t.Run("PlainError", func(t *testing.T) {
		errPlain := errors.New("broken pipe")
		assert.Equal(t, errPlain, classifyErr(errPlain))
	})
}

func TestPatchBuilder(t *testing.T) {
	t.Run("NonNilFieldsOnly", func(t *testing.T) {
		name := "Cool Shirt"
		stock := 50

		var b patchBuilder
		b.add("name", &name)
		b.add("description", (*string)(nil))
		b.add("total_in_stock", &stock)

		query, args := b.update("products", 7)
		assert.Equal(t,
			"UPDATE products SET name = $1, total_in_stock = $2,"+
				" updated_at = now() WHERE id = $3;",
			query,
		)
		require.Len(t, args, 3)
		assert.Equal(t, name, args[0])
		assert.Equal(t, stock, args[1])
		assert.EqualValues(t, 7, args[2])
	})

	t.Run("EmptyPatchTouchesRow", func(t *testing.T) {
		var b patchBuilder
		query, args := b.update("orders", 1)
		assert.Equal(t,
			"UPDATE orders SET updated_at = now() WHERE id = $1;", query,
		)
		require.Len(t, args, 1)
	})

	t.Run("StatusColumns", func(t *testing.T) {
		billing := domain.BillingPaid

		var b patchBuilder
		b.add("billing_status", &billing)
		b.add("shipping_status", (*domain.ShippingStatus)(nil))

		query, args := b.update("orders", 1)
		assert.Equal(t,
			"UPDATE orders SET billing_status = $1,"+
				" updated_at = now() WHERE id = $2;",
			query,
		)
		require.Len(t, args, 2)
		assert.Equal(t, "Paid", args[0])
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		var b patchBuilder
		assert.Panics(t, func() {
			b.add("broken", 42)
		})
	})
}
