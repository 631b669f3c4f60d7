package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T, quantity int) *Record {
	t.Helper()
	record, err := NewRecord(uuid.New(), uuid.New(), nil, quantity)
	require.NoError(t, err)
	return record
}

func TestNewRecord(t *testing.T) {
	_, err := NewRecord(uuid.Nil, uuid.New(), nil, 0)
	assert.Error(t, err)

	_, err = NewRecord(uuid.New(), uuid.Nil, nil, 0)
	assert.Error(t, err)

	_, err = NewRecord(uuid.New(), uuid.New(), nil, -1)
	assert.Error(t, err)

	record, err := NewRecord(uuid.New(), uuid.New(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, record.Quantity)
}

func TestRecord_AddRemove(t *testing.T) {
	record := newTestRecord(t, 10)

	require.NoError(t, record.Add(5))
	assert.Equal(t, 15, record.Quantity)

	require.NoError(t, record.Remove(15))
	assert.Equal(t, 0, record.Quantity)

	assert.Error(t, record.Remove(1), "stock must never go negative")
	assert.Error(t, record.Add(0))
	assert.Error(t, record.Remove(-3))
}

func TestRecord_SetQuantity(t *testing.T) {
	record := newTestRecord(t, 10)

	require.NoError(t, record.SetQuantity(0))
	assert.Equal(t, 0, record.Quantity)

	assert.Error(t, record.SetQuantity(-1))
}

func TestRecord_IsExpiringWithin(t *testing.T) {
	now := time.Now()
	record := newTestRecord(t, 10)

	assert.False(t, record.IsExpiringWithin(30*24*time.Hour, now), "no expiry date never expires")

	soon := now.Add(7 * 24 * time.Hour)
	record.ExpiryDate = &soon
	assert.True(t, record.IsExpiringWithin(30*24*time.Hour, now))
	assert.False(t, record.IsExpiringWithin(24*time.Hour, now))
}

func TestNewMovement(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()
	from := uuid.New()
	to := uuid.New()

	tests := []struct {
		name     string
		from     *uuid.UUID
		to       *uuid.UUID
		quantity int
		reason   MovementReason
		wantErr  bool
	}{
		{name: "receive into location", to: &to, quantity: 10, reason: ReasonPurchaseReceive},
		{name: "transfer", from: &from, to: &to, quantity: 5, reason: ReasonInternalTransfer},
		{name: "no endpoints", quantity: 5, reason: ReasonWaste, wantErr: true},
		{name: "zero quantity", to: &to, quantity: 0, reason: ReasonSale, wantErr: true},
		{name: "unknown reason", to: &to, quantity: 5, reason: MovementReason("GIFTED"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movement, err := NewMovement(productID, tt.from, tt.to, tt.quantity, tt.reason, userID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.reason, movement.Reason)
			assert.Equal(t, userID, movement.UserID)
		})
	}
}
