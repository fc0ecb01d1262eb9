package events

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventConstructors(t *testing.T) {
	e := NewReorderRequested(500, "dist-1")
	assert.Equal(t, TypeReorderRequested, e.Type)
	assert.Equal(t, "500", e.Attributes["quantity"])
	assert.Equal(t, "dist-1", e.Attributes["distributor"])
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.At.IsZero())

	e = NewPurchaseCompleted("buyer-1", 15, 150)
	assert.Equal(t, TypePurchaseCompleted, e.Type)
	assert.Equal(t, "15", e.Attributes["quantity"])
	assert.Equal(t, "150", e.Attributes["totalPrice"])

	e = NewCreditRatingUpdated("dist-1", 3)
	assert.Equal(t, "3", e.Attributes["rating"])
}

func TestSlogPublisher(t *testing.T) {
	pub := NewSlogPublisher(slog.Default())

	err := pub.Publish(context.Background(), NewInventoryUpdated(45))
	require.NoError(t, err)
}

func TestNoOpPublisher(t *testing.T) {
	pub := &NoOpPublisher{}

	err := pub.Publish(context.Background(), NewPaymentMade("dist-1", 2500, "PAYMENT"))
	require.NoError(t, err)
}
