package models_test

import (
	"testing"

	"okultedarik/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Info(t *testing.T) {
	assert.Equal(t, "Ödendi", models.StatusPaid.Label())
	assert.Equal(t, "red", models.StatusCancelled.Color())
	assert.Equal(t, "Kargoda", models.StatusCargoShipped.Label())

	unknown := models.OrderStatus("LOST_IN_SPACE")
	assert.False(t, unknown.Known())
	assert.Equal(t, "LOST_IN_SPACE", unknown.Label())
	assert.Equal(t, "gray", unknown.Color())
	assert.False(t, unknown.IsCancellable())
	assert.False(t, unknown.IsRevenue())
}

func TestOrderStatus_CancellableSet(t *testing.T) {
	cancellable := map[models.OrderStatus]bool{
		models.StatusNew:            true,
		models.StatusPaymentPending: true,
		models.StatusPaid:           true,
		models.StatusPreparing:      true,
	}
	for _, s := range []models.OrderStatus{
		models.StatusNew, models.StatusPaymentPending, models.StatusPaid, models.StatusPreparing,
		models.StatusShipped, models.StatusDelivered, models.StatusCompleted, models.StatusCancelled,
	} {
		assert.Equal(t, cancellable[s], s.IsCancellable(), "status %s", s)
	}
}

func TestOrderStatus_RevenueSet(t *testing.T) {
	revenue := map[models.OrderStatus]bool{
		models.StatusPaid:      true,
		models.StatusPreparing: true,
		models.StatusShipped:   true,
		models.StatusDelivered: true,
		models.StatusCompleted: true,
	}
	for _, s := range []models.OrderStatus{
		models.StatusNew, models.StatusPaymentPending, models.StatusPaid, models.StatusPreparing,
		models.StatusShipped, models.StatusDelivered, models.StatusCompleted, models.StatusCancelled,
	} {
		assert.Equal(t, revenue[s], s.IsRevenue(), "status %s", s)
	}
}

func TestOrderStatus_SubStatesFollowTheirBase(t *testing.T) {
	assert.Equal(t, models.StatusShipped, models.StatusCargoShipped.Canonical())
	assert.Equal(t, models.StatusDelivered, models.StatusDeliveredToSch.Canonical())
	assert.Equal(t, models.StatusDelivered, models.StatusDeliveredCargo.Canonical())
	assert.Equal(t, models.StatusPaid, models.StatusInvoiced.Canonical())
	assert.Equal(t, models.StatusCancelled, models.StatusRefunded.Canonical())

	assert.True(t, models.StatusCargoShipped.IsRevenue())
	assert.True(t, models.StatusInvoiced.IsCancellable())
	assert.False(t, models.StatusRefunded.IsRevenue())
}

func TestCatalog(t *testing.T) {
	cat := models.Catalog()
	assert.Len(t, cat.Orders, len(models.AllOrderStatuses()))
	assert.Len(t, cat.CancelRequests, 3)
	assert.Len(t, cat.Payments, 2)
	assert.Equal(t, "NEW", cat.Orders[0].Code)
	assert.Equal(t, "Beklemede", models.CancelPending.Info().Label)
	assert.True(t, models.CancelRejected.IsDecision())
	assert.False(t, models.CancelPending.IsDecision())
}
