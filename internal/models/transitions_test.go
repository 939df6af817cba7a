package models_test

import (
	"testing"

	"okultedarik/internal/models"

	"github.com/stretchr/testify/assert"
)

var baseTable = map[models.OrderStatus][]models.OrderStatus{
	models.StatusNew:            {models.StatusPaid, models.StatusCancelled},
	models.StatusPaymentPending: {models.StatusPaid, models.StatusCancelled},
	models.StatusPaid:           {models.StatusPreparing, models.StatusShipped, models.StatusCancelled},
	models.StatusPreparing:      {models.StatusShipped, models.StatusDelivered, models.StatusCancelled},
	models.StatusShipped:        {models.StatusDelivered},
	models.StatusDelivered:      {models.StatusCompleted},
	models.StatusCompleted:      {},
	models.StatusCancelled:      {},
}

func TestCanTransition_MatchesTable(t *testing.T) {
	for from := range baseTable {
		allowed := map[models.OrderStatus]bool{}
		for _, to := range baseTable[from] {
			allowed[to] = true
		}
		for to := range baseTable {
			assert.Equal(t, allowed[to], models.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, terminal := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled, models.StatusRefunded} {
		for _, to := range models.AllOrderStatuses() {
			assert.False(t, models.CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
		assert.Empty(t, models.NextStatuses(terminal))
	}
}

func TestCanTransition_SubStates(t *testing.T) {
	assert.True(t, models.CanTransition(models.StatusCargoShipped, models.StatusDeliveredCargo))
	assert.True(t, models.CanTransition(models.StatusPreparing, models.StatusCargoShipped))
	assert.True(t, models.CanTransition(models.StatusDeliveredToSch, models.StatusCompleted))
	assert.False(t, models.CanTransition(models.StatusCargoShipped, models.StatusCompleted))
	assert.True(t, models.CanTransition(models.StatusInvoiced, models.StatusPreparing))
	assert.False(t, models.CanTransition(models.StatusPaid, models.StatusInvoiced))
}

func TestCanTransition_UnknownStatuses(t *testing.T) {
	assert.False(t, models.CanTransition("BOGUS", models.StatusPaid))
	assert.False(t, models.CanTransition(models.StatusNew, "BOGUS"))
}

func TestNextStatuses(t *testing.T) {
	next := models.NextStatuses(models.StatusShipped)
	assert.Equal(t, []models.OrderStatus{
		models.StatusDelivered, models.StatusDeliveredToSch, models.StatusDeliveredCargo,
	}, next)
}
