package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
	"okultedarik/internal/services"
)

func TestPaymentService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := services.NewPaymentService(repositories.NewGORMPaymentRepository(env.db), env.auditTrail, env.log)

	payment := &models.SchoolPayment{SchoolID: env.fixture.School.ID, Amount: decimal.RequireFromString("1200.00"), Description: "Eylul"}
	require.NoError(t, svc.CreatePayment(ctx, payment, admin))
	assert.Equal(t, models.PaymentPending, payment.Status)

	paid, err := svc.MarkPaid(ctx, payment.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = svc.MarkPaid(ctx, payment.ID, admin)
	assert.ErrorIs(t, err, services.ErrAlreadyProcessed)

	list, err := svc.ListPayments(ctx, models.PaymentFilter{SchoolID: env.fixture.School.ID, Status: models.PaymentPaid})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeletePayment(ctx, payment.ID, admin))
	_, err = svc.GetPayment(ctx, payment.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePayment(ctx, payment.ID, admin), services.ErrNotFound)

	entries := env.auditFor(t, models.EntityPayment, payment.ID)
	require.Len(t, entries, 3)
	assert.Equal(t, models.AuditDelete, entries[0].Action)
}

func TestPaymentService_CreateRejectsNonPositive(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewPaymentService(repositories.NewGORMPaymentRepository(env.db), env.auditTrail, env.log)

	err := svc.CreatePayment(context.Background(), &models.SchoolPayment{SchoolID: env.fixture.School.ID, Amount: decimal.Zero}, admin)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
