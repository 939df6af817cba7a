package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
	"okultedarik/internal/services"
	"okultedarik/internal/testutil"
)

var (
	admin  = models.Actor{ID: "admin-1", Type: models.ActorAdmin}
	parent = models.Actor{ID: "5551234567", Type: models.ActorParent}
)

// MockAuditRecorder is a mock implementation of services.AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Create(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	bodies [][]byte
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	p.bodies = append(p.bodies, body)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

type testEnv struct {
	db         *gorm.DB
	fixture    testutil.Fixture
	orders     *repositories.GORMOrderRepository
	requests   *repositories.GORMCancelRequestRepository
	audits     *repositories.GORMAuditRepository
	events     *recordingPublisher
	logs       *observer.ObservedLogs
	log        *zap.Logger
	orderSvc   *services.OrderService
	cancelSvc  *services.CancellationService
	auditTrail *services.AuditTrail
	transactor *repositories.GORMTransactor
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithRecorder(t, nil)
}

// newTestEnvWithRecorder wires services over an in-memory database. A nil recorder
// writes audit entries to the database.
func newTestEnvWithRecorder(t *testing.T, recorder services.AuditRecorder) *testEnv {
	t.Helper()
	return newTestEnvOn(t, testutil.OpenInMemoryDB(t), recorder)
}

func newTestEnvOn(t *testing.T, db *gorm.DB, recorder services.AuditRecorder) *testEnv {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	env := &testEnv{
		db:         db,
		fixture:    testutil.SeedFixture(t, db, "Ataturk"),
		orders:     repositories.NewGORMOrderRepository(db),
		requests:   repositories.NewGORMCancelRequestRepository(db),
		audits:     repositories.NewGORMAuditRepository(db),
		events:     &recordingPublisher{},
		logs:       logs,
		log:        log,
		transactor: repositories.NewGORMTransactor(db),
	}
	if recorder == nil {
		recorder = env.audits
	}
	env.auditTrail = services.NewAuditTrail(recorder, log)
	env.orderSvc = services.NewOrderService(env.orders, env.transactor, env.auditTrail, env.events, log)
	env.cancelSvc = services.NewCancellationService(env.requests, env.orders, env.orderSvc, env.transactor, env.auditTrail, log)
	return env
}

func (e *testEnv) seedOrder(t *testing.T, status models.OrderStatus, amount string) *models.Order {
	t.Helper()
	return testutil.SeedOrder(t, e.db, e.fixture, status, amount)
}

func (e *testEnv) auditFor(t *testing.T, entity models.AuditEntity, id string) []models.AuditLog {
	t.Helper()
	entries, err := e.audits.List(context.Background(), models.AuditFilter{Entity: entity, EntityID: id})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	return entries
}
