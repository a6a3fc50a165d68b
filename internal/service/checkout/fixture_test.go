package checkout

import (
	"context"
	"efood-checkout/internal/common/checkout"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/efood/efoodtest"
	"efood-checkout/internal/pkg/redis"
	"efood-checkout/internal/repository"
	sessionRepo "efood-checkout/internal/repository/session"
	catalogService "efood-checkout/internal/service/catalog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu     sync.Mutex
	queue  string
	events []checkout.OrderPlacedEvent
}

func (f *fakePublisher) PublishEvent(_ context.Context, queue, _ string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = queue
	f.events = append(f.events, data.(checkout.OrderPlacedEvent))
	return nil
}

func (f *fakePublisher) Events() []checkout.OrderPlacedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]checkout.OrderPlacedEvent(nil), f.events...)
}

type fixture struct {
	svc       IService
	rp        repository.IRepository
	api       *efoodtest.Server
	publisher *fakePublisher
	mr        *miniredis.Miniredis
	sessionID string
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

// newFixtureWith lets a test wrap the efood client the service talks to.
func newFixtureWith(t testing.TB, wrap func(efood.IClient) efood.IClient) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	rds, err := redis.Setup(context.Background(), &redis.Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rds.Close() })

	api := efoodtest.NewServer(t)
	var client efood.IClient = efood.NewClient(&efood.Config{BaseURL: api.URL, Timeout: 5 * time.Second})
	if wrap != nil {
		client = wrap(client)
	}
	rp := repository.IRepository{Session: sessionRepo.NewRepo(rds, time.Hour, 5*time.Second)}
	publisher := &fakePublisher{}

	f := &fixture{
		svc:       NewService(rp, catalogService.NewService(client, rds, time.Minute), client, publisher, 5*time.Second, 5*time.Second),
		rp:        rp,
		api:       api,
		publisher: publisher,
		mr:        mr,
		sessionID: "session-1",
	}
	require.NoError(t, rp.Session.Create(context.Background(), f.sessionID))
	return f
}

func (f *fixture) state(t testing.TB) checkout.State {
	t.Helper()
	s, err := f.rp.Session.Load(context.Background(), f.sessionID)
	require.NoError(t, err)
	return s
}

func validDelivery() *checkout.Delivery {
	return &checkout.Delivery{
		Receiver:   "Maria Silva",
		Address:    "Rua das Flores",
		City:       "São Paulo",
		ZipCode:    "01001-000",
		Number:     "12",
		Complement: "",
	}
}

func validPayment() *checkout.Payment {
	return &checkout.Payment{
		CardName:     "MARIA SILVA",
		CardNumber:   "1234 5678 9012 3456",
		CardCode:     "321",
		ExpiresMonth: "08",
		ExpiresYear:  "2031",
	}
}
