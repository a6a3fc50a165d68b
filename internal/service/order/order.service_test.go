package order

import (
	"context"
	"efood-checkout/internal/common/checkout"
	"efood-checkout/internal/common/models"
	database "efood-checkout/internal/pkg/db"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/repository"
	orderRepo "efood-checkout/internal/repository/order"
	"errors"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]models.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.OrderID]; !ok {
		r.orders[order.OrderID] = *order
	}
	return nil
}

func (r *fakeOrderRepo) FindByOrderID(_ context.Context, orderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) ListBySession(_ context.Context, sessionID string, direction database.DirectionEnum) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.SessionID == sessionID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if direction == database.ASC {
			return out[i].PlacedAt.Before(out[j].PlacedAt)
		}
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})
	return out, nil
}

func (r *fakeOrderRepo) UpdateReceiptKey(_ context.Context, orderID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	o.ReceiptKey = key
	r.orders[orderID] = o
	return nil
}

type fakeStorage struct {
	files     map[string][]byte
	uploadErr error
}

func (s *fakeStorage) GetBucketName() string { return "receipts" }

func (s *fakeStorage) UploadFile(_ context.Context, key string, fileBytes []byte, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.files[key] = fileBytes
	return nil
}

func (s *fakeStorage) GetPresignedURL(_ context.Context, key string) (string, error) {
	return "https://receipts.test/" + key, nil
}

func placedEvent(orderID, sessionID string, at time.Time) *checkout.OrderPlacedEvent {
	return &checkout.OrderPlacedEvent{
		OrderID:   orderID,
		SessionID: sessionID,
		Items:     []checkout.Item{{ID: 1, Name: "Sushi combo", Price: decimal.RequireFromString("60.9")}},
		Delivery: efood.PurchaseDelivery{
			Receiver: "Maria Silva",
			Address:  efood.PurchaseAddress{Description: "Rua das Flores", City: "São Paulo", ZipCode: "01001-000", Number: 12, Complement: "N/A"},
		},
		Total:    decimal.RequireFromString("60.9"),
		PlacedAt: at,
	}
}

func TestRecordOrder_ArchivesReceipt(t *testing.T) {
	repo := newFakeOrderRepo()
	storage := &fakeStorage{files: map[string][]byte{}}
	svc := NewService(repository.IRepository{Order: repo}, storage)

	require.NoError(t, svc.RecordOrder(context.Background(), placedEvent("ORD-1", "s1", time.Now())))

	assert.Contains(t, storage.files, "orders/ORD-1.json")
	assert.Equal(t, "orders/ORD-1.json", repo.orders["ORD-1"].ReceiptKey)
	assert.Equal(t, "01001-000", repo.orders["ORD-1"].ZipCode)

	res := svc.GetOrder(context.Background(), "s1", "ORD-1")
	require.Equal(t, http.StatusOK, res.Code)
	view := res.Data.(OrderView)
	assert.Equal(t, "https://receipts.test/orders/ORD-1.json", view.ReceiptURL)
	assert.Equal(t, "Maria Silva", view.Delivery.Receiver)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Sushi combo", view.Items[0].Name)
}

func TestRecordOrder_Redelivery(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repository.IRepository{Order: repo}, nil)
	evt := placedEvent("ORD-1", "s1", time.Now())

	require.NoError(t, svc.RecordOrder(context.Background(), evt))
	require.NoError(t, svc.RecordOrder(context.Background(), evt))

	assert.Len(t, repo.orders, 1)
	assert.Empty(t, repo.orders["ORD-1"].ReceiptKey)
}

func TestRecordOrder_UploadFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repository.IRepository{Order: repo}, &fakeStorage{files: map[string][]byte{}, uploadErr: errors.New("bucket gone")})

	err := svc.RecordOrder(context.Background(), placedEvent("ORD-1", "s1", time.Now()))

	assert.ErrorContains(t, err, "bucket gone")
	assert.Contains(t, repo.orders, "ORD-1")
}

func TestRecordOrder_MissingOrderID(t *testing.T) {
	svc := NewService(repository.IRepository{Order: newFakeOrderRepo()}, nil)

	assert.Error(t, svc.RecordOrder(context.Background(), &checkout.OrderPlacedEvent{SessionID: "s1"}))
}

func TestGetOrder_OtherSession(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repository.IRepository{Order: repo}, nil)
	require.NoError(t, svc.RecordOrder(context.Background(), placedEvent("ORD-1", "s1", time.Now())))

	assert.Equal(t, http.StatusNotFound, svc.GetOrder(context.Background(), "s2", "ORD-1").Code)
	assert.Equal(t, http.StatusNotFound, svc.GetOrder(context.Background(), "s1", "ORD-404").Code)
}

func TestListOrders_Direction(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repository.IRepository{Order: repo}, nil)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.RecordOrder(context.Background(), placedEvent("ORD-1", "s1", base)))
	require.NoError(t, svc.RecordOrder(context.Background(), placedEvent("ORD-2", "s1", base.Add(time.Hour))))
	require.NoError(t, svc.RecordOrder(context.Background(), placedEvent("ORD-3", "s2", base)))

	ids := func(res any) []string {
		var out []string
		for _, v := range res.([]OrderView) {
			out = append(out, v.OrderID)
		}
		return out
	}

	assert.Equal(t, []string{"ORD-2", "ORD-1"}, ids(svc.ListOrders(context.Background(), "s1", "").Data))
	assert.Equal(t, []string{"ORD-1", "ORD-2"}, ids(svc.ListOrders(context.Background(), "s1", database.ASC).Data))
	assert.Empty(t, svc.ListOrders(context.Background(), "nobody", database.DESC).Data)
}
