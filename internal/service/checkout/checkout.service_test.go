package checkout

import (
	"context"
	"efood-checkout/internal/common/checkout"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/efood/efoodtest"
	"efood-checkout/internal/pkg/logger"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"
)

var ctx = context.Background()

func (f *fixture) toFinal(t *testing.T) {
	t.Helper()
	require.Equal(t, http.StatusOK, f.svc.AddItem(ctx, f.sessionID, &AddItemRequest{RestaurantID: 1, DishID: 1}).Code)
	require.Equal(t, http.StatusOK, f.svc.OpenCart(ctx, f.sessionID).Code)
	require.Equal(t, http.StatusOK, f.svc.OpenDelivery(ctx, f.sessionID).Code)
	require.Equal(t, http.StatusOK, f.svc.SubmitDelivery(ctx, f.sessionID, language.BrazilianPortuguese, validDelivery()).Code)
	require.Equal(t, http.StatusOK, f.svc.ConfirmPayment(ctx, f.sessionID, language.BrazilianPortuguese, validPayment()).Code)
}

func TestAddItem_DuplicateKeepsCount(t *testing.T) {
	f := newFixture(t)

	res := f.svc.AddItem(ctx, f.sessionID, &AddItemRequest{RestaurantID: 1, DishID: 1})
	require.Equal(t, http.StatusOK, res.Code)
	view := res.Data.(CartView)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "60.9", view.Items[0].Price.String())

	dup := f.svc.AddItem(ctx, f.sessionID, &AddItemRequest{RestaurantID: 1, DishID: 1})
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.Equal(t, checkout.MsgDuplicateItem, dup.Message)
	assert.Len(t, f.state(t).Items, 1)
}

func TestAddItem_UnknownDish(t *testing.T) {
	f := newFixture(t)

	res := f.svc.AddItem(ctx, f.sessionID, &AddItemRequest{RestaurantID: 1, DishID: 404})

	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Empty(t, f.state(t).Items)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	f := newFixture(t)
	f.svc.AddItem(ctx, f.sessionID, &AddItemRequest{RestaurantID: 1, DishID: 1})
	before := f.state(t)

	res := f.svc.RemoveItem(ctx, f.sessionID, 999)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, before, f.state(t))
}

func TestSubmitOrder_HappyPath(t *testing.T) {
	f := newFixture(t)
	f.toFinal(t)

	res := f.svc.SubmitOrder(ctx, f.sessionID)

	require.Equal(t, http.StatusCreated, res.Code)
	view := res.Data.(CartView)
	assert.Equal(t, checkout.StepConfirmed, view.Step)
	require.NotNil(t, view.Order)
	assert.Equal(t, efoodtest.OrderID, view.Order.ID)
	assert.Nil(t, view.Payment)

	purchases := f.api.Purchases()
	require.Len(t, purchases, 1)
	assert.Equal(t, "1234567890123456", purchases[0].Payment.Card.Number)
	assert.Equal(t, "01001-000", purchases[0].Delivery.Address.ZipCode)
	assert.Equal(t, 12, purchases[0].Delivery.Address.Number)
	assert.Equal(t, "N/A", purchases[0].Delivery.Address.Complement)

	events := f.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, checkout.QueueOrderPlaced, f.publisher.queue)
	assert.Equal(t, efoodtest.OrderID, events[0].OrderID)
	assert.Equal(t, f.sessionID, events[0].SessionID)
	assert.Equal(t, "60.9", events[0].Total.String())
}

func TestSubmitOrder_SecondSubmitReturnsExistingOrder(t *testing.T) {
	f := newFixture(t)
	f.toFinal(t)

	require.Equal(t, http.StatusCreated, f.svc.SubmitOrder(ctx, f.sessionID).Code)
	again := f.svc.SubmitOrder(ctx, f.sessionID)

	assert.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, efoodtest.OrderID, again.Data.(CartView).Order.ID)
	assert.Len(t, f.api.Purchases(), 1)
	assert.Len(t, f.publisher.Events(), 1)
}

func TestSubmitOrder_DropsCardData(t *testing.T) {
	f := newFixture(t)
	f.toFinal(t)
	require.NotNil(t, f.state(t).Payment)

	require.Equal(t, http.StatusCreated, f.svc.SubmitOrder(ctx, f.sessionID).Code)

	raw, err := f.mr.Get("session:" + f.sessionID + ":state")
	require.NoError(t, err)
	assert.NotContains(t, raw, "card_code")
	assert.NotContains(t, raw, "1234 5678 9012 3456")
	assert.Nil(t, f.state(t).Payment)
}

// blockingClient holds every purchase until release is closed.
type blockingClient struct {
	efood.IClient
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (c *blockingClient) Purchase(ctx context.Context, req *efood.PurchaseRequest) (*efood.PurchaseResponse, error) {
	c.calls.Add(1)
	c.entered <- struct{}{}
	<-c.release
	return c.IClient.Purchase(ctx, req)
}

func TestSubmitOrder_InFlightPurchaseOutlivesLock(t *testing.T) {
	blocking := &blockingClient{entered: make(chan struct{}, 2), release: make(chan struct{})}
	f := newFixtureWith(t, func(c efood.IClient) efood.IClient {
		blocking.IClient = c
		return blocking
	})
	f.toFinal(t)

	first := make(chan int, 1)
	go func() { first <- f.svc.SubmitOrder(ctx, f.sessionID).Code }()
	<-blocking.entered

	// the session lock is gone but the purchase is still running
	f.mr.FastForward(11 * time.Second)

	second := f.svc.SubmitOrder(ctx, f.sessionID)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.ErrorIs(t, second.Error, checkout.ErrOrderInProgress)
	assert.Equal(t, http.StatusConflict, f.svc.CloseFinal(ctx, f.sessionID).Code)
	assert.Equal(t, http.StatusConflict, f.svc.Reset(ctx, f.sessionID).Code)

	close(blocking.release)
	assert.Equal(t, http.StatusCreated, <-first)
	assert.Equal(t, int32(1), blocking.calls.Load())
	assert.Len(t, f.api.Purchases(), 1)
	assert.Equal(t, checkout.StepConfirmed, f.state(t).Step)
}

func TestSubmitOrder_FailureKeepsFinalStep(t *testing.T) {
	f := newFixture(t)
	f.toFinal(t)
	f.api.FailPurchases(true)

	res := f.svc.SubmitOrder(ctx, f.sessionID)

	assert.Equal(t, http.StatusBadGateway, res.Code)
	assert.Equal(t, checkout.MsgPurchaseFailed, res.Message)
	assert.Equal(t, checkout.StepFinal, f.state(t).Step)
	assert.Nil(t, f.state(t).Order)
	assert.Nil(t, f.state(t).SubmittingUntil)
	assert.Empty(t, f.publisher.Events())

	f.api.FailPurchases(false)
	assert.Equal(t, http.StatusCreated, f.svc.SubmitOrder(ctx, f.sessionID).Code)
}

func TestSubmitOrder_OutsideFinalStep(t *testing.T) {
	f := newFixture(t)
	f.svc.AddItem(ctx, f.sessionID, &AddItemRequest{RestaurantID: 1, DishID: 1})

	res := f.svc.SubmitOrder(ctx, f.sessionID)

	assert.Equal(t, http.StatusConflict, res.Code)
	assert.ErrorIs(t, res.Error, checkout.ErrInvalidTransition)
	assert.Empty(t, f.api.Purchases())
}

func TestSubmitDelivery_EmptyReceiver(t *testing.T) {
	f := newFixture(t)
	f.svc.AddItem(ctx, f.sessionID, &AddItemRequest{RestaurantID: 1, DishID: 1})
	f.svc.OpenCart(ctx, f.sessionID)
	f.svc.OpenDelivery(ctx, f.sessionID)

	form := validDelivery()
	form.Receiver = ""
	res := f.svc.SubmitDelivery(ctx, f.sessionID, language.BrazilianPortuguese, form)

	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
	var fieldErrs interface{ Fields() map[string]string }
	require.ErrorAs(t, res.Error, &fieldErrs)
	assert.Equal(t, "preenchimento obrigatório", fieldErrs.Fields()["receiver"])

	assert.Equal(t, checkout.StepDelivery, f.state(t).Step)
	assert.Nil(t, f.state(t).Delivery)
	assert.Empty(t, f.api.Purchases())
}

func TestConfirmPayment_LogsMaskedCardOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.svc.AddItem(ctx, f.sessionID, &AddItemRequest{RestaurantID: 1, DishID: 1}).Code)
	f.svc.OpenCart(ctx, f.sessionID)
	f.svc.OpenDelivery(ctx, f.sessionID)
	f.svc.SubmitDelivery(ctx, f.sessionID, language.BrazilianPortuguese, validDelivery())

	res := f.svc.ConfirmPayment(ctx, f.sessionID, language.BrazilianPortuguese, validPayment())
	require.Equal(t, http.StatusOK, res.Code)

	captured := logs.FilterMessageSnippet("payment captured").All()
	require.Len(t, captured, 1)
	assert.Equal(t, zapcore.DebugLevel, captured[0].Level)
	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, "MARIA SILVA")
		assert.NotContains(t, entry.Message, "1234 5678 9012 3456")
	}
}

func TestConfirmPayment_ShortCardNumber(t *testing.T) {
	f := newFixture(t)

	form := validPayment()
	form.CardNumber = "1234 5678 9012 345"
	res := f.svc.ConfirmPayment(ctx, f.sessionID, language.English, form)

	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestOpenDelivery_EmptyCart(t *testing.T) {
	f := newFixture(t)
	f.svc.OpenCart(ctx, f.sessionID)

	res := f.svc.OpenDelivery(ctx, f.sessionID)

	assert.Equal(t, http.StatusConflict, res.Code)
	assert.ErrorIs(t, res.Error, checkout.ErrCartEmpty)
	assert.Equal(t, checkout.StepCart, f.state(t).Step)
}

func TestCloseFinal_AfterOrderKeepsItems(t *testing.T) {
	f := newFixture(t)
	f.toFinal(t)
	f.svc.SubmitOrder(ctx, f.sessionID)

	res := f.svc.CloseFinal(ctx, f.sessionID)

	require.Equal(t, http.StatusOK, res.Code)
	state := f.state(t)
	assert.Equal(t, checkout.StepBrowsing, state.Step)
	assert.Nil(t, state.Order)
	assert.Len(t, state.Items, 1)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	f.toFinal(t)

	res := f.svc.Reset(ctx, f.sessionID)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, checkout.NewState(), f.state(t))
}

func TestExpiredSession(t *testing.T) {
	f := newFixture(t)
	f.mr.FlushAll()

	assert.Equal(t, http.StatusUnauthorized, f.svc.GetState(ctx, f.sessionID).Code)
	assert.Equal(t, http.StatusUnauthorized, f.svc.OpenCart(ctx, f.sessionID).Code)
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i, dishID := range []int{1, 2} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = f.svc.AddItem(ctx, f.sessionID, &AddItemRequest{RestaurantID: 1, DishID: dishID}).Code
		}()
	}
	wg.Wait()

	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
	assert.Len(t, f.state(t).Items, 2)
}
