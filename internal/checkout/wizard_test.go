package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/checkout"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placerMock struct {
	PlaceOrderFunc func(ctx context.Context, d checkout.Draft, c *cart.Cart) (*models.Order, error)
	calls          atomic.Int32
}

func (m *placerMock) PlaceOrder(ctx context.Context, d checkout.Draft, c *cart.Cart) (*models.Order, error) {
	m.calls.Add(1)
	return m.PlaceOrderFunc(ctx, d, c)
}

func fastOpts() checkout.Options {
	return checkout.Options{MaxRetries: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
}

var customer = models.CustomerInfo{
	FullName:     "Ahmed Benali",
	Phone:        "+213 555 123 456",
	State:        "Algiers",
	Address:      "12 Rue Didouche Mourad",
	DeliveryType: models.DeliveryHome,
}

func filledCart() *cart.Cart {
	c := cart.New()
	c.AddItem(models.Product{ID: "1", Price: pricing.Amount{DZD: 15000, EUR: 9900, USD: 10900}, Stock: 5}, 2)
	return c
}

func okPlacer() *placerMock {
	return &placerMock{PlaceOrderFunc: func(_ context.Context, d checkout.Draft, c *cart.Cart) (*models.Order, error) {
		c.Clear()
		return &models.Order{ID: "ORD-TEST", Customer: d.Customer, PaymentMethod: d.PaymentMethod, Status: models.OrderStatusPending}, nil
	}}
}

// toReview проходит шаги 1 и 2 с оплатой при получении.
func toReview(t *testing.T, w *checkout.Wizard) {
	t.Helper()
	require.NoError(t, w.SetCustomer(customer))
	require.NoError(t, w.Next())
	require.NoError(t, w.SetPaymentMethod(models.PaymentCOD))
	require.NoError(t, w.Next())
	require.Equal(t, checkout.StepReview, w.Step())
}

func TestWizard_StartsOnCustomerInfo(t *testing.T) {
	w := checkout.NewWizard(filledCart(), okPlacer(), fastOpts(), nil)
	assert.Equal(t, checkout.StepCustomerInfo, w.Step())
	assert.False(t, w.CanAdvance())
	assert.ErrorIs(t, w.Next(), checkout.ErrCustomerInfoIncomplete)
}

func TestWizard_CustomerGuard(t *testing.T) {
	w := checkout.NewWizard(filledCart(), okPlacer(), fastOpts(), nil)

	partial := customer
	partial.Address = "   "
	require.NoError(t, w.SetCustomer(partial))
	assert.False(t, w.CanAdvance())
	assert.ErrorIs(t, w.Next(), checkout.ErrCustomerInfoIncomplete)

	require.NoError(t, w.SetCustomer(customer))
	assert.True(t, w.CanAdvance())
	require.NoError(t, w.Next())
	assert.Equal(t, checkout.StepPayment, w.Step())
}

func TestWizard_DefaultDeliveryType(t *testing.T) {
	w := checkout.NewWizard(filledCart(), okPlacer(), fastOpts(), nil)
	info := customer
	info.DeliveryType = ""
	require.NoError(t, w.SetCustomer(info))
	assert.Equal(t, models.DeliveryHome, w.State().Draft.Customer.DeliveryType)

	info.DeliveryType = "drone"
	assert.ErrorIs(t, w.SetCustomer(info), checkout.ErrInvalidDeliveryType)
}

func TestWizard_CCPNeedsProof(t *testing.T) {
	w := checkout.NewWizard(filledCart(), okPlacer(), fastOpts(), nil)
	require.NoError(t, w.SetCustomer(customer))
	require.NoError(t, w.Next())

	assert.ErrorIs(t, w.Next(), checkout.ErrPaymentMethodMissing)

	require.NoError(t, w.SetPaymentMethod(models.PaymentCCP))
	assert.False(t, w.CanAdvance())
	assert.ErrorIs(t, w.Next(), checkout.ErrPaymentProofMissing)

	require.NoError(t, w.AttachProof(checkout.Proof{Ref: "mem://receipt.jpg", FileName: "receipt.jpg", Size: 1024}))
	assert.True(t, w.CanAdvance())
	require.NoError(t, w.Next())
	assert.Equal(t, checkout.StepReview, w.Step())
}

func TestWizard_BackKeepsValues(t *testing.T) {
	w := checkout.NewWizard(filledCart(), okPlacer(), fastOpts(), nil)
	toReview(t, w)

	require.NoError(t, w.Back())
	assert.Equal(t, checkout.StepPayment, w.Step())
	require.NoError(t, w.Back())
	assert.Equal(t, checkout.StepCustomerInfo, w.Step())
	assert.ErrorIs(t, w.Back(), checkout.ErrWrongStep)

	st := w.State()
	assert.Equal(t, customer, st.Draft.Customer)
	assert.Equal(t, models.PaymentCOD, st.Draft.PaymentMethod)
}

func TestWizard_EditOnlyOnOwnStep(t *testing.T) {
	w := checkout.NewWizard(filledCart(), okPlacer(), fastOpts(), nil)
	assert.ErrorIs(t, w.SetPaymentMethod(models.PaymentCOD), checkout.ErrWrongStep)
	toReview(t, w)
	assert.ErrorIs(t, w.SetCustomer(customer), checkout.ErrWrongStep)
	assert.ErrorIs(t, w.Next(), checkout.ErrWrongStep)
}

func TestWizard_SubmitOnlyFromReview(t *testing.T) {
	w := checkout.NewWizard(filledCart(), okPlacer(), fastOpts(), nil)
	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, checkout.ErrWrongStep)
}

func TestWizard_SubmitPlacesOrder(t *testing.T) {
	c := filledCart()
	p := okPlacer()
	w := checkout.NewWizard(c, p, fastOpts(), nil)
	toReview(t, w)

	order, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-TEST", order.ID)
	assert.Equal(t, checkout.StepPlaced, w.Step())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int32(1), p.calls.Load())
	assert.Equal(t, order, w.State().Order)

	require.NoError(t, w.Reset())
	st := w.State()
	assert.Equal(t, checkout.StepCustomerInfo, st.Step)
	assert.Equal(t, checkout.Draft{}, st.Draft)
	assert.Nil(t, st.Order)
}

func TestWizard_TransientFailureIsRetried(t *testing.T) {
	var n atomic.Int32
	p := &placerMock{PlaceOrderFunc: func(context.Context, checkout.Draft, *cart.Cart) (*models.Order, error) {
		if n.Add(1) < 3 {
			return nil, fmt.Errorf("insert order: %w", checkout.ErrTransient)
		}
		return &models.Order{ID: "ORD-RETRY"}, nil
	}}
	w := checkout.NewWizard(filledCart(), p, fastOpts(), nil)
	toReview(t, w)

	order, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-RETRY", order.ID)
	assert.Equal(t, int32(3), p.calls.Load())
}

func TestWizard_RetriesExhausted(t *testing.T) {
	fail := true
	p := &placerMock{PlaceOrderFunc: func(context.Context, checkout.Draft, *cart.Cart) (*models.Order, error) {
		if fail {
			return nil, checkout.ErrTransient
		}
		return &models.Order{ID: "ORD-LATER"}, nil
	}}
	w := checkout.NewWizard(filledCart(), p, fastOpts(), nil)
	toReview(t, w)

	_, err := w.Submit(context.Background())
	require.ErrorIs(t, err, checkout.ErrTransient)
	assert.Equal(t, checkout.StepSubmissionFailed, w.Step())
	assert.Equal(t, int32(3), p.calls.Load()) // первая попытка и два повтора
	assert.ErrorIs(t, w.State().LastError, checkout.ErrTransient)

	fail = false
	order, err := w.Retry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-LATER", order.ID)
	assert.Equal(t, checkout.StepPlaced, w.Step())
}

func TestWizard_BackFromFailed(t *testing.T) {
	p := &placerMock{PlaceOrderFunc: func(context.Context, checkout.Draft, *cart.Cart) (*models.Order, error) {
		return nil, checkout.ErrTransient
	}}
	w := checkout.NewWizard(filledCart(), p, fastOpts(), nil)
	toReview(t, w)
	_, _ = w.Submit(context.Background())
	require.Equal(t, checkout.StepSubmissionFailed, w.Step())

	require.NoError(t, w.Back())
	assert.Equal(t, checkout.StepReview, w.Step())
	assert.Nil(t, w.State().LastError)
}

func TestWizard_ValidationFailureReturnsToReview(t *testing.T) {
	errEmpty := errors.New("cart is empty")
	p := &placerMock{PlaceOrderFunc: func(context.Context, checkout.Draft, *cart.Cart) (*models.Order, error) {
		return nil, errEmpty
	}}
	w := checkout.NewWizard(cart.New(), p, fastOpts(), nil)
	toReview(t, w)

	_, err := w.Submit(context.Background())
	require.ErrorIs(t, err, errEmpty)
	assert.Equal(t, checkout.StepReview, w.Step())
	assert.Equal(t, int32(1), p.calls.Load())

	_, err = w.Retry(context.Background())
	assert.ErrorIs(t, err, checkout.ErrWrongStep)
}

func TestWizard_ActionsBlockedWhileSubmitting(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	p := &placerMock{PlaceOrderFunc: func(context.Context, checkout.Draft, *cart.Cart) (*models.Order, error) {
		close(started)
		<-release
		return &models.Order{ID: "ORD-SLOW"}, nil
	}}
	w := checkout.NewWizard(filledCart(), p, fastOpts(), nil)
	toReview(t, w)

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		done <- err
	}()
	<-started

	assert.Equal(t, checkout.StepSubmitting, w.Step())
	assert.False(t, w.CanAdvance())
	assert.ErrorIs(t, w.Back(), checkout.ErrSubmissionInProgress)
	assert.ErrorIs(t, w.Next(), checkout.ErrSubmissionInProgress)
	assert.ErrorIs(t, w.Reset(), checkout.ErrSubmissionInProgress)
	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, checkout.ErrSubmissionInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, checkout.StepPlaced, w.Step())
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestWizard_SubmitDelayHonoursContext(t *testing.T) {
	opts := fastOpts()
	opts.SubmitDelay = time.Minute
	p := okPlacer()
	w := checkout.NewWizard(filledCart(), p, opts, nil)
	toReview(t, w)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := w.Submit(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, checkout.StepSubmissionFailed, w.Step())
	assert.Equal(t, int32(0), p.calls.Load())
}

type releaserMock struct {
	mu      sync.Mutex
	deleted []string
}

func (m *releaserMock) Delete(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, ref)
	return nil
}

func (m *releaserMock) refs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

func toPayment(t *testing.T, w *checkout.Wizard) {
	t.Helper()
	require.NoError(t, w.SetCustomer(customer))
	require.NoError(t, w.Next())
	require.NoError(t, w.SetPaymentMethod(models.PaymentCCP))
}

func TestRegistry_PerSession(t *testing.T) {
	r := checkout.NewRegistry(okPlacer(), nil, fastOpts(), nil)
	a := r.Get("a", filledCart())
	assert.Same(t, a, r.Get("a", nil))
	assert.NotSame(t, a, r.Get("b", filledCart()))
}

func TestWizard_ReplacedAndDetachedProofsAreDeleted(t *testing.T) {
	rel := &releaserMock{}
	w := checkout.NewRegistry(okPlacer(), rel, fastOpts(), nil).Get("s", filledCart())
	toPayment(t, w)

	require.NoError(t, w.AttachProof(checkout.Proof{Ref: "mem://one"}))
	require.NoError(t, w.AttachProof(checkout.Proof{Ref: "mem://two"}))
	assert.Equal(t, []string{"mem://one"}, rel.refs())

	require.NoError(t, w.DetachProof())
	assert.Equal(t, []string{"mem://one", "mem://two"}, rel.refs())
}

func TestWizard_ResetKeepsPlacedProof(t *testing.T) {
	rel := &releaserMock{}
	r := checkout.NewRegistry(okPlacer(), rel, fastOpts(), nil)

	draft := r.Get("draft", filledCart())
	toPayment(t, draft)
	require.NoError(t, draft.AttachProof(checkout.Proof{Ref: "mem://draft"}))
	require.NoError(t, draft.Reset())
	assert.Equal(t, []string{"mem://draft"}, rel.refs())

	placed := r.Get("placed", filledCart())
	toPayment(t, placed)
	require.NoError(t, placed.AttachProof(checkout.Proof{Ref: "mem://placed"}))
	require.NoError(t, placed.Next())
	_, err := placed.Submit(context.Background())
	require.NoError(t, err)
	require.NoError(t, placed.Reset())
	assert.Equal(t, []string{"mem://draft"}, rel.refs())
}

func TestRegistry_ExpireIdle(t *testing.T) {
	rel := &releaserMock{}
	r := checkout.NewRegistry(okPlacer(), rel, fastOpts(), nil)
	w := r.Get("s", filledCart())
	toPayment(t, w)
	require.NoError(t, w.AttachProof(checkout.Proof{Ref: "mem://idle"}))

	assert.Empty(t, r.Expire(time.Hour))
	assert.Same(t, w, r.Get("s", nil))

	assert.Equal(t, []string{"s"}, r.Expire(0))
	assert.Equal(t, []string{"mem://idle"}, rel.refs())
	assert.NotSame(t, w, r.Get("s", filledCart()))
}

func TestRegistry_ExpireKeepsSubmitting(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	p := &placerMock{PlaceOrderFunc: func(context.Context, checkout.Draft, *cart.Cart) (*models.Order, error) {
		close(started)
		<-release
		return &models.Order{ID: "ORD-SLOW"}, nil
	}}
	r := checkout.NewRegistry(p, nil, fastOpts(), nil)
	w := r.Get("s", filledCart())
	toReview(t, w)

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		done <- err
	}()
	<-started

	assert.Empty(t, r.Expire(0))
	assert.Same(t, w, r.Get("s", nil))

	close(release)
	require.NoError(t, <-done)
}
