package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type Step int

const (
	StepCustomerInfo Step = iota + 1
	StepPayment
	StepReview
	StepSubmitting
	StepPlaced
	StepSubmissionFailed
)

func (s Step) String() string {
	switch s {
	case StepCustomerInfo:
		return "customer_info"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	case StepSubmitting:
		return "submitting"
	case StepPlaced:
		return "placed"
	case StepSubmissionFailed:
		return "submission_failed"
	}
	return "unknown"
}

// Proof references an uploaded payment proof; the file itself lives in a proof store.
type Proof struct {
	Ref         string
	FileName    string
	ContentType string
	Size        int64
}

// Draft is everything the customer entered so far.
type Draft struct {
	Customer      models.CustomerInfo
	PaymentMethod models.PaymentMethod
	Proof         *Proof
}

func (d Draft) clone() Draft {
	out := d
	if d.Proof != nil {
		p := *d.Proof
		out.Proof = &p
	}
	return out
}

// Placer records an order from a draft and the cart, clearing the cart on success.
// Errors wrapping ErrTransient are retried; any other error is a validation failure.
type Placer interface {
	PlaceOrder(ctx context.Context, d Draft, c *cart.Cart) (*models.Order, error)
}

// ProofReleaser deletes payment proofs no order refers to.
type ProofReleaser interface {
	Delete(ctx context.Context, ref string) error
}

const releaseTimeout = 10 * time.Second

type Options struct {
	SubmitDelay    time.Duration // имитация задержки отправки
	MaxRetries     uint64
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func DefaultOptions() Options {
	return Options{
		SubmitDelay:    2 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
	}
}

// State is a read-only view of the wizard.
type State struct {
	Step       Step
	Draft      Draft
	CanAdvance bool
	Order      *models.Order
	LastError  error
}

// Wizard drives the three-step checkout of one session.
// Moving back keeps entered values. While submitting every other action fails with ErrSubmissionInProgress.
type Wizard struct {
	mu      sync.Mutex
	step    Step
	draft   Draft
	order   *models.Order
	lastErr error

	cart   *cart.Cart
	placer Placer
	proofs ProofReleaser
	opts   Options
	log    *zap.Logger
}

func NewWizard(c *cart.Cart, placer Placer, opts Options, log *zap.Logger) *Wizard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Wizard{step: StepCustomerInfo, cart: c, placer: placer, opts: opts, log: log}
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State{
		Step:       w.step,
		Draft:      w.draft.clone(),
		CanAdvance: w.canAdvanceLocked(),
		Order:      w.order,
		LastError:  w.lastErr,
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func customerComplete(c models.CustomerInfo) bool {
	for _, v := range []string{c.FullName, c.Phone, c.State, c.Address} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func paymentComplete(d Draft) bool {
	if !d.PaymentMethod.Valid() {
		return false
	}
	return !d.PaymentMethod.RequiresProof() || d.Proof != nil
}

func (w *Wizard) guardLocked() error {
	switch w.step {
	case StepCustomerInfo:
		if !customerComplete(w.draft.Customer) {
			return ErrCustomerInfoIncomplete
		}
	case StepPayment:
		if !w.draft.PaymentMethod.Valid() {
			return ErrPaymentMethodMissing
		}
		if w.draft.PaymentMethod.RequiresProof() && w.draft.Proof == nil {
			return ErrPaymentProofMissing
		}
	case StepReview, StepSubmissionFailed:
		return nil
	case StepSubmitting:
		return ErrSubmissionInProgress
	default:
		return ErrWrongStep
	}
	return nil
}

func (w *Wizard) canAdvanceLocked() bool { return w.guardLocked() == nil }

// CanAdvance reports whether the "next" action is currently allowed.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvanceLocked()
}

func (w *Wizard) editable(step Step) error {
	if w.step == StepSubmitting {
		return ErrSubmissionInProgress
	}
	if w.step != step {
		return ErrWrongStep
	}
	return nil
}

// SetCustomer replaces the customer fields. Allowed on step 1.
func (w *Wizard) SetCustomer(info models.CustomerInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepCustomerInfo); err != nil {
		return err
	}
	if info.DeliveryType == "" {
		info.DeliveryType = models.DeliveryHome
	}
	if !info.DeliveryType.Valid() {
		return ErrInvalidDeliveryType
	}
	w.draft.Customer = info
	return nil
}

// SetPaymentMethod selects the method on step 2. An attached proof is kept.
func (w *Wizard) SetPaymentMethod(m models.PaymentMethod) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepPayment); err != nil {
		return err
	}
	if !m.Valid() {
		return ErrInvalidPaymentMethod
	}
	w.draft.PaymentMethod = m
	return nil
}

// AttachProof sets the proof on step 2; a replaced proof is deleted from the store.
func (w *Wizard) AttachProof(p Proof) error {
	w.mu.Lock()
	if err := w.editable(StepPayment); err != nil {
		w.mu.Unlock()
		return err
	}
	if p.Ref == "" {
		w.mu.Unlock()
		return ErrPaymentProofMissing
	}
	old := w.draft.Proof
	w.draft.Proof = &p
	w.mu.Unlock()

	if old != nil && old.Ref != p.Ref {
		w.release(old)
	}
	return nil
}

func (w *Wizard) DetachProof() error {
	w.mu.Lock()
	if err := w.editable(StepPayment); err != nil {
		w.mu.Unlock()
		return err
	}
	old := w.draft.Proof
	w.draft.Proof = nil
	w.mu.Unlock()

	w.release(old)
	return nil
}

// release drops a proof from the store. Failures are only logged.
func (w *Wizard) release(p *Proof) {
	if p == nil || w.proofs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	if err := w.proofs.Delete(ctx, p.Ref); err != nil {
		w.log.Warn("delete payment proof failed", zap.String("ref", p.Ref), zap.Error(err))
	}
}

// orphanProofLocked returns the draft proof unless a placed order refers to it.
func (w *Wizard) orphanProofLocked() *Proof {
	if w.step == StepPlaced {
		return nil
	}
	return w.draft.Proof
}

// Next moves 1 -> 2 -> 3 when the current step is valid.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepCustomerInfo, StepPayment:
		if err := w.guardLocked(); err != nil {
			return err
		}
		w.step++
		w.lastErr = nil
		return nil
	case StepSubmitting:
		return ErrSubmissionInProgress
	default:
		return ErrWrongStep
	}
}

// Back moves 2 -> 1, 3 -> 2 and from a failed submission back to review.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepPayment, StepReview:
		w.step--
	case StepSubmissionFailed:
		w.step = StepReview
	case StepSubmitting:
		return ErrSubmissionInProgress
	default:
		return ErrWrongStep
	}
	w.lastErr = nil
	return nil
}

// Reset discards the draft and starts over on step 1.
func (w *Wizard) Reset() error {
	w.mu.Lock()
	if w.step == StepSubmitting {
		w.mu.Unlock()
		return ErrSubmissionInProgress
	}
	orphan := w.orphanProofLocked()
	w.step = StepCustomerInfo
	w.draft = Draft{}
	w.order = nil
	w.lastErr = nil
	w.mu.Unlock()

	w.release(orphan)
	return nil
}

// discard ends an idle wizard and frees its unplaced proof.
// It refuses while a submission runs.
func (w *Wizard) discard() bool {
	w.mu.Lock()
	if w.step == StepSubmitting {
		w.mu.Unlock()
		return false
	}
	orphan := w.orphanProofLocked()
	w.draft.Proof = nil
	w.mu.Unlock()

	w.release(orphan)
	return true
}

// Submit places the order from the review step. Transient failures are retried with
// exponential backoff; when retries run out the wizard ends in StepSubmissionFailed.
// A validation failure returns it to StepReview.
func (w *Wizard) Submit(ctx context.Context) (*models.Order, error) {
	w.mu.Lock()
	switch w.step {
	case StepReview, StepSubmissionFailed:
	case StepSubmitting:
		w.mu.Unlock()
		return nil, ErrSubmissionInProgress
	default:
		w.mu.Unlock()
		return nil, ErrWrongStep
	}
	// шаги 1 и 2 могли быть пройдены, но проверим ещё раз перед отправкой
	if !customerComplete(w.draft.Customer) || !paymentComplete(w.draft) {
		w.mu.Unlock()
		return nil, ErrDraftIncomplete
	}
	w.step = StepSubmitting
	w.lastErr = nil
	draft := w.draft.clone()
	w.mu.Unlock()

	order, err := w.submit(ctx, draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case err == nil:
		w.step = StepPlaced
		w.order = order
	case errors.Is(err, ErrTransient), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		w.step = StepSubmissionFailed
		w.lastErr = err
	default:
		w.step = StepReview
		w.lastErr = err
	}
	return order, err
}

// Retry re-submits after a failed submission.
func (w *Wizard) Retry(ctx context.Context) (*models.Order, error) {
	if w.Step() != StepSubmissionFailed {
		return nil, ErrWrongStep
	}
	return w.Submit(ctx)
}

func (w *Wizard) submit(ctx context.Context, draft Draft) (*models.Order, error) {
	if w.opts.SubmitDelay > 0 {
		t := time.NewTimer(w.opts.SubmitDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	var order *models.Order
	op := func() error {
		o, err := w.placer.PlaceOrder(ctx, draft, w.cart)
		if err != nil {
			if errors.Is(err, ErrTransient) {
				return err
			}
			return backoff.Permanent(err)
		}
		order = o
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = w.opts.InitialBackoff
	eb.MaxInterval = w.opts.MaxBackoff
	eb.MaxElapsedTime = 0
	if eb.InitialInterval <= 0 {
		eb.InitialInterval = time.Millisecond
	}
	if eb.MaxInterval < eb.InitialInterval {
		eb.MaxInterval = eb.InitialInterval
	}
	b := backoff.WithContext(backoff.WithMaxRetries(eb, w.opts.MaxRetries), ctx)

	err := backoff.RetryNotify(op, b, func(err error, next time.Duration) {
		w.log.Warn("order submission failed, retrying", zap.Error(err), zap.Duration("next", next))
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
