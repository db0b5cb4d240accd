package checkout

import "errors"

var (
	ErrCustomerInfoIncomplete = errors.New("customer info incomplete")
	ErrPaymentMethodMissing   = errors.New("payment method not selected")
	ErrPaymentProofMissing    = errors.New("payment proof required")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidDeliveryType    = errors.New("invalid delivery type")
	ErrDraftIncomplete        = errors.New("checkout draft incomplete")
	ErrWrongStep              = errors.New("action not allowed on current step")
	ErrSubmissionInProgress   = errors.New("submission in progress")

	// ErrTransient marks placement failures worth retrying.
	ErrTransient = errors.New("transient submission failure")
)
