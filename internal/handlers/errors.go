package handlers

import (
	"context"
	"errors"
	"net/http"

	"storefront-service/internal/checkout"
	"storefront-service/internal/dto"
	"storefront-service/internal/i18n"
	"storefront-service/internal/pricing"
	"storefront-service/internal/proof"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// localized сообщения, которые показываются покупателю на его языке
var localized = []struct {
	err error
	key i18n.Key
}{
	{checkout.ErrCustomerInfoIncomplete, i18n.ErrCustomerInfoRequired},
	{checkout.ErrPaymentMethodMissing, i18n.ErrPaymentMethodRequired},
	{checkout.ErrInvalidPaymentMethod, i18n.ErrPaymentMethodRequired},
	{service.ErrInvalidPaymentMethod, i18n.ErrPaymentMethodRequired},
	{checkout.ErrPaymentProofMissing, i18n.ErrPaymentProofRequired},
	{service.ErrPaymentProofRequired, i18n.ErrPaymentProofRequired},
	{service.ErrCartEmpty, i18n.ErrCartEmpty},
	{checkout.ErrTransient, i18n.ErrSubmissionFailed},
	{service.ErrInvalidCredentials, i18n.ErrInvalidCredentials},
	{service.ErrInvalidStatusTransition, i18n.ErrInvalidTransition},
}

func message(err error, lang i18n.Lang) string {
	for _, m := range localized {
		if errors.Is(err, m.err) {
			return i18n.T(lang, m.key)
		}
	}
	return err.Error()
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeError переводит доменные ошибки в HTTP-ответ с BaseError.
func writeError(c *gin.Context, log *zap.Logger, err error, lang i18n.Lang) {
	msg := message(err, lang)
	switch {
	case isAny(err, service.ErrUnauthorized, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(msg))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError(msg))
	case isAny(err, service.ErrProductNotFound, service.ErrOrderNotFound, proof.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(msg))
	case isAny(err,
		checkout.ErrCustomerInfoIncomplete, checkout.ErrPaymentMethodMissing, checkout.ErrPaymentProofMissing,
		checkout.ErrInvalidPaymentMethod, checkout.ErrInvalidDeliveryType, checkout.ErrDraftIncomplete,
		service.ErrInvalidProduct, service.ErrInvalidSettings, service.ErrInvalidStatus,
		service.ErrCartEmpty, service.ErrCartOutdated, service.ErrInvalidPaymentMethod, service.ErrPaymentProofRequired,
		i18n.ErrUnsupportedLanguage, pricing.ErrUnknownCurrency, pricing.ErrInvalidAmount,
		proof.ErrTooLarge, proof.ErrUnsupportedType,
	):
		log.Warn("Validation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError(msg, []dto.FieldError{}))
	case isAny(err, service.ErrInvalidStatusTransition, checkout.ErrWrongStep, checkout.ErrSubmissionInProgress):
		log.Warn("Conflict", zap.Error(err))
		c.JSON(http.StatusConflict, dto.NewConflictError(msg))
	case isAny(err, checkout.ErrTransient, context.DeadlineExceeded, context.Canceled):
		log.Error("Order submission failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.NewUnavailableError(i18n.T(lang, i18n.ErrSubmissionFailed)))
	default:
		log.Error("Internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func badRequest(c *gin.Context, log *zap.Logger, what string, err error) {
	log.Warn("Invalid "+what+" request", zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", []dto.FieldError{}))
}
