package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/checkout"
	"storefront-service/internal/dto"
	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/proof"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// submitTimeout ограничивает отправку заказа вместе с задержкой и повторами
const submitTimeout = 30 * time.Second

type CheckoutHandler struct {
	carts   *cart.Registry
	wizards *checkout.Registry
	proofs  proof.Store
	log     *zap.Logger
}

func NewCheckoutHandler(carts *cart.Registry, wizards *checkout.Registry, proofs proof.Store, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, wizards: wizards, proofs: proofs, log: log}
}

func (h *CheckoutHandler) session(c *gin.Context) (*checkout.Wizard, *cart.Cart) {
	sid := middleware.SessionID(c)
	ct := h.carts.Get(sid)
	return h.wizards.Get(sid, ct), ct
}

func (h *CheckoutHandler) respond(c *gin.Context, status int, w *checkout.Wizard, ct *cart.Cart) {
	c.JSON(status, newPresenter(middleware.Prefs(c)).checkout(w.State(), ct))
}

// do выполняет действие мастера и отвечает его новым состоянием
func (h *CheckoutHandler) do(c *gin.Context, action func(w *checkout.Wizard) error) {
	w, ct := h.session(c)
	if err := action(w); err != nil {
		writeError(c, h.log, err, middleware.Prefs(c).Language)
		return
	}
	h.respond(c, http.StatusOK, w, ct)
}

// GetCheckout godoc
// @Summary Состояние оформления заказа
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CheckoutResponse
// @Router /api/v1/checkout [get]
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	w, ct := h.session(c)
	h.respond(c, http.StatusOK, w, ct)
}

// SetCustomer godoc
// @Summary Шаг 1: данные покупателя
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customer body dto.CustomerRequest true "Данные покупателя"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный тип доставки"
// @Failure 409 {object} dto.ConflictErrorResponse "Не тот шаг"
// @Router /api/v1/checkout/customer [put]
func (h *CheckoutHandler) SetCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "customer", err)
		return
	}
	h.do(c, func(w *checkout.Wizard) error {
		return w.SetCustomer(models.CustomerInfo{
			FullName:     req.FullName,
			Phone:        req.Phone,
			State:        req.State,
			Address:      req.Address,
			DeliveryType: models.DeliveryType(req.DeliveryType),
		})
	})
}

// SetPayment godoc
// @Summary Шаг 2: способ оплаты
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body dto.PaymentRequest true "ccp или cod"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неизвестный способ"
// @Failure 409 {object} dto.ConflictErrorResponse "Не тот шаг"
// @Router /api/v1/checkout/payment [put]
func (h *CheckoutHandler) SetPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "payment", err)
		return
	}
	h.do(c, func(w *checkout.Wizard) error {
		return w.SetPaymentMethod(models.PaymentMethod(req.Method))
	})
}

// UploadProof godoc
// @Summary Шаг 2: подтверждение оплаты CCP
// @Description Файл jpeg, png, webp или pdf в поле file
// @Tags checkout
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Квитанция"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный файл"
// @Failure 409 {object} dto.ConflictErrorResponse "Не тот шаг"
// @Router /api/v1/checkout/proof [post]
func (h *CheckoutHandler) UploadProof(c *gin.Context) {
	lang := middleware.Prefs(c).Language
	w, ct := h.session(c)
	if w.Step() != checkout.StepPayment {
		writeError(c, h.log, checkout.ErrWrongStep, lang)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, h.log, "proof upload", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.log.Error("Open uploaded proof failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	defer f.Close()

	up := proof.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
	ref, err := h.proofs.Put(c.Request.Context(), up)
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	if err := w.AttachProof(checkout.Proof{Ref: ref, FileName: up.FileName, ContentType: up.ContentType, Size: up.Size}); err != nil {
		// шаг успел смениться, файл никому не нужен
		if derr := h.proofs.Delete(c.Request.Context(), ref); derr != nil {
			h.log.Warn("Delete unattached proof failed", zap.String("ref", ref), zap.Error(derr))
		}
		writeError(c, h.log, err, lang)
		return
	}
	h.log.Info("Payment proof attached", zap.String("session", middleware.SessionID(c)), zap.String("ref", ref))
	h.respond(c, http.StatusOK, w, ct)
}

// DeleteProof godoc
// @Summary Шаг 2: убрать подтверждение оплаты
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CheckoutResponse
// @Router /api/v1/checkout/proof [delete]
func (h *CheckoutHandler) DeleteProof(c *gin.Context) {
	h.do(c, (*checkout.Wizard).DetachProof)
}

// Next godoc
// @Summary Следующий шаг
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Шаг не заполнен"
// @Router /api/v1/checkout/next [post]
func (h *CheckoutHandler) Next(c *gin.Context) {
	h.do(c, (*checkout.Wizard).Next)
}

// Back godoc
// @Summary Предыдущий шаг
// @Description Введённые данные сохраняются
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CheckoutResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Назад нельзя"
// @Router /api/v1/checkout/back [post]
func (h *CheckoutHandler) Back(c *gin.Context) {
	h.do(c, (*checkout.Wizard).Back)
}

// Restart godoc
// @Summary Начать оформление заново
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CheckoutResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Идёт отправка"
// @Router /api/v1/checkout [delete]
func (h *CheckoutHandler) Restart(c *gin.Context) {
	h.do(c, (*checkout.Wizard).Reset)
}

// Submit godoc
// @Summary Шаг 3: отправить заказ
// @Description Отправка с задержкой и повторами. При исчерпании повторов мастер переходит в submission_failed
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Корзина пуста или устарела"
// @Failure 409 {object} dto.ConflictErrorResponse "Отправка уже идёт"
// @Failure 503 {object} dto.UnavailableErrorResponse "Не удалось отправить"
// @Router /api/v1/checkout/submit [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	h.submit(c, (*checkout.Wizard).Submit)
}

// Retry godoc
// @Summary Повторить отправку
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.CheckoutResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Повтор недоступен"
// @Failure 503 {object} dto.UnavailableErrorResponse "Не удалось отправить"
// @Router /api/v1/checkout/retry [post]
func (h *CheckoutHandler) Retry(c *gin.Context) {
	h.submit(c, (*checkout.Wizard).Retry)
}

func (h *CheckoutHandler) submit(c *gin.Context, run func(*checkout.Wizard, context.Context) (*models.Order, error)) {
	w, ct := h.session(c)
	// обрыв соединения не должен прерывать отправку
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), submitTimeout)
	defer cancel()

	order, err := run(w, ctx)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrWrongStep), errors.Is(err, checkout.ErrSubmissionInProgress), errors.Is(err, checkout.ErrDraftIncomplete):
		case w.Step() == checkout.StepSubmissionFailed:
			middleware.ObserveSubmission("failed")
		default:
			middleware.ObserveSubmission("rejected")
		}
		writeError(c, h.log, err, middleware.Prefs(c).Language)
		return
	}
	middleware.ObserveSubmission("placed")
	h.log.Info("Order placed via checkout", zap.String("session", middleware.SessionID(c)), zap.String("order_id", order.ID))
	h.respond(c, http.StatusCreated, w, ct)
}
