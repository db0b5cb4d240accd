package handlers

import (
	"errors"
	"net/http"

	"storefront-service/internal/cart"
	"storefront-service/internal/dto"
	"storefront-service/internal/middleware"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	carts   *cart.Registry
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCartHandler(carts *cart.Registry, catalog service.CatalogService, log *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, log: log}
}

func (h *CartHandler) respond(c *gin.Context, status int, ct *cart.Cart) {
	c.JSON(status, newPresenter(middleware.Prefs(c)).cart(ct))
}

// GetCart godoc
// @Summary Корзина сессии
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Router /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	h.respond(c, http.StatusOK, h.carts.Get(middleware.SessionID(c)))
}

// AddItem godoc
// @Summary Добавить товар в корзину
// @Description Количество ограничивается остатком на складе без ошибки
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body dto.AddCartItemRequest true "Товар и количество"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 404 {object} dto.NotFoundErrorResponse "Товар не найден"
// @Router /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "add to cart", err)
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		writeError(c, h.log, err, middleware.Prefs(c).Language)
		return
	}
	snap := *p
	snap.Reviews = nil
	ct := h.carts.Get(middleware.SessionID(c))
	ct.AddItem(snap, req.Quantity)
	h.respond(c, http.StatusOK, ct)
}

// SetQuantity godoc
// @Summary Изменить количество
// @Description 0 и меньше удаляет позицию, больше текущего остатка обрезается до остатка
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "ID товара"
// @Param qty body dto.SetQuantityRequest true "Количество"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Router /api/v1/cart/items/{productId} [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req dto.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "set quantity", err)
		return
	}
	ct := h.carts.Get(middleware.SessionID(c))
	id := c.Param("productId")
	if req.Quantity < 1 {
		ct.RemoveItem(id)
		h.respond(c, http.StatusOK, ct)
		return
	}
	// остаток берём из каталога, а не из снимка в корзине
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		ct.RemoveItem(id)
	case err != nil:
		writeError(c, h.log, err, middleware.Prefs(c).Language)
		return
	default:
		snap := *p
		snap.Reviews = nil
		ct.SetQuantity(snap, req.Quantity)
	}
	h.respond(c, http.StatusOK, ct)
}

// RemoveItem godoc
// @Summary Удалить позицию
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param productId path string true "ID товара"
// @Success 200 {object} dto.CartResponse
// @Router /api/v1/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ct := h.carts.Get(middleware.SessionID(c))
	ct.RemoveItem(c.Param("productId"))
	h.respond(c, http.StatusOK, ct)
}

// ClearCart godoc
// @Summary Очистить корзину
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Router /api/v1/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	ct := h.carts.Get(middleware.SessionID(c))
	ct.Clear()
	h.respond(c, http.StatusOK, ct)
}
