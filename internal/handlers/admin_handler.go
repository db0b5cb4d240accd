package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"storefront-service/internal/dto"
	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/proof"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	auth    service.AuthService
	admin   service.AdminService
	orders  service.OrderService
	catalog service.CatalogService
	proofs  proof.Store
	log     *zap.Logger
}

func NewAdminHandler(
	auth service.AuthService,
	admin service.AdminService,
	orders service.OrderService,
	catalog service.CatalogService,
	proofs proof.Store,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{auth: auth, admin: admin, orders: orders, catalog: catalog, proofs: proofs, log: log}
}

// Login godoc
// @Summary Вход администратора
// @Description При успехе флаг администратора сохраняется в сессии. При ошибке прежнее состояние не меняется
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param login body dto.LoginRequest true "Логин и пароль"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Неверные учётные данные"
// @Router /api/v1/admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "login", err)
		return
	}
	lang := middleware.Prefs(c).Language
	ok, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	if !ok {
		h.log.Warn("Admin login failed", zap.String("session", middleware.SessionID(c)))
		writeError(c, h.log, service.ErrInvalidCredentials, lang)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{AdminAuth: true})
}

// Logout godoc
// @Summary Выход администратора
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LoginResponse
// @Router /api/v1/admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		writeError(c, h.log, err, middleware.Prefs(c).Language)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{AdminAuth: false})
}

// Stats godoc
// @Summary Статистика для панели
// @Description Считается заново при каждом запросе
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse "Нужен вход администратора"
// @Router /api/v1/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	p := middleware.Prefs(c)
	st, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, p.Language)
		return
	}
	pr := newPresenter(p)
	out := dto.StatsResponse{
		TotalOrders:      st.TotalOrders,
		TotalRevenue:     pr.minor(st.TotalRevenue),
		RevenueFormatted: pr.price(st.TotalRevenue),
		Currency:         string(p.Currency),
		TotalProducts:    st.TotalProducts,
		TotalCustomers:   st.TotalCustomers,
		RecentOrders:     make([]dto.OrderResponse, 0, len(st.RecentOrders)),
		Sales:            dto.SalesResponse{Labels: st.Sales.Labels, Data: st.Sales.Data},
	}
	for _, o := range st.RecentOrders {
		out.RecentOrders = append(out.RecentOrders, pr.order(o))
	}
	c.JSON(http.StatusOK, out)
}

// ListProducts godoc
// @Summary Товары со всеми переводами
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param category query string false "Категория"
// @Param q query string false "Поиск"
// @Success 200 {array} dto.AdminProductResponse
// @Router /api/v1/admin/products [get]
func (h *AdminHandler) ListProducts(c *gin.Context) {
	lang := middleware.Prefs(c).Language
	items, err := h.catalog.ListProducts(c.Request.Context(), service.ProductQuery{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Lang:     lang,
	})
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	out := make([]dto.AdminProductResponse, 0, len(items))
	for _, it := range items {
		out = append(out, adminProduct(it))
	}
	c.JSON(http.StatusOK, out)
}

// CreateProduct godoc
// @Summary Новый товар
// @Description Цены в основных единицах каждой валюты, например "150.00"
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.CreateProductRequest true "Товар"
// @Success 201 {object} dto.AdminProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Router /api/v1/admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "create product", err)
		return
	}
	lang := middleware.Prefs(c).Language
	price, err := req.Price.Amount()
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	p, err := h.admin.CreateProduct(c.Request.Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Images:      req.Images,
		Category:    req.Category,
		Stock:       req.Stock,
		Rating:      req.Rating,
	})
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	c.JSON(http.StatusCreated, adminProduct(p))
}

// UpdateProduct godoc
// @Summary Изменить товар
// @Description Меняются только переданные поля
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param product body dto.UpdateProductRequest true "Изменения"
// @Success 200 {object} dto.AdminProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 404 {object} dto.NotFoundErrorResponse "Товар не найден"
// @Router /api/v1/admin/products/{id} [patch]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "update product", err)
		return
	}
	lang := middleware.Prefs(c).Language
	patch := service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
		Category:    req.Category,
		Stock:       req.Stock,
		Rating:      req.Rating,
	}
	if req.Price != nil {
		price, err := req.Price.Amount()
		if err != nil {
			writeError(c, h.log, err, lang)
			return
		}
		patch.Price = &price
	}
	p, err := h.admin.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	c.JSON(http.StatusOK, adminProduct(p))
}

// DeleteProduct godoc
// @Summary Удалить товар
// @Description Уже оформленные заказы сохраняют копию товара
// @Tags admin
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 204 "Удалён"
// @Failure 404 {object} dto.NotFoundErrorResponse "Товар не найден"
// @Router /api/v1/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err, middleware.Prefs(c).Language)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListOrders godoc
// @Summary Заказы, новые первыми
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} dto.OrderListResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неизвестный статус"
// @Router /api/v1/admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	p := middleware.Prefs(c)
	f := service.OrderFilter{
		Limit:  atoiQuery(c, "limit", 20),
		Offset: atoiQuery(c, "offset", 0),
	}
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		f.Status = &st
	}
	items, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err, p.Language)
		return
	}
	pr := newPresenter(p)
	out := dto.OrderListResponse{Items: make([]dto.OrderResponse, 0, len(items)), Total: total}
	for _, o := range items {
		out.Items = append(out.Items, pr.order(o))
	}
	c.JSON(http.StatusOK, out)
}

// GetOrder godoc
// @Summary Заказ
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Заказ не найден"
// @Router /api/v1/admin/orders/{id} [get]
func (h *AdminHandler) GetOrder(c *gin.Context) {
	p := middleware.Prefs(c)
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err, p.Language)
		return
	}
	c.JSON(http.StatusOK, newPresenter(p).order(o))
}

// UpdateOrderStatus godoc
// @Summary Сменить статус заказа
// @Description pending → processing → shipped → delivered; cancelled из любого незавершённого
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param status body dto.UpdateOrderStatusRequest true "Новый статус"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неизвестный статус"
// @Failure 404 {object} dto.NotFoundErrorResponse "Заказ не найден"
// @Failure 409 {object} dto.ConflictErrorResponse "Недопустимый переход"
// @Router /api/v1/admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "update status", err)
		return
	}
	p := middleware.Prefs(c)
	o, err := h.orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		writeError(c, h.log, err, p.Language)
		return
	}
	c.JSON(http.StatusOK, newPresenter(p).order(o))
}

// OrderProof godoc
// @Summary Подтверждение оплаты заказа
// @Description Файл из памяти отдаётся как есть, для внешнего хранилища — редирект
// @Tags admin
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {file} file
// @Success 302 "Редирект на файл"
// @Failure 404 {object} dto.NotFoundErrorResponse "Нет подтверждения"
// @Router /api/v1/admin/orders/{id}/proof [get]
func (h *AdminHandler) OrderProof(c *gin.Context) {
	lang := middleware.Prefs(c).Language
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	if o.PaymentProof == nil {
		writeError(c, h.log, proof.ErrNotFound, lang)
		return
	}
	ref := *o.PaymentProof
	b, err := h.proofs.Open(c.Request.Context(), ref)
	if errors.Is(err, proof.ErrRemote) {
		c.Redirect(http.StatusFound, ref)
		return
	}
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", b.FileName))
	c.Data(http.StatusOK, b.ContentType, b.Data)
}

func (h *AdminHandler) settingsResponse(c *gin.Context, s *models.StoreSettings) {
	c.JSON(http.StatusOK, newPresenter(middleware.Prefs(c)).settings(s))
}

// GetSettings godoc
// @Summary Настройки магазина
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SettingsResponse
// @Router /api/v1/admin/settings [get]
func (h *AdminHandler) GetSettings(c *gin.Context) {
	s, err := h.admin.GetSettings(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, middleware.Prefs(c).Language)
		return
	}
	h.settingsResponse(c, s)
}

// UpdateSettings godoc
// @Summary Изменить настройки магазина
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body dto.UpdateSettingsRequest true "Изменения"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Router /api/v1/admin/settings [patch]
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "update settings", err)
		return
	}
	patch := service.SettingsPatch{
		Name:            req.Name,
		Logo:            req.Logo,
		PaymentMethods:  req.PaymentMethods,
		ShippingMethods: req.ShippingMethods,
	}
	if req.Contact != nil {
		patch.Contact = &models.ContactInfo{Phone: req.Contact.Phone, Email: req.Contact.Email, Address: req.Contact.Address}
	}
	s, err := h.admin.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		writeError(c, h.log, err, middleware.Prefs(c).Language)
		return
	}
	h.settingsResponse(c, s)
}

// ListReviews godoc
// @Summary Отзывы
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param product_id query string false "Только для товара"
// @Success 200 {array} dto.ReviewResponse
// @Router /api/v1/admin/reviews [get]
func (h *AdminHandler) ListReviews(c *gin.Context) {
	items, err := h.admin.ListReviews(c.Request.Context(), c.Query("product_id"))
	if err != nil {
		writeError(c, h.log, err, middleware.Prefs(c).Language)
		return
	}
	out := make([]dto.ReviewResponse, 0, len(items))
	for _, r := range items {
		out = append(out, review(r))
	}
	c.JSON(http.StatusOK, out)
}

func atoiQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

