package handlers

import (
	"net/http"

	"storefront-service/internal/dto"
	"storefront-service/internal/middleware"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// ListProducts godoc
// @Summary Каталог товаров
// @Description Фильтр по категории и поиск по названию/описанию на языке сессии
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param category query string false "Категория (all — все)"
// @Param q query string false "Поисковая строка"
// @Success 200 {array} dto.ProductResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет сессии"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	p := middleware.Prefs(c)
	items, err := h.catalog.ListProducts(c.Request.Context(), service.ProductQuery{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Lang:     p.Language,
	})
	if err != nil {
		writeError(c, h.log, err, p.Language)
		return
	}
	pr := newPresenter(p)
	out := make([]dto.ProductResponse, 0, len(items))
	for _, it := range items {
		out = append(out, pr.product(it))
	}
	c.JSON(http.StatusOK, out)
}

// GetProduct godoc
// @Summary Товар с отзывами
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Товар не найден"
// @Router /api/v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p := middleware.Prefs(c)
	prod, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err, p.Language)
		return
	}
	c.JSON(http.StatusOK, newPresenter(p).product(prod))
}

// ListCategories godoc
// @Summary Категории с количеством товаров
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponse
// @Router /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	lang := middleware.Prefs(c).Language
	cats, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, ct := range cats {
		out = append(out, dto.CategoryResponse{ID: ct.ID, Name: ct.Name.Get(lang), Count: ct.Count})
	}
	c.JSON(http.StatusOK, out)
}

// GetSettings godoc
// @Summary Публичные настройки магазина
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SettingsResponse
// @Router /api/v1/settings [get]
func (h *CatalogHandler) GetSettings(c *gin.Context) {
	p := middleware.Prefs(c)
	s, err := h.catalog.Settings(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, p.Language)
		return
	}
	c.JSON(http.StatusOK, newPresenter(p).settings(s))
}
