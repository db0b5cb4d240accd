package handlers

import (
	"net/http"

	"storefront-service/internal/dto"
	"storefront-service/internal/middleware"
	"storefront-service/internal/prefs"
	"storefront-service/internal/pricing"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	auth  service.AuthService
	prefs *prefs.Service
	log   *zap.Logger
}

func NewSessionHandler(auth service.AuthService, p *prefs.Service, log *zap.Logger) *SessionHandler {
	return &SessionHandler{auth: auth, prefs: p, log: log}
}

// StartSession godoc
// @Summary Новая сессия
// @Description Выдаёт токен сессии. Корзина, оформление и настройки привязаны к сессии
// @Tags session
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/session [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	s, err := h.auth.StartSession(c.Request.Context())
	if err != nil {
		h.log.Error("Start session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.JSON(http.StatusCreated, dto.SessionResponse{Token: s.Token, SessionID: s.ID, ExpiresAt: s.ExpiresAt})
}

func prefsResponse(p prefs.Preferences) dto.PreferencesResponse {
	return dto.PreferencesResponse{Language: string(p.Language), Currency: string(p.Currency), AdminAuth: p.AdminAuth}
}

// GetPreferences godoc
// @Summary Настройки сессии
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PreferencesResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет сессии"
// @Router /api/v1/preferences [get]
func (h *SessionHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, prefsResponse(middleware.Prefs(c)))
}

// UpdatePreferences godoc
// @Summary Смена языка и валюты
// @Description Меняет только переданные поля. Язык принимается в любом BCP 47 виде (fr-FR)
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param prefs body dto.UpdatePreferencesRequest true "Язык и/или валюта"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неподдерживаемое значение"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет сессии"
// @Router /api/v1/preferences [put]
func (h *SessionHandler) UpdatePreferences(c *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "preferences", err)
		return
	}
	sid := middleware.SessionID(c)
	p := middleware.Prefs(c)
	ctx := c.Request.Context()

	if req.Language != nil {
		l, err := h.prefs.SetLanguage(ctx, sid, *req.Language)
		if err != nil {
			writeError(c, h.log, err, p.Language)
			return
		}
		p.Language = l
	}
	if req.Currency != nil {
		cur, err := h.prefs.SetCurrency(ctx, sid, *req.Currency)
		if err != nil {
			writeError(c, h.log, err, p.Language)
			return
		}
		p.Currency = cur
	}
	c.JSON(http.StatusOK, prefsResponse(p))
}

// FormatPrice godoc
// @Summary Форматирование суммы
// @Description Сумма в минорных единицах выбранной валюты
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param amount body dto.FormatRequest true "Сумма и валюта"
// @Success 200 {object} dto.FormatResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неизвестная валюта"
// @Router /api/v1/format [post]
func (h *SessionHandler) FormatPrice(c *gin.Context) {
	var req dto.FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "format", err)
		return
	}
	lang := middleware.Prefs(c).Language
	cur, err := pricing.ParseCurrency(req.Currency)
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	s, err := pricing.FormatMinor(cur, req.Amount)
	if err != nil {
		writeError(c, h.log, err, lang)
		return
	}
	c.JSON(http.StatusOK, dto.FormatResponse{Formatted: s})
}
