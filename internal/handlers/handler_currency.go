package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	portsrepo "github.com/mresults/fxconvert/internal/core/ports/repositories"
	portssvc "github.com/mresults/fxconvert/internal/core/ports/services"
	"github.com/mresults/fxconvert/internal/dto"
	"github.com/mresults/fxconvert/internal/middleware"
	"github.com/shopspring/decimal"
)

// overrideParam is the query parameter carrying an explicit currency choice.
// It takes top precedence during resolution and is read once per request.
const overrideParam = "currency"

// currencyHandler handles the render-facing currency API.
type currencyHandler struct {
	scopes   portssvc.ScopeFactory
	sessions portsrepo.SessionRepository
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(scopes portssvc.ScopeFactory, sessions portsrepo.SessionRepository) *currencyHandler {
	return &currencyHandler{
		scopes:   scopes,
		sessions: sessions,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, scopes portssvc.ScopeFactory, sessions portsrepo.SessionRepository) {
	h := newCurrencyHandler(scopes, sessions)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listAllowedCurrencies)
		currencies.GET("/selected", h.getSelectedCurrency)
	}
	rg.GET("/convert", h.convert)
}

// listAllowedCurrencies returns the operator-configured currencies offered
// to visitors, in configured order.
func (h *currencyHandler) listAllowedCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scope := h.scopes.NewScope()
	allowed, err := scope.AllowedCurrencies(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list allowed currencies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(allowed))
}

// getSelectedCurrency resolves and returns the visitor's currency. An
// explicit ?currency= override is applied (and persisted) here.
func (h *currencyHandler) getSelectedCurrency(c *gin.Context) {
	scope := h.scopes.NewScope()
	selected, ok := h.resolveSelected(c, scope, c.Query(overrideParam))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToSelectedCurrencyResponse(selected))
}

// convert converts a value from the base currency into the visitor's
// currency (or an explicit ?currency= target) and formats it for display.
func (h *currencyHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind convert query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be a decimal number"})
		return
	}

	scope := h.scopes.NewScope()
	selected, ok := h.resolveSelected(c, scope, req.Currency)
	if !ok {
		return
	}

	conversion, err := scope.Convert(c.Request.Context(), value, selected.Currency)
	if err != nil {
		logger.Error("Conversion failed",
			slog.String("target", selected.Currency.Code),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert value"})
		return
	}

	c.JSON(http.StatusOK, dto.ToConvertResponse(conversion))
}

// resolveSelected runs currency resolution for the request and persists the
// outcome to the session store when it changed. It writes the error response
// itself and reports success through the bool return.
func (h *currencyHandler) resolveSelected(c *gin.Context, scope portssvc.RenderScope, override string) (domain.SelectedCurrency, bool) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	sessionCode := ""
	sessionID, hasSession := middleware.GetSessionIDFromContext(c)
	if hasSession {
		code, err := h.sessions.GetCurrency(ctx, sessionID)
		switch {
		case err == nil:
			sessionCode = code
		case errors.Is(err, apperrors.ErrNotFound):
			// first visit, nothing stored yet
		default:
			// A broken session store degrades to default-currency behaviour.
			logger.Warn("Failed to read session currency", slog.String("error", err.Error()))
		}
	}

	selected, shouldPersist, err := scope.Selected(ctx, override, sessionCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCurrencyAvailable) {
			logger.Error("No currency available: catalog is empty or default currency is not in it")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Currency configuration error: no currency available"})
		} else {
			logger.Error("Failed to resolve currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve currency"})
		}
		return domain.SelectedCurrency{}, false
	}

	if shouldPersist && hasSession {
		if err := h.sessions.SetCurrency(ctx, sessionID, selected.Currency.Code); err != nil {
			// The choice just won't stick across requests; not fatal.
			logger.Warn("Failed to persist session currency", slog.String("error", err.Error()))
		}
	}

	return selected, true
}
