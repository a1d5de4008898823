package handlers

import (
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	portsrepo "github.com/mresults/fxconvert/internal/core/ports/repositories"
	portssvc "github.com/mresults/fxconvert/internal/core/ports/services"
	"github.com/mresults/fxconvert/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// extraMiddleware (e.g. the rate limiter) is applied to the public v1 group.
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	sessions portsrepo.SessionRepository,
	extraMiddleware ...gin.HandlerFunc,
) {
	registerValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services, sessions, extraMiddleware...)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	sessions portsrepo.SessionRepository,
	extraMiddleware ...gin.HandlerFunc,
) {
	// Every v1 route needs a visitor session for currency resolution
	mws := append([]gin.HandlerFunc{middleware.SessionMiddleware()}, extraMiddleware...)
	v1 := r.Group("/api/v1", mws...)

	registerCurrencyRoutes(v1, services.Scopes, sessions)
}

// registerValidators adds the custom binding validations used by the DTOs.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 3 {
			return false
		}
		for _, r := range code {
			if !unicode.IsUpper(r) || !unicode.IsLetter(r) {
				return false
			}
		}
		return true
	})
}
