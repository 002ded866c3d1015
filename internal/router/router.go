package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"shopapi/docs"
	"shopapi/internal/auth"
	"shopapi/internal/config"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/handler"
	"shopapi/internal/metrics"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Products *handler.ProductHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	h Handlers,
	tokens auth.TokenService,
	logger *zap.Logger,
	httpMetrics *metrics.HTTPMetrics,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	if httpMetrics != nil {
		e.Use(httpMetrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(httpMetrics.Handler()))
	}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	guard := AccessGuard(tokens)

	// Public routes
	e.POST("/users/register", h.Auth.Register)
	e.POST("/login", h.Auth.Login)
	e.GET("/products", h.Products.ListProducts)
	e.GET("/products/:id", h.Products.GetProduct)

	// User routes
	e.GET("/users", h.Users.ListUsers, guard)
	e.GET("/users/:id", h.Users.GetUser, guard)
	e.PUT("/users/:id", h.Users.UpdateUser, guard)
	e.DELETE("/users/:id", h.Users.DeleteUser, guard)

	// Product routes
	e.POST("/products", h.Products.CreateProduct, guard)
	e.PUT("/products/:id", h.Products.UpdateProduct, guard)
	e.DELETE("/products/:id", h.Products.DeleteProduct, guard)
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error == nil {
				logger.Info("request", fields...)
				return nil
			}

			fields = append(fields, zap.Error(v.Error))
			kind, ok := apperrors.KindOf(v.Error)
			if ok {
				fields = append(fields, zap.String("error_kind", string(kind)))
			}
			switch {
			case kind == apperrors.KindPersistence || kind == apperrors.KindInternal || v.Status >= http.StatusInternalServerError:
				logger.Error("request failed", fields...)
			case kind == apperrors.KindAuthentication || kind == apperrors.KindAuthorization:
				logger.Warn("request denied", fields...)
			default:
				logger.Info("request rejected", fields...)
			}
			return nil
		},
	})
}
