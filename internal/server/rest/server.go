// Package rest exposes the user service over HTTP with echo.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// UserService is the business logic behind the /users routes.
type UserService interface {
	Create(ctx context.Context, candidate *models.User) (*models.PublicUser, error)
	Update(ctx context.Context, id int64, candidate *models.User) (*models.PublicUser, error)
	Lookup(ctx context.Context, email string) (*models.User, error)
}

type HTTPServer struct {
	address         string
	echo            *echo.Echo
	users           UserService
	logger          logging.Logger
	shutdownTimeout time.Duration
}

// NewHTTPServer builds the server and its routes. A nil store disables rate
// limiting.
func NewHTTPServer(a string, l logging.Logger, us UserService, store middleware.RateLimiterStore, shutdownTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:         a,
		echo:            echo.New(),
		users:           us,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(s.requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if store != nil {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: store,
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
		}))
	}

	e.GET("/health", s.Health)
	e.POST("/users", s.CreateUser)
	e.PUT("/users/:userId", s.UpdateUser)
	e.GET("/users", s.LookupUser)

	return s
}

func (s *HTTPServer) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error)
			}
			s.logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
