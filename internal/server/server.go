package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"horoscopo/internal/config"
	"horoscopo/internal/horoscope"
)

const (
	maxBodyBytes        = "64K"
	shutdownGracePeriod = 10 * time.Second
	readTimeout         = 30 * time.Second
	writeTimeout        = 45 * time.Second
	idleTimeout         = 120 * time.Second

	errorMessage = "Error consultando el horóscopo"
)

type Server struct {
	cfg     config.Config
	svc     *horoscope.Service
	app     *echo.Echo
	address string
}

// New constructs an HTTP server wired with routing and middleware.
func New(cfg config.Config, svc *horoscope.Service) (*Server, error) {
	if svc == nil {
		return nil, errors.New("horoscope service must not be nil")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = jsonErrorHandler
	e.Renderer = newPageRenderer()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"request_id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"error", v.Error,
			)
			return nil
		},
	}))
	e.Use(middleware.BodyLimit(maxBodyBytes))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'; form-action 'self'",
	}))
	if cfg.Server.CSRF {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:" + csrfFormField,
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSameSite: http.SameSiteStrictMode,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/health"
			},
		}))
	}

	srv := &Server{
		cfg:     cfg,
		svc:     svc,
		app:     e,
		address: fmt.Sprintf(":%d", cfg.Server.Port),
	}

	srv.registerRoutes()

	return srv, nil
}

// ServeHTTP exposes the router so the server can be mounted or tested directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	printStartupBanner(s.cfg.Server.Port)
	slog.Info("starting server", "addr", s.address, "failure_mode", s.svc.Mode().String())

	httpServer := &http.Server{
		Addr:         s.address,
		Handler:      s.app,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.app.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := s.app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		slog.Info("server shutdown complete")
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) registerRoutes() {
	s.app.GET("/", s.handleIndex)
	s.app.GET("/health", s.handleHealth)
	s.app.POST("/horoscopo", s.handleHoroscope)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

type horoscopeRequest struct {
	Zodiac string `json:"zodiac" form:"zodiac"`
}

type horoscopeResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHoroscope(c echo.Context) error {
	var req horoscopeRequest
	if err := c.Bind(&req); err != nil {
		return requestError{
			Status:  http.StatusBadRequest,
			Details: "invalid request payload",
		}
	}

	message, err := s.svc.Fetch(c.Request().Context(), req.Zodiac)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, horoscopeResponse{Message: message})
}

type requestError struct {
	Status  int
	Details string
}

func (e requestError) Error() string {
	return e.Details
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func jsonErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var reqErr requestError
	if errors.As(err, &reqErr) {
		_ = c.JSON(reqErr.Status, errorBody{Error: errorMessage, Details: reqErr.Details})
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, errorBody{Error: http.StatusText(he.Code), Details: fmt.Sprint(he.Message)})
		return
	}

	slog.Error("unhandled error", "request_id", c.Response().Header().Get(echo.HeaderXRequestID), "error", err)
	_ = c.JSON(http.StatusInternalServerError, errorBody{Error: errorMessage})
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, horoscope.ErrValidation):
		return requestError{
			Status:  http.StatusBadRequest,
			Details: err.Error(),
		}
	case errors.Is(err, horoscope.ErrProvider):
		slog.Error("horoscope provider failure", "error", err)
		return requestError{
			Status:  http.StatusInternalServerError,
			Details: err.Error(),
		}
	default:
		slog.Error("horoscope failure", "error", err)
		return requestError{
			Status:  http.StatusInternalServerError,
			Details: err.Error(),
		}
	}
}

func printStartupBanner(port int) {
	host := "127.0.0.1"
	fmt.Println()
	fmt.Println("horoscopo ready")
	fmt.Printf("Listening on http://%s:%d\n", host, port)
	fmt.Println("Endpoints:")
	fmt.Println("  GET  /")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /horoscopo")
	fmt.Printf("Open http://%s:%d/ in a browser to ask for a horoscope.\n\n", host, port)
}
