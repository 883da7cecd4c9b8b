// Package httpapi is the HTTP/JSON boundary of the tracker. It maps typed
// service results onto status codes and never contains business rules of its
// own: unauthenticated is 401, missing or foreign rows are 404, duplicate
// email and category-in-use are 400.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gastor/internal/logging"
	"gastor/internal/server/services"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gorilla/mux"
)

// Server serves the public HTTP API.
type Server struct {
	address        string
	logger         logging.Logger
	users          *services.UserService
	ledger         *services.LedgerService
	dashboard      *services.DashboardService
	allowedOrigins []string

	router     *mux.Router
	handler    http.Handler
	validator  *validator.Validate
	translator ut.Translator
}

// NewServer wires handlers, validation, and middleware. allowedOrigins feeds
// the CORS layer for the browser frontend.
func NewServer(addr string, l logging.Logger, us *services.UserService, ls *services.LedgerService, ds *services.DashboardService, allowedOrigins []string) (*Server, error) {
	s := &Server{
		address:        addr,
		logger:         l.With("module", "http_server"),
		users:          us,
		ledger:         ls,
		dashboard:      ds,
		allowedOrigins: allowedOrigins,
	}

	s.validator = validator.New()
	eng := en.New()
	uni := ut.New(eng, eng)
	translator, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("translator not found")
	}
	s.translator = translator
	if err := entranslations.RegisterDefaultTranslations(s.validator, s.translator); err != nil {
		return nil, err
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router = mux.NewRouter()

	s.router.HandleFunc("/users", s.register).Methods(http.MethodPost)
	s.router.HandleFunc("/token", s.login).Methods(http.MethodPost)

	// Everything below requires a bearer token.
	authed := s.router.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)
	authed.HandleFunc("/users/me", s.currentUser).Methods(http.MethodGet)

	authed.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	authed.HandleFunc("/categories", s.createCategory).Methods(http.MethodPost)
	authed.HandleFunc("/categories/{id:[0-9]+}", s.updateCategory).Methods(http.MethodPut)
	authed.HandleFunc("/categories/{id:[0-9]+}", s.deleteCategory).Methods(http.MethodDelete)

	authed.HandleFunc("/transactions", s.listTransactions).Methods(http.MethodGet)
	authed.HandleFunc("/transactions", s.createTransaction).Methods(http.MethodPost)
	authed.HandleFunc("/transactions/{id:[0-9]+}", s.updateTransaction).Methods(http.MethodPut)
	authed.HandleFunc("/transactions/{id:[0-9]+}", s.deleteTransaction).Methods(http.MethodDelete)

	authed.HandleFunc("/dashboard/summary", s.dashboardSummary).Methods(http.MethodGet)

	// CORS wraps the whole router so preflight requests are answered even
	// for method/path combinations mux would otherwise reject.
	s.handler = s.corsMiddleware(s.traceMiddleware(s.router))
}

// Handler exposes the configured middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
