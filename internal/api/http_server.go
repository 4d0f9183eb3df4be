package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"peluqueria/internal/config"
	"peluqueria/internal/database"
	"peluqueria/internal/domain"
	"peluqueria/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Services groups what the HTTP API exposes.
type Services struct {
	Clientes  domain.ClienteService
	Servicios domain.ServicioService
	Turnos    domain.TurnoService
	Actividad domain.ActivityStore
}

// HTTPServer exposes the salon operations as a JSON API.
type HTTPServer struct {
	cfg    config.APIConfig
	svc    Services
	server *http.Server
	auth   *HTTPAuth
	logger *zerolog.Logger
}

func NewHTTPServer(cfg config.APIConfig, svc Services, logger *zerolog.Logger) *HTTPServer {
	mux := http.NewServeMux()
	srv := &HTTPServer{cfg: cfg, svc: svc, logger: logger}
	srv.auth = NewHTTPAuth(cfg)

	mux.HandleFunc("GET /healthz", srv.handleHealth)

	mux.HandleFunc("GET /api/v1/clientes", srv.handleListClientes)
	mux.HandleFunc("POST /api/v1/clientes", srv.handleCreateCliente)
	mux.HandleFunc("GET /api/v1/clientes/{id}", srv.handleGetCliente)
	mux.HandleFunc("PUT /api/v1/clientes/{id}", srv.handleUpdateCliente)
	mux.HandleFunc("DELETE /api/v1/clientes/{id}", srv.handleDeleteCliente)
	mux.HandleFunc("GET /api/v1/clientes/{id}/turnos", srv.handleListTurnosCliente)

	mux.HandleFunc("GET /api/v1/servicios", srv.handleListServicios)
	mux.HandleFunc("POST /api/v1/servicios", srv.handleCreateServicio)
	mux.HandleFunc("GET /api/v1/servicios/{id}", srv.handleGetServicio)
	mux.HandleFunc("PUT /api/v1/servicios/{id}", srv.handleUpdateServicio)
	mux.HandleFunc("DELETE /api/v1/servicios/{id}", srv.handleDeleteServicio)

	mux.HandleFunc("GET /api/v1/turnos", srv.handleListTurnos)
	mux.HandleFunc("POST /api/v1/turnos", srv.handleCreateTurno)
	mux.HandleFunc("GET /api/v1/turnos/{id}", srv.handleGetTurno)
	mux.HandleFunc("PUT /api/v1/turnos/{id}", srv.handleUpdateTurno)
	mux.HandleFunc("DELETE /api/v1/turnos/{id}", srv.handleDeleteTurno)
	mux.HandleFunc("POST /api/v1/turnos/{id}/completar", srv.handleCompleteTurno)
	mux.HandleFunc("POST /api/v1/turnos/{id}/cancelar", srv.handleCancelTurno)
	mux.HandleFunc("POST /api/v1/turnos/{id}/pagos", srv.handleRegisterPayment)

	mux.HandleFunc("GET /api/v1/disponibilidad", srv.handleDisponibilidad)
	mux.HandleFunc("GET /api/v1/caja/hoy", srv.handleCajaHoy)
	mux.HandleFunc("GET /api/v1/actividad", srv.handleActividad)

	handler := loggingMiddleware(logger, srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	return srv
}

// Handler returns the fully wrapped handler.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

const requestIDHeader = "X-Request-ID"

func loggingMiddleware(logger *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.IncHTTP(endpoint)

		logger.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps the service error kinds onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsKind(err, domain.KindValidation):
		writeError(w, http.StatusBadRequest, domain.Message(err))
	case domain.IsKind(err, domain.KindNotFound):
		writeError(w, http.StatusNotFound, domain.Message(err))
	case errors.Is(err, database.ErrInUse):
		writeError(w, http.StatusConflict, domain.Message(err))
	default:
		writeError(w, http.StatusInternalServerError, domain.Message(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
