package httpapi

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roach88/mutantd/internal/dna"
)

//go:embed landing.html
var landingPage []byte

// DefaultMaxBodyBytes bounds POST /mutant bodies when Options leaves it unset.
const DefaultMaxBodyBytes = 1 << 20

// Classifier is the ledger as seen by the HTTP layer.
type Classifier interface {
	Classify(ctx context.Context, rows []string) (bool, error)
	Statistics(ctx context.Context) (dna.Stats, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the router. The zero value is usable.
type Options struct {
	MaxBodyBytes int64        // 0 means DefaultMaxBodyBytes, negative disables the limit
	Logger       *slog.Logger // nil means slog.Default()
	IDs          IDGenerator  // nil means UUIDv7Generator
	Health       Pinger       // nil means /healthz always reports ok
}

// Server holds the handlers' dependencies.
type Server struct {
	ledger Classifier
	health Pinger
	logger *slog.Logger
}

// NewRouter builds the chi router serving the mutant API.
func NewRouter(ledger Classifier, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.IDs == nil {
		opts.IDs = UUIDv7Generator{}
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{ledger: ledger, health: opts.Health, logger: opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID(opts.IDs))
	r.Use(LogRequests(opts.Logger))
	r.Use(Recover(opts.Logger))

	r.Get("/", s.handleLanding)
	r.Get("/stats", s.handleStats)
	r.Get("/healthz", s.handleHealth)
	r.With(MaxBody(opts.MaxBodyBytes)).Post("/mutant", s.handleMutant)

	return r
}

func (s *Server) handleLanding(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(landingPage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.logger.Error("health check failed", "request_id", RequestIDFrom(r.Context()), "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
