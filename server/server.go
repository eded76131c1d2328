package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"lottosim/application"
	"lottosim/domain/entities"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// Server exposes the simulator over HTTP.
type Server struct {
	simulator  *application.Simulator
	httpServer *http.Server
	router     chi.Router
}

// New creates a server listening on addr
func New(addr string, simulator *application.Simulator) *Server {
	s := &Server{simulator: simulator}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/purchase", s.handlePurchase)
		r.Get("/tickets/{game}", s.handleTickets)
		r.Get("/stats", s.handleStats)
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Delete("/data", s.handleClear)
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener closes
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("Starting HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Debug("Handled request")
	})
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	game, err := entities.ParseGame(req.Game)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.simulator.Purchase(r.Context(), req.toDomain(game), nil)
	if err != nil {
		var selErr *entities.InvalidSelectionError
		if errors.As(err, &selErr) {
			writeError(w, http.StatusBadRequest, selErr.Error())
			return
		}
		log.WithError(err).Error("Purchase failed")
		writeError(w, http.StatusInternalServerError, "purchase failed")
		return
	}

	writeJSON(w, http.StatusCreated, purchaseResponse{
		Count:   result.Count(),
		Lotto:   result.Lotto,
		Scratch: result.Scratch,
		Pension: result.Pension,
	})
}

func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	game, err := entities.ParseGame(chi.URLParam(r, "game"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch game {
	case entities.GameLotto645:
		writeJSON(w, http.StatusOK, s.simulator.LottoTickets())
	case entities.GameSpeetto1000:
		writeJSON(w, http.StatusOK, s.simulator.ScratchTickets())
	case entities.GamePension720:
		writeJSON(w, http.StatusOK, s.simulator.PensionTickets())
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	response := statsResponse{Combined: s.simulator.CombinedStats()}

	var err error
	if response.Lotto645, err = s.simulator.Stats(entities.GameLotto645); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if response.Speetto1000, err = s.simulator.Stats(entities.GameSpeetto1000); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if response.Pension720, err = s.simulator.Stats(entities.GamePension720); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.simulator.Export()
	if err != nil {
		log.WithError(err).Error("Export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := s.simulator.Import(r.Context(), data); err != nil {
		var ioErr *entities.IOError
		if errors.As(err, &ioErr) {
			log.WithError(err).Error("Import failed")
			writeError(w, http.StatusInternalServerError, "import failed")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.simulator.ClearAll(r.Context()); err != nil {
		log.WithError(err).Error("Clear failed")
		writeError(w, http.StatusInternalServerError, "clear failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
