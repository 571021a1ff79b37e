package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/animgraph/internal/logging"
	"github.com/aretw0/animgraph/internal/presentation/graph"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a slot store read-only over HTTP.
type Server struct {
	Store    ports.SlotStore
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics serves the collectors of g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// SlotInfo is the listing entry of a slot.
type SlotInfo struct {
	Key       string    `json:"key"`
	ID        string    `json:"id"`
	Revision  int       `json:"revision"`
	Bytes     int       `json:"bytes"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlotResponse is a slot with its content inlined.
type SlotResponse struct {
	SlotInfo
	Content json.RawMessage `json:"content"`
}

func info(slot *domain.Slot) SlotInfo {
	return SlotInfo{
		Key:       slot.Key,
		ID:        slot.ID,
		Revision:  slot.Revision,
		Bytes:     len(slot.Content),
		UpdatedAt: slot.UpdatedAt,
	}
}

// NewHandler creates the HTTP handler for store.
func NewHandler(store ports.SlotStore, opts ...Option) http.Handler {
	s := &Server{Store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/containers/{container}/slots", func(r chi.Router) {
		r.Get("/", s.ListSlots)
		r.Get("/{key}", s.GetSlot)
		r.Get("/{key}/graph", s.GetGraph)
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListSlots handles GET /containers/{container}/slots.
func (s *Server) ListSlots(w http.ResponseWriter, r *http.Request) {
	container := chi.URLParam(r, "container")
	keys, err := s.Store.List(r.Context(), container)
	if err != nil {
		s.fail(w, "ListSlots", err)
		return
	}

	out := make([]SlotInfo, 0, len(keys))
	for _, key := range keys {
		slot, err := s.Store.Get(r.Context(), container, key)
		if errors.Is(err, domain.ErrSlotNotFound) {
			// Removed between List and Get.
			continue
		}
		if err != nil {
			s.fail(w, "ListSlots", err)
			return
		}
		out = append(out, info(slot))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetSlot handles GET /containers/{container}/slots/{key}.
func (s *Server) GetSlot(w http.ResponseWriter, r *http.Request) {
	slot, ok := s.lookup(w, r)
	if !ok {
		return
	}
	resp := SlotResponse{SlotInfo: info(slot)}
	if json.Valid(slot.Content) {
		resp.Content = slot.Content
	} else {
		quoted, _ := json.Marshal(string(slot.Content))
		resp.Content = quoted
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetGraph handles GET /containers/{container}/slots/{key}/graph.
// It renders every layer of the stored controller as Mermaid, or a single
// one with ?layer=<name>.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	slot, ok := s.lookup(w, r)
	if !ok {
		return
	}
	ctrl, err := domain.DecodeController(slot.Content)
	if err != nil || len(ctrl.Layers) == 0 {
		http.Error(w, "Slot does not hold a controller", http.StatusUnprocessableEntity)
		return
	}

	var sb strings.Builder
	name := r.URL.Query().Get("layer")
	for _, l := range ctrl.Layers {
		if name != "" && l.Name != name {
			continue
		}
		sb.WriteString("%% " + l.Name + "\n")
		sb.WriteString(graph.LayerMermaid(l, nil))
	}
	if sb.Len() == 0 {
		http.Error(w, "Layer not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(sb.String()))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*domain.Slot, bool) {
	container := chi.URLParam(r, "container")
	key := chi.URLParam(r, "key")
	slot, err := s.Store.Get(r.Context(), container, key)
	if errors.Is(err, domain.ErrSlotNotFound) {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		s.fail(w, "GetSlot", err)
		return nil, false
	}
	return slot, true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	s.Logger.Error(op+" failed", "err", err)
	http.Error(w, "Store error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
