// Package server exposes sweep result logs over a read-only JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/z3rotig4r/he_opbench/report"
	"github.com/z3rotig4r/he_opbench/sweep"
)

// ResultsResponse carries the raw rows of one log.
type ResultsResponse struct {
	Variant sweep.Variant `json:"variant"`
	Rows    []RowJSON     `json:"rows"`
}

// RowJSON is the JSON form of a result row.
type RowJSON struct {
	Operation  string  `json:"operation"`
	Degree     int     `json:"poly_modulus_degree"`
	VectorSize int     `json:"vector_size,omitempty"`
	Millis     float64 `json:"time_ms"`
}

// SummaryResponse carries the aggregated statistics of one log.
type SummaryResponse struct {
	Variant sweep.Variant `json:"variant"`
	Digest  string        `json:"blake3"`
	Stats   []report.Stat `json:"stats"`
}

// Server serves the logs configured per variant.
type Server struct {
	logs map[sweep.Variant]string
}

// New returns a server reading the given log files.
func New(logs map[sweep.Variant]string) *Server {
	return &Server{logs: logs}
}

// Handler returns the routed handler wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", healthHandler).Methods("GET")
	router.HandleFunc("/api/results/{variant}", s.resultsHandler).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/summary/{variant}", s.summaryHandler).Methods("GET", "OPTIONS")

	return enableCORS(router)
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

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// load resolves the {variant} route variable and parses its log. It writes
// the error response itself and returns nil on failure.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*report.Log, string) {
	variant := sweep.Variant(mux.Vars(r)["variant"])
	path, ok := s.logs[variant]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown variant %q", variant), http.StatusNotFound)
		return nil, ""
	}

	l, err := report.ReadLogFile(path)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		log.Printf("❌ Failed to read %s log: %v", variant, err)
		http.Error(w, fmt.Sprintf("Failed to read %s log", variant), status)
		return nil, ""
	}
	if l.Variant == "" {
		l.Variant = variant
	}
	return l, path
}

func (s *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	l, _ := s.load(w, r)
	if l == nil {
		return
	}

	resp := ResultsResponse{Variant: l.Variant, Rows: make([]RowJSON, len(l.Rows))}
	for i, row := range l.Rows {
		resp.Rows[i] = RowJSON(row)
	}
	writeJSON(w, resp)
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	l, path := s.load(w, r)
	if l == nil {
		return
	}

	digest, err := report.FileDigest(path)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to hash log: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, SummaryResponse{Variant: l.Variant, Digest: digest, Stats: report.Summarize(l.Rows)})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}
