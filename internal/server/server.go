// Package server exposes the engine's operations over a minimal synchronous
// HTTP GET surface. It is pure presentation: every handler unmarshals query
// parameters, calls the engine, and serializes the result. The artifact tree
// root is injected at construction and never mutated afterwards, so the
// default concurrent request handling of net/http needs no extra locking.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/agentx-labs/wayfind/internal/catalog"
	"github.com/agentx-labs/wayfind/internal/engine"
)

// Server serves the HTTP front-end for one artifact tree root.
type Server struct {
	eng  *engine.Engine
	port int
}

// New constructs a server for the given root and port.
func New(root string, port int) *Server {
	return &Server{eng: engine.New(root), port: port}
}

// Handler returns the route table as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", s.handlePing)
	mux.HandleFunc("/catalog", s.handleCatalog)
	mux.HandleFunc("/lookup", s.handleLookup)
	mux.HandleFunc("/resolve", s.handleResolve)
	mux.HandleFunc("/", s.handleNotFound)
	return mux
}

// ListenAndServe blocks serving requests until the listener fails.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("wayfind serving %s (root %s)", addr, s.eng.Root())
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.eng.Ping())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result := s.eng.Catalog(catalog.Filter{
		Facet:  q.Get("facet"),
		Grep:   q.Get("grep"),
		Client: q.Get("client"),
	})
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.eng.Lookup(r.URL.Query().Get("term")))
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := s.eng.Resolve(engine.ResolveInput{
		Intent: q.Get("intent"),
		Term:   q.Get("term"),
		Client: q.Get("client"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

// writeError reports a failure body. The error message starts with its
// classification string so automated consumers can branch on it, same as the
// CLI surface.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
