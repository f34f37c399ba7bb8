// Copyright 2025 ByteDance Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package restapi is the HTTP desk backend the SSE bridge proxies to. It
// exposes the ticket store as plain JSON over REST.
package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/desk"
	"github.com/fanjia1024/ticketflow/internal/log"
	"github.com/fanjia1024/ticketflow/ticket"
)

// Server serves the desk ticket store over HTTP.
type Server struct {
	tickets desk.TicketStore
	mux     *http.ServeMux
}

func NewServer(tickets desk.TicketStore) *Server {
	s := &Server{tickets: tickets, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /tickets/{id}", s.handleGetTicket)
	s.mux.HandleFunc("PUT /tickets/{id}", s.handleUpdateTicket)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe blocks serving on addr, e.g. ":5060".
func (s *Server) ListenAndServe(addr string) error {
	log.Info("serving desk backend on %s", addr)
	if err := http.ListenAndServe(addr, s); err != nil {
		return errors.Wrapf(err, "desk backend on %s", addr)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	t, err := s.tickets.GetTicket(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var t ticket.Ticket
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if t.ID == "" {
		t.ID = id
	}
	if t.ID != id {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ticket id does not match path"})
		return
	}
	t, err := s.tickets.UpdateTicket(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, desk.ErrNotFound) {
		code = http.StatusNotFound
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("write response: %v", err)
	}
}
