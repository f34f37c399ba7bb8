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

package restapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanjia1024/ticketflow/desk"
	"github.com/fanjia1024/ticketflow/ticket"
)

func newTestServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(NewServer(desk.NewStore()))
	t.Cleanup(srv.Close)
	return srv
}

func getTicket(t *testing.T, srv *httptest.Server, id string) (*http.Response, ticket.Ticket) {
	resp, err := http.Get(srv.URL + "/tickets/" + id)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var tk ticket.Ticket
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tk))
	}
	return resp, tk
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetTicket(t *testing.T) {
	srv := newTestServer(t)

	resp, tk := getTicket(t, srv, "TCK-1001")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ticket.CategoryBilling, tk.Category)

	resp, _ = getTicket(t, srv, "TCK-9999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateTicket(t *testing.T) {
	srv := newTestServer(t)

	_, tk := getTicket(t, srv, "TCK-1002")
	tk = tk.WithStatus(ticket.StatusAnswered)

	body, err := json.Marshal(tk)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/tickets/TCK-1002", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, tk = getTicket(t, srv, "TCK-1002")
	assert.Equal(t, ticket.StatusAnswered, tk.Status)
}

func TestUpdateTicketIDMismatch(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(ticket.Ticket{ID: "TCK-1001", Question: "q"})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/tickets/TCK-1002", bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
