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

package mcpserver

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanjia1024/ticketflow/desk"
	"github.com/fanjia1024/ticketflow/restapi"
	"github.com/fanjia1024/ticketflow/ticket"
)

func TestRESTDesk(t *testing.T) {
	backend := httptest.NewServer(restapi.NewServer(desk.NewStore()))
	defer backend.Close()

	ctx := context.Background()
	d := NewRESTDesk(backend.URL)

	require.NoError(t, d.Ping(ctx))

	tk, err := d.GetTicket(ctx, "TCK-1001")
	require.NoError(t, err)
	assert.Equal(t, ticket.CategoryBilling, tk.Category)

	tk = tk.WithStatus(ticket.StatusEscalated)
	tk, err = d.UpdateTicket(ctx, tk)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusEscalated, tk.Status)

	tk, err = d.GetTicket(ctx, "TCK-1001")
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusEscalated, tk.Status)

	_, err = d.GetTicket(ctx, "TCK-9999")
	assert.ErrorIs(t, err, desk.ErrNotFound)
}

func TestRESTDeskPingDown(t *testing.T) {
	backend := httptest.NewServer(restapi.NewServer(desk.NewStore()))
	backend.Close()

	d := NewRESTDesk(backend.URL)
	assert.Error(t, d.Ping(context.Background()))
}

// The ticket tool pair works unchanged when backed by the REST desk, which
// is how the SSE bridge wires it.
func TestTicketToolsOverRESTDesk(t *testing.T) {
	backend := httptest.NewServer(restapi.NewServer(desk.NewStore()))
	defer backend.Close()

	tools := ticketTools(NewRESTDesk(backend.URL))

	text, isErr := callTool(t, findTool(t, tools, ToolUpdateTicket), map[string]any{
		"id":       "TCK-1002",
		"category": "technical",
		"status":   string(ticket.StatusCategorized),
	})
	assert.False(t, isErr)
	assert.Contains(t, text, "categorized")
}
