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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/desk"
	"github.com/fanjia1024/ticketflow/ticket"
)

var _ desk.TicketStore = (*RESTDesk)(nil)

// RESTDesk implements the ticket store against the REST desk backend. The
// SSE bridge plugs it into NewServer so remote tool calls proxy to REST.
type RESTDesk struct {
	baseURL string
	client  *http.Client
}

// NewRESTDesk targets a backend base URL, e.g. http://localhost:5060.
func NewRESTDesk(baseURL string) *RESTDesk {
	return &RESTDesk{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Ping checks the backend is reachable before the bridge starts serving.
func (d *RESTDesk) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "desk backend at %s unreachable", d.baseURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("desk backend at %s: status %d", d.baseURL, resp.StatusCode)
	}
	return nil
}

func (d *RESTDesk) GetTicket(ctx context.Context, id string) (ticket.Ticket, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/tickets/"+id, nil)
	if err != nil {
		return ticket.Ticket{}, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return ticket.Ticket{}, errors.Wrap(err, "get ticket")
	}
	defer resp.Body.Close()
	return decodeTicket(resp)
}

func (d *RESTDesk) UpdateTicket(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return ticket.Ticket{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, d.baseURL+"/tickets/"+t.ID, bytes.NewReader(body))
	if err != nil {
		return ticket.Ticket{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return ticket.Ticket{}, errors.Wrap(err, "update ticket")
	}
	defer resp.Body.Close()
	return decodeTicket(resp)
}

func decodeTicket(resp *http.Response) (ticket.Ticket, error) {
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ticket.Ticket{}, desk.ErrNotFound
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return ticket.Ticket{}, errors.Errorf("desk backend: status %d: %s", resp.StatusCode, msg)
	}
	var t ticket.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return ticket.Ticket{}, errors.Wrap(err, "decode ticket")
	}
	return t, nil
}
