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

// Package desk is the ticket-desk backing store shared by the MCP tool
// server and the REST backend: desk configuration plus tickets, in memory,
// read-after-write consistent within the process.
package desk

import (
	"context"

	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/ticket"
)

// ErrNotFound is returned for unknown config keys and ticket IDs.
var ErrNotFound = errors.New("desk: not found")

// ConfigStore is the config half of the desk tool surface.
type ConfigStore interface {
	GetConfig(ctx context.Context, key string) (string, error)
	UpdateConfig(ctx context.Context, key, value string) error
}

// TicketStore is the ticket half of the desk tool surface.
type TicketStore interface {
	GetTicket(ctx context.Context, id string) (ticket.Ticket, error)
	UpdateTicket(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error)
}
