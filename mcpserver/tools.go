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

	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/desk"
	"github.com/fanjia1024/ticketflow/ticket"
)

// Tool names and descriptions.
const (
	ToolGetConfig    = "get_config"
	DescGetConfig    = "Read one desk configuration value by key."
	ToolUpdateConfig = "update_config"
	DescUpdateConfig = "Set one desk configuration value."
	ToolGetTicket    = "get_ticket"
	DescGetTicket    = "Read a support ticket by id."
	ToolUpdateTicket = "update_ticket"
	DescUpdateTicket = "Update a support ticket's question, category or status. Empty fields keep their current value."
)

type GetConfigRequest struct {
	Key string `json:"key" jsonschema:"description=Configuration key to read"`
}

type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type UpdateConfigRequest struct {
	Key   string `json:"key" jsonschema:"description=Configuration key to set"`
	Value string `json:"value" jsonschema:"description=New value"`
}

type GetTicketRequest struct {
	ID string `json:"id" jsonschema:"description=Ticket id, e.g. TCK-1001"`
}

type UpdateTicketRequest struct {
	ID       string `json:"id" jsonschema:"description=Ticket id to update"`
	Question string `json:"question,omitempty" jsonschema:"description=Replacement question text"`
	Category string `json:"category,omitempty" jsonschema:"description=billing, technical or account"`
	Status   string `json:"status,omitempty" jsonschema:"description=open, categorized, answered or escalated"`
}

// configTools binds the config tool pair to a store.
func configTools(store desk.ConfigStore) []Tool {
	getConfig := func(ctx context.Context, req GetConfigRequest) (*ConfigEntry, error) {
		v, err := store.GetConfig(ctx, req.Key)
		if err != nil {
			return nil, err
		}
		return &ConfigEntry{Key: req.Key, Value: v}, nil
	}
	updateConfig := func(ctx context.Context, req UpdateConfigRequest) (*ConfigEntry, error) {
		if err := store.UpdateConfig(ctx, req.Key, req.Value); err != nil {
			return nil, err
		}
		return &ConfigEntry{Key: req.Key, Value: req.Value}, nil
	}
	return []Tool{
		NewTool(ToolGetConfig, DescGetConfig, getConfig),
		NewTool(ToolUpdateConfig, DescUpdateConfig, updateConfig),
	}
}

// ticketTools binds the ticket tool pair to a store.
func ticketTools(store desk.TicketStore) []Tool {
	getTicket := func(ctx context.Context, req GetTicketRequest) (*ticket.Ticket, error) {
		t, err := store.GetTicket(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	updateTicket := func(ctx context.Context, req UpdateTicketRequest) (*ticket.Ticket, error) {
		t, err := store.GetTicket(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if req.Question != "" {
			t.Question = req.Question
		}
		if req.Category != "" {
			cat := ticket.NewCategory(req.Category)
			if cat == ticket.CategoryUnknown {
				return nil, errors.Errorf("unknown category %q, want one of %v", req.Category, ticket.Categories())
			}
			t.Category = cat
		}
		if req.Status != "" {
			st := ticket.NewStatus(req.Status)
			if st == ticket.StatusUnknown {
				return nil, errors.Errorf("unknown status %q", req.Status)
			}
			t.Status = st
		}
		t, err = store.UpdateTicket(ctx, t)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	return []Tool{
		NewTool(ToolGetTicket, DescGetTicket, getTicket),
		NewTool(ToolUpdateTicket, DescUpdateTicket, updateTicket),
	}
}
