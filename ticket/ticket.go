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

// Package ticket holds the support-ticket domain types shared by the
// workflow labs and the MCP tool servers.
package ticket

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies a ticket once the categorize stage has run.
// Empty until then.
type Category string

const (
	CategoryUnknown   Category = ""
	CategoryBilling   Category = "billing"
	CategoryTechnical Category = "technical"
	CategoryAccount   Category = "account"
)

// NewCategory normalizes a model-produced label to a known category.
func NewCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "billing":
		return CategoryBilling
	case "technical", "tech":
		return CategoryTechnical
	case "account":
		return CategoryAccount
	}
	return CategoryUnknown
}

// Categories lists the labels the classifier is allowed to emit, in the
// order they are presented to the model.
func Categories() []Category {
	return []Category{CategoryBilling, CategoryTechnical, CategoryAccount}
}

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusUnknown     Status = ""
	StatusOpen        Status = "open"
	StatusCategorized Status = "categorized"
	StatusAnswered    Status = "answered"
	StatusEscalated   Status = "escalated"
)

// NewStatus normalizes a status label; anything outside the lifecycle set
// maps to StatusUnknown.
func NewStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen
	case "categorized":
		return StatusCategorized
	case "answered":
		return StatusAnswered
	case "escalated":
		return StatusEscalated
	}
	return StatusUnknown
}

// Ticket is an immutable value snapshot passed by copy between workflow
// stages. A stage that changes a ticket returns a new copy.
type Ticket struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Category  Category  `json:"category,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// New opens a ticket for a customer question.
func New(question string) Ticket {
	return Ticket{
		ID:        uuid.NewString(),
		Question:  question,
		Status:    StatusOpen,
		CreatedAt: time.Now().UTC(),
	}
}

// WithCategory returns a categorized copy of t.
func (t Ticket) WithCategory(c Category) Ticket {
	t.Category = c
	t.Status = StatusCategorized
	return t
}

// WithStatus returns a copy of t with the given status.
func (t Ticket) WithStatus(s Status) Ticket {
	t.Status = s
	return t
}

// DecisionKind is a supervisor's verdict on a drafted response.
type DecisionKind string

const (
	DecisionApprove  DecisionKind = "approve"
	DecisionEdit     DecisionKind = "edit"
	DecisionEscalate DecisionKind = "escalate"
)

// SupervisorDecision carries the verdict plus replacement text for Edit.
type SupervisorDecision struct {
	Kind       DecisionKind `json:"kind"`
	EditedText string       `json:"edited_text,omitempty"`
}
