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

package triage

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/llm"
	"github.com/fanjia1024/ticketflow/ticket"
	"github.com/fanjia1024/ticketflow/workflow"
)

// Intake opens a ticket for the incoming question.
type Intake struct{}

func (Intake) Name() string { return "intake" }

func (Intake) Run(ctx context.Context, in workflow.Event) (workflow.Event, error) {
	if err := workflow.Expect(in, KindQuestionReceived); err != nil {
		return nil, err
	}
	q := in.(QuestionReceived)
	if q.Question == "" {
		return nil, errors.New("empty question")
	}
	return TicketCreated{Ticket: ticket.New(q.Question)}, nil
}

// Categorize asks the model for a category label. The prompt pins the label
// set, so a fixed completion yields a deterministic category.
type Categorize struct {
	Gen llm.Generator
}

func (Categorize) Name() string { return "categorize" }

func (c Categorize) Run(ctx context.Context, in workflow.Event) (workflow.Event, error) {
	if err := workflow.Expect(in, KindTicketCreated); err != nil {
		return nil, err
	}
	t := in.(TicketCreated).Ticket
	label, err := c.Gen.Call(ctx, t.Question)
	if err != nil {
		return nil, err
	}
	cat := ticket.NewCategory(label)
	if cat == ticket.CategoryUnknown {
		return nil, errors.Errorf("model returned unknown category %q", label)
	}
	return TicketCategorized{Ticket: t.WithCategory(cat)}, nil
}

// Respond generates the customer-facing answer for a categorized ticket.
type Respond struct {
	Gen llm.Generator
}

func (Respond) Name() string { return "respond" }

func (r Respond) Run(ctx context.Context, in workflow.Event) (workflow.Event, error) {
	if err := workflow.Expect(in, KindTicketCategorized); err != nil {
		return nil, err
	}
	t := in.(TicketCategorized).Ticket
	resp, err := r.Gen.Call(ctx, fmt.Sprintf("Category: %s\nQuestion: %s", t.Category, t.Question))
	if err != nil {
		return nil, err
	}
	return ResponseGenerated{
		Ticket:   t.WithStatus(ticket.StatusAnswered),
		Response: resp,
	}, nil
}

// Expert is one branch of the concurrent lab: it answers the raw question
// from a single specialist's point of view.
type Expert struct {
	ExpertName string
	Gen        llm.Generator
}

func (e Expert) Name() string { return "expert-" + e.ExpertName }

func (e Expert) Run(ctx context.Context, in workflow.Event) (workflow.Event, error) {
	if err := workflow.Expect(in, KindQuestionReceived); err != nil {
		return nil, err
	}
	q := in.(QuestionReceived)
	resp, err := e.Gen.Call(ctx, q.Question)
	if err != nil {
		return nil, err
	}
	return ResponseGenerated{Expert: e.ExpertName, Response: resp}, nil
}

// Draft writes the reply a supervisor will review.
type Draft struct {
	Gen llm.Generator
}

func (Draft) Name() string { return "draft" }

func (d Draft) Run(ctx context.Context, in workflow.Event) (workflow.Event, error) {
	if err := workflow.Expect(in, KindTicketCreated); err != nil {
		return nil, err
	}
	t := in.(TicketCreated).Ticket
	draft, err := d.Gen.Call(ctx, fmt.Sprintf("Category: %s\nQuestion: %s", t.Category, t.Question))
	if err != nil {
		return nil, err
	}
	return DraftGenerated{Ticket: t, Draft: draft}, nil
}
