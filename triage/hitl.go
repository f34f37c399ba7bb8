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

	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/internal/log"
	"github.com/fanjia1024/ticketflow/llm"
	"github.com/fanjia1024/ticketflow/ticket"
	"github.com/fanjia1024/ticketflow/workflow"
)

// Decider supplies the supervisor's verdict on a draft. The CLI implements
// it over stdin; tests implement it with canned decisions.
type Decider interface {
	Decide(ctx context.Context, t ticket.Ticket, draft string) (ticket.SupervisorDecision, error)
}

// DeciderFunc adapts a function to a Decider.
type DeciderFunc func(ctx context.Context, t ticket.Ticket, draft string) (ticket.SupervisorDecision, error)

func (f DeciderFunc) Decide(ctx context.Context, t ticket.Ticket, draft string) (ticket.SupervisorDecision, error) {
	return f(ctx, t, draft)
}

// Gate suspends the pipeline on the Decider. If AutoEscalate is set it is
// evaluated first; a fired rule escalates without consulting the Decider.
type Gate struct {
	Decider      Decider
	AutoEscalate *workflow.Rule
}

func (Gate) Name() string { return "approval-gate" }

func (g Gate) Run(ctx context.Context, in workflow.Event) (workflow.Event, error) {
	if err := workflow.Expect(in, KindDraftGenerated); err != nil {
		return nil, err
	}
	ev := in.(DraftGenerated)
	t := ev.Ticket

	if g.AutoEscalate != nil {
		fired, err := g.AutoEscalate.Eval(map[string]any{
			"category":     string(t.Category),
			"status":       string(t.Status),
			"question_len": len(t.Question),
		})
		if err != nil {
			return nil, err
		}
		if fired {
			log.Info("auto-escalation rule fired for ticket %s", t.ID)
			return TicketEscalated{
				Ticket: t.WithStatus(ticket.StatusEscalated),
				Reason: "rule: " + g.AutoEscalate.String(),
			}, nil
		}
	}

	if g.Decider == nil {
		return nil, errors.New("approval gate has no decider")
	}
	d, err := g.Decider.Decide(ctx, t, ev.Draft)
	if err != nil {
		return nil, errors.Wrap(err, "supervisor decision")
	}

	switch d.Kind {
	case ticket.DecisionApprove:
		return ResponseFinalized{
			Ticket:   t.WithStatus(ticket.StatusAnswered),
			Response: ev.Draft,
		}, nil
	case ticket.DecisionEdit:
		if d.EditedText == "" {
			return nil, errors.New("edit decision without edited text")
		}
		return ResponseFinalized{
			Ticket:   t.WithStatus(ticket.StatusAnswered),
			Response: d.EditedText,
			Edited:   true,
		}, nil
	case ticket.DecisionEscalate:
		return TicketEscalated{
			Ticket: t.WithStatus(ticket.StatusEscalated),
			Reason: "supervisor escalation",
		}, nil
	default:
		return nil, errors.Errorf("unknown decision %q", d.Kind)
	}
}

// ReviewOutcome is the terminus of the HITL lab. Escalated runs carry no
// customer response.
type ReviewOutcome struct {
	Ticket    ticket.Ticket
	Response  string
	Edited    bool
	Escalated bool
	Reason    string
}

// Review is lab 3: Draft -> approval gate. Execution blocks inside the gate
// until the Decider answers.
type Review struct {
	Drafter      llm.Generator
	Decider      Decider
	AutoEscalate *workflow.Rule
}

// Run drafts a reply for t and resolves it through the gate.
func (r Review) Run(ctx context.Context, t ticket.Ticket) (ReviewOutcome, error) {
	pl := &workflow.Pipeline{Stages: []workflow.Stage{
		Draft{Gen: r.Drafter},
		Gate{Decider: r.Decider, AutoEscalate: r.AutoEscalate},
	}}
	res, err := pl.Run(ctx, TicketCreated{Ticket: t})
	if err != nil {
		return ReviewOutcome{}, err
	}
	switch out := res.Output.(type) {
	case ResponseFinalized:
		return ReviewOutcome{
			Ticket:   out.Ticket,
			Response: out.Response,
			Edited:   out.Edited,
		}, nil
	case TicketEscalated:
		return ReviewOutcome{
			Ticket:    out.Ticket,
			Escalated: true,
			Reason:    out.Reason,
		}, nil
	default:
		return ReviewOutcome{}, errors.Errorf("unexpected terminal event %s", res.Output.Kind())
	}
}
