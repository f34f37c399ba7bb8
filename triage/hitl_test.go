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
	"testing"

	"github.com/fanjia1024/ticketflow/ticket"
	"github.com/fanjia1024/ticketflow/workflow"
)

func cannedDecider(d ticket.SupervisorDecision) Decider {
	return DeciderFunc(func(ctx context.Context, t ticket.Ticket, draft string) (ticket.SupervisorDecision, error) {
		return d, nil
	})
}

func TestReview_Approve(t *testing.T) {
	r := Review{
		Drafter: &mockGen{reply: "the draft"},
		Decider: cannedDecider(ticket.SupervisorDecision{Kind: ticket.DecisionApprove}),
	}
	out, err := r.Run(context.Background(), ticket.New("where is my refund"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Response != "the draft" {
		t.Errorf("approve must pass the draft unmodified, got %q", out.Response)
	}
	if out.Edited || out.Escalated {
		t.Errorf("unexpected flags: %+v", out)
	}
	if out.Ticket.Status != ticket.StatusAnswered {
		t.Errorf("status: got %s", out.Ticket.Status)
	}
}

func TestReview_Edit(t *testing.T) {
	r := Review{
		Drafter: &mockGen{reply: "the draft"},
		Decider: cannedDecider(ticket.SupervisorDecision{
			Kind:       ticket.DecisionEdit,
			EditedText: "the supervisor's words",
		}),
	}
	out, err := r.Run(context.Background(), ticket.New("where is my refund"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Response != "the supervisor's words" {
		t.Errorf("edit must substitute the supplied text, got %q", out.Response)
	}
	if !out.Edited {
		t.Error("expected Edited flag")
	}
}

func TestReview_EditWithoutText(t *testing.T) {
	r := Review{
		Drafter: &mockGen{reply: "the draft"},
		Decider: cannedDecider(ticket.SupervisorDecision{Kind: ticket.DecisionEdit}),
	}
	if _, err := r.Run(context.Background(), ticket.New("q")); err == nil {
		t.Fatal("expected error for edit without text")
	}
}

func TestReview_Escalate(t *testing.T) {
	r := Review{
		Drafter: &mockGen{reply: "the draft"},
		Decider: cannedDecider(ticket.SupervisorDecision{Kind: ticket.DecisionEscalate}),
	}
	out, err := r.Run(context.Background(), ticket.New("legal threat"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Escalated {
		t.Fatal("expected escalation")
	}
	if out.Response != "" {
		t.Errorf("escalated run must carry no response, got %q", out.Response)
	}
	if out.Ticket.Status != ticket.StatusEscalated {
		t.Errorf("status: got %s", out.Ticket.Status)
	}
}

func TestReview_AutoEscalateSkipsDecider(t *testing.T) {
	rule, err := workflow.CompileRule("category == 'billing'")
	if err != nil {
		t.Fatalf("CompileRule: %v", err)
	}
	deciderCalled := false
	r := Review{
		Drafter: &mockGen{reply: "the draft"},
		Decider: DeciderFunc(func(ctx context.Context, tk ticket.Ticket, draft string) (ticket.SupervisorDecision, error) {
			deciderCalled = true
			return ticket.SupervisorDecision{Kind: ticket.DecisionApprove}, nil
		}),
		AutoEscalate: rule,
	}
	tk := ticket.New("double charge").WithCategory(ticket.CategoryBilling)
	out, err := r.Run(context.Background(), tk)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Escalated {
		t.Fatal("expected auto-escalation")
	}
	if deciderCalled {
		t.Error("decider must not run when the rule fires")
	}
}
