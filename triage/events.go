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

// Package triage implements the three ticket labs on top of the workflow
// machinery: the sequential intake pipeline, the concurrent expert fan-out,
// and the human-reviewed draft pipeline.
package triage

import (
	"github.com/fanjia1024/ticketflow/ticket"
	"github.com/fanjia1024/ticketflow/workflow"
)

// Event kinds. Each kind is produced by exactly one stage.
const (
	KindQuestionReceived    workflow.EventKind = "question.received"
	KindTicketCreated       workflow.EventKind = "ticket.created"
	KindTicketCategorized   workflow.EventKind = "ticket.categorized"
	KindResponseGenerated   workflow.EventKind = "response.generated"
	KindResponsesAggregated workflow.EventKind = "responses.aggregated"
	KindDraftGenerated      workflow.EventKind = "draft.generated"
	KindResponseFinalized   workflow.EventKind = "response.finalized"
	KindTicketEscalated     workflow.EventKind = "ticket.escalated"
)

// QuestionReceived starts a run from a raw customer question.
type QuestionReceived struct {
	Question string
}

func (QuestionReceived) Kind() workflow.EventKind { return KindQuestionReceived }

// TicketCreated is produced by the intake stage.
type TicketCreated struct {
	Ticket ticket.Ticket
}

func (TicketCreated) Kind() workflow.EventKind { return KindTicketCreated }

// TicketCategorized is produced by the categorize stage.
type TicketCategorized struct {
	Ticket ticket.Ticket
}

func (TicketCategorized) Kind() workflow.EventKind { return KindTicketCategorized }

// ResponseGenerated is produced by the respond stage and by each expert
// branch. Expert is empty in the sequential lab.
type ResponseGenerated struct {
	Ticket   ticket.Ticket
	Expert   string
	Response string
}

func (ResponseGenerated) Kind() workflow.EventKind { return KindResponseGenerated }

// ResponsesAggregated is the fan-in output of the concurrent lab.
type ResponsesAggregated struct {
	Question string
	Sections []ExpertSection
	Combined string
}

func (ResponsesAggregated) Kind() workflow.EventKind { return KindResponsesAggregated }

// ExpertSection is one expert's contribution, in fixed expert order.
type ExpertSection struct {
	Expert   string
	Response string
}

// DraftGenerated is produced by the draft stage and consumed by the gate.
type DraftGenerated struct {
	Ticket ticket.Ticket
	Draft  string
}

func (DraftGenerated) Kind() workflow.EventKind { return KindDraftGenerated }

// ResponseFinalized is the gate's output for Approve and Edit decisions.
type ResponseFinalized struct {
	Ticket   ticket.Ticket
	Response string
	Edited   bool
}

func (ResponseFinalized) Kind() workflow.EventKind { return KindResponseFinalized }

// TicketEscalated is the gate's terminal event for Escalate decisions and
// fired auto-escalation rules. It carries no customer response.
type TicketEscalated struct {
	Ticket ticket.Ticket
	Reason string
}

func (TicketEscalated) Kind() workflow.EventKind { return KindTicketEscalated }
