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

	"github.com/fanjia1024/ticketflow/llm"
	"github.com/fanjia1024/ticketflow/ticket"
	"github.com/fanjia1024/ticketflow/workflow"
)

// FinalResponse is the terminus of the sequential lab.
type FinalResponse struct {
	Ticket   ticket.Ticket
	Response string
}

// Sequential is lab 1: Intake -> Categorize -> Respond, each stage strictly
// after the previous one. Any stage error aborts with no partial output.
type Sequential struct {
	Categorizer llm.Generator
	Responder   llm.Generator
}

// Run threads a question through the pipeline and returns the final reply.
func (s Sequential) Run(ctx context.Context, question string) (FinalResponse, error) {
	pl := &workflow.Pipeline{Stages: []workflow.Stage{
		Intake{},
		Categorize{Gen: s.Categorizer},
		Respond{Gen: s.Responder},
	}}
	res, err := pl.Run(ctx, QuestionReceived{Question: question})
	if err != nil {
		return FinalResponse{}, err
	}
	out := res.Output.(ResponseGenerated)
	return FinalResponse{Ticket: out.Ticket, Response: out.Response}, nil
}
