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
	"strings"

	"github.com/fanjia1024/ticketflow/llm"
	"github.com/fanjia1024/ticketflow/workflow"
)

// Expert names, in the fixed order their sections are concatenated.
const (
	ExpertBilling   = "billing"
	ExpertTechnical = "technical"
)

// Concurrent is lab 2: the same question fans out to the billing and
// technical experts in parallel; the join is all-or-nothing and the combined
// output keeps the fixed expert order.
type Concurrent struct {
	Billing   llm.Generator
	Technical llm.Generator
}

// Run dispatches the question to both experts and concatenates their answers.
func (c Concurrent) Run(ctx context.Context, question string) (ResponsesAggregated, error) {
	outs, err := workflow.Gather(ctx, QuestionReceived{Question: question},
		Expert{ExpertName: ExpertBilling, Gen: c.Billing},
		Expert{ExpertName: ExpertTechnical, Gen: c.Technical},
	)
	if err != nil {
		return ResponsesAggregated{}, err
	}

	agg := ResponsesAggregated{Question: question}
	var b strings.Builder
	for i, out := range outs {
		resp := out.(ResponseGenerated)
		agg.Sections = append(agg.Sections, ExpertSection{
			Expert:   resp.Expert,
			Response: resp.Response,
		})
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", resp.Expert, resp.Response)
	}
	agg.Combined = b.String()
	return agg, nil
}
