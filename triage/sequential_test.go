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
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/ticket"
)

// mockGen answers with a fixed reply, or echoes a reply derived from the
// input via fn. It records every input it saw.
type mockGen struct {
	reply string
	fn    func(input string) string
	err   error
	calls []string
}

func (m *mockGen) Call(ctx context.Context, input string) (string, error) {
	m.calls = append(m.calls, input)
	if m.err != nil {
		return "", m.err
	}
	if m.fn != nil {
		return m.fn(input), nil
	}
	return m.reply, nil
}

func TestSequential_Run(t *testing.T) {
	categorizer := &mockGen{reply: "billing"}
	responder := &mockGen{fn: func(input string) string {
		// Reply text depends on the category line the respond stage sends.
		return "reply for " + strings.SplitN(strings.TrimPrefix(input, "Category: "), "\n", 2)[0]
	}}

	seq := Sequential{Categorizer: categorizer, Responder: responder}
	final, err := seq.Run(context.Background(), "Why was I charged twice?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if final.Ticket.Category != ticket.CategoryBilling {
		t.Errorf("category: got %s", final.Ticket.Category)
	}
	if final.Ticket.Status != ticket.StatusAnswered {
		t.Errorf("status: got %s", final.Ticket.Status)
	}
	if final.Response != "reply for billing" {
		t.Errorf("response: got %q", final.Response)
	}
	if len(categorizer.calls) != 1 || categorizer.calls[0] != "Why was I charged twice?" {
		t.Errorf("categorizer calls: %v", categorizer.calls)
	}
}

func TestSequential_ResponseVariesByCategory(t *testing.T) {
	responder := &mockGen{fn: func(input string) string { return "echo: " + input }}
	for _, cat := range []string{"billing", "technical", "account"} {
		seq := Sequential{Categorizer: &mockGen{reply: cat}, Responder: responder}
		final, err := seq.Run(context.Background(), "help")
		if err != nil {
			t.Fatalf("Run(%s): %v", cat, err)
		}
		if !strings.Contains(final.Response, "Category: "+cat) {
			t.Errorf("response for %s does not carry its category: %q", cat, final.Response)
		}
	}
}

func TestSequential_UnknownCategoryAborts(t *testing.T) {
	seq := Sequential{
		Categorizer: &mockGen{reply: "gibberish"},
		Responder:   &mockGen{reply: "never"},
	}
	if _, err := seq.Run(context.Background(), "help"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestSequential_StageErrorAborts(t *testing.T) {
	responder := &mockGen{reply: "never"}
	seq := Sequential{
		Categorizer: &mockGen{err: errors.New("model down")},
		Responder:   responder,
	}
	if _, err := seq.Run(context.Background(), "help"); err == nil {
		t.Fatal("expected error")
	}
	if len(responder.calls) != 0 {
		t.Error("responder must not run after categorize fails")
	}
}

func TestSequential_EmptyQuestion(t *testing.T) {
	seq := Sequential{Categorizer: &mockGen{reply: "billing"}, Responder: &mockGen{}}
	if _, err := seq.Run(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty question")
	}
}
