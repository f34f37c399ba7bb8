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

package llm

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanjia1024/ticketflow/llm/prompt"
)

func TestNewReactAgentNilPrompt(t *testing.T) {
	assert.NotPanics(t, func() {
		_, _ = NewReactAgent(context.Background(), "desk-agent", ReactAgentOptions{
			Model: &mockModel{},
		})
	})
}

func TestMessageModifier(t *testing.T) {
	modifier := newMessageModifier(prompt.NewTextPrompt("be helpful").String(), "desk-agent", 10)
	out := modifier(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.Len(t, out, 2)
	assert.Equal(t, schema.System, out[0].Role)
	assert.Equal(t, "be helpful", out[0].Content)

	// no system prompt, no system message
	modifier = newMessageModifier("", "desk-agent", 10)
	out = modifier(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.Len(t, out, 1)
	assert.Equal(t, schema.User, out[0].Role)
}
