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
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/fanjia1024/ticketflow/internal/log"
	"github.com/fanjia1024/ticketflow/internal/utils"
	"github.com/fanjia1024/ticketflow/llm/prompt"
)

var _ Generator = (*Chat)(nil)

// Chat is a plain completion client: one system prompt, one user message,
// no tools. Workflow stages use it for categorize/respond calls.
type Chat struct {
	model     ChatModel
	sysPrompt prompt.Prompt
	retries   int
	timeout   time.Duration
}

type ChatOptions struct {
	SysPrompt prompt.Prompt
	Retries   int           // default: 3
	Timeout   time.Duration // per-attempt timeout, default: 600s
}

func NewChat(model ChatModel, opts ChatOptions) *Chat {
	retries := opts.Retries
	if retries == 0 {
		retries = 3
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 600 * time.Second
	}
	return &Chat{
		model:     model,
		sysPrompt: opts.SysPrompt,
		retries:   retries,
		timeout:   timeout,
	}
}

// Call sends input and returns the completion content. Transient transport
// errors are retried with capped exponential backoff; anything else fails
// the call immediately.
func (c *Chat) Call(ctx context.Context, input string) (string, error) {
	log.Debug("[User] %s", input)
	msgs := make([]*schema.Message, 0, 2)
	if c.sysPrompt != nil {
		msgs = append(msgs, schema.SystemMessage(c.sysPrompt.String()))
	}
	msgs = append(msgs, schema.UserMessage(input))

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			log.Info("Retrying LLM call (attempt %d/%d)...", attempt+1, c.retries+1)
			waitTime := time.Duration(1<<uint(attempt-1)) * time.Second
			if waitTime > 10*time.Second {
				waitTime = 10 * time.Second
			}
			select {
			case <-ctx.Done():
				return "", utils.WrapError(ctx.Err(), "chat completion")
			case <-time.After(waitTime):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		out, err := c.model.Generate(attemptCtx, msgs)
		cancel()
		if err == nil {
			log.Debug("[Assistant] %s", out.Content)
			return out.Content, nil
		}

		lastErr = err
		if !isRetryable(err) {
			log.Error("Non-retryable error occurred: %v", err)
			return "", utils.WrapError(err, "chat completion")
		}
		log.Info("Retryable error occurred (attempt %d/%d): %v", attempt+1, c.retries+1, err)
	}
	return "", utils.WrapError(lastErr, "chat completion: retries exhausted")
}

func isRetryable(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "operation timed out") ||
		strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "read tcp") ||
		strings.Contains(errStr, "write tcp")
}
