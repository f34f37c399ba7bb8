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
	"time"

	etool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/internal/log"
	"github.com/fanjia1024/ticketflow/internal/utils"
	"github.com/fanjia1024/ticketflow/llm/prompt"
)

var _ Generator = (*ReactAgent)(nil)

// ReactAgent runs a tool-calling loop over a chat model. The MCP demos hand
// it the ticket-desk tools so the model can read and update tickets itself.
type ReactAgent struct {
	opts ReactAgentOptions
	*react.Agent
	retries int
	timeout time.Duration
}

type ReactAgentOptions struct {
	SysPrompt prompt.Prompt `json:"-"`
	Model     ChatModel     `json:"-"`
	Tools     []etool.BaseTool
	MaxSteps  int           `json:"max_steps"` // default: 10
	Retries   int           `json:"retries"`   // default: 3
	Timeout   time.Duration `json:"timeout"`   // default: 600s
}

func NewReactAgent(ctx context.Context, name string, opts ReactAgentOptions) (*ReactAgent, error) {
	if opts.MaxSteps == 0 {
		opts.MaxSteps = 10
	}
	sysPrompt := ""
	if opts.SysPrompt != nil {
		sysPrompt = opts.SysPrompt.String()
	}
	agent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: opts.Model,
		ToolsConfig:      compose.ToolsNodeConfig{Tools: opts.Tools},
		MaxStep:          opts.MaxSteps,
		MessageModifier:  newMessageModifier(sysPrompt, name, opts.MaxSteps),
	})
	if err != nil {
		return nil, errors.Wrap(err, "new react agent")
	}
	retries := opts.Retries
	if retries == 0 {
		retries = 3
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 600 * time.Second
	}
	return &ReactAgent{
		opts:    opts,
		Agent:   agent,
		retries: retries,
		timeout: timeout,
	}, nil
}

func newMessageModifier(sysPrompt string, name string, limit int) func(ctx context.Context, input []*schema.Message) []*schema.Message {
	return func(ctx context.Context, input []*schema.Message) []*schema.Message {
		log.Debug("newMessageModifier, name: %v, limit: %d, input: %v", name, limit, len(input))
		if limit > 0 && len(input) >= limit-1 {
			input = append(input, schema.UserMessage("Step limit reached. Answer now without calling more tools."))
		}
		res := make([]*schema.Message, 0, len(input)+1)
		if sysPrompt != "" {
			res = append(res, schema.SystemMessage(sysPrompt))
		}
		res = append(res, input...)
		return res
	}
}

func (p *ReactAgent) Call(ctx context.Context, input string) (string, error) {
	log.Debug("[User] %s", input)
	inputMsgs := []*schema.Message{schema.UserMessage(input)}

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			log.Info("Retrying agent call (attempt %d/%d)...", attempt+1, p.retries+1)
			waitTime := time.Duration(1<<uint(attempt-1)) * time.Second
			if waitTime > 10*time.Second {
				waitTime = 10 * time.Second
			}
			select {
			case <-ctx.Done():
				return "", utils.WrapError(ctx.Err(), "react agent")
			case <-time.After(waitTime):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		out, err := p.Generate(attemptCtx, inputMsgs)
		cancel()
		if err == nil {
			return out.Content, nil
		}

		lastErr = err
		if !isRetryable(err) {
			log.Error("Non-retryable error occurred: %v", err)
			return "", utils.WrapError(err, "react agent round trip")
		}
		log.Info("Retryable error occurred (attempt %d/%d): %v", attempt+1, p.retries+1, err)
	}
	return "", utils.WrapError(lastErr, "react agent: retries exhausted")
}
