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
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockModel fails every Generate call with a fixed error.
type mockModel struct {
	err   error
	calls atomic.Int32
}

func (m *mockModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage("ok", nil), nil
}

func (m *mockModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func (m *mockModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func TestNewModelType(t *testing.T) {
	assert.Equal(t, ModelTypeAzure, NewModelType("azure"))
	assert.Equal(t, ModelTypeAzure, NewModelType("Azure"))
	assert.Equal(t, ModelTypeOpenAI, NewModelType("openai"))
	assert.Equal(t, ModelTypeOllama, NewModelType("ollama"))
	assert.Equal(t, ModelTypeUnknown, NewModelType("claude"))
}

func TestIsRetryable(t *testing.T) {
	retryable := []error{
		errors.New("dial tcp: i/o timeout"),
		errors.New("read tcp 127.0.0.1:5070: connection reset by peer"),
		errors.New("connection refused"),
		errors.New("context deadline exceeded"),
	}
	for _, err := range retryable {
		assert.True(t, isRetryable(err), "%v", err)
	}

	permanent := []error{
		errors.New("status 401: invalid api key"),
		errors.New("model not found"),
	}
	for _, err := range permanent {
		assert.False(t, isRetryable(err), "%v", err)
	}
}

func TestChatCallStopsBackoffOnCancel(t *testing.T) {
	m := &mockModel{err: errors.New("connection refused")}
	c := NewChat(m, ChatOptions{Retries: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := c.Call(ctx, "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 500*time.Millisecond, "backoff ignored cancellation")
	assert.Equal(t, int32(1), m.calls.Load())
}
