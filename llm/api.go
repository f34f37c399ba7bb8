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

// Package llm wraps the chat-model backends used by the labs behind a small
// Generator interface. Azure OpenAI is the default; ollama is the offline
// fallback for workshops without an Azure subscription.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
)

type ModelConfig struct {
	Name      string    `json:"name"` // alias of the config, not endpoint!
	APIType   ModelType `json:"type"`
	BaseURL   string    `json:"base_url"`
	APIKey    string    `json:"api_key"`
	ModelName string    `json:"model_name"` // deployment (Azure) or model name
	// APIVersion is required when APIType is azure, e.g. "2024-06-01".
	APIVersion  string        `json:"api_version"`
	Temperature *float32      `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"` // HTTP request timeout, default: 600s
	Retries     int           `json:"retries"` // Number of retries on failure, default: 3
}

type ModelType string

func NewModelType(t string) ModelType {
	switch strings.ToLower(t) {
	case "azure", "azure-openai", "aoai":
		return ModelTypeAzure
	case "openai", "gpt":
		return ModelTypeOpenAI
	case "ollama":
		return ModelTypeOllama
	}
	return ModelTypeUnknown
}

const (
	ModelTypeUnknown ModelType = ""
	ModelTypeAzure   ModelType = "azure"
	ModelTypeOpenAI  ModelType = "openai"
	ModelTypeOllama  ModelType = "ollama"
)

// Generator is the interface the workflow stages call.
type Generator interface {
	// Call calls the LLM with the input.
	Call(ctx context.Context, input string) (string, error)
}

// ChatModel is the interface for making LLM backend.
type ChatModel interface {
	model.ToolCallingChatModel
}
