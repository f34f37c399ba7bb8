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

package prompt

import (
	_ "embed"
)

type Prompt interface {
	String() string
}

type TextPrompt string

func (p TextPrompt) String() string {
	return string(p)
}

func NewTextPrompt(content string) Prompt {
	return TextPrompt(content)
}

//go:embed categorize.md
var PromptCategorize string

//go:embed respond.md
var PromptRespond string

//go:embed billing_expert.md
var PromptBillingExpert string

//go:embed technical_expert.md
var PromptTechnicalExpert string

//go:embed draft.md
var PromptDraft string

//go:embed desk_agent.md
var PromptDeskAgent string
