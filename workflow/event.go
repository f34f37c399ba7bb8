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

// Package workflow is the stage composition machinery used by the labs:
// a sequential pipeline, a fan-out/fan-in gather, and rule evaluation for
// approval gates. Stages exchange typed events; each event kind is produced
// by exactly one stage and consumed by exactly one downstream stage.
package workflow

// EventKind tags an event so stages can reject inputs they do not consume.
type EventKind string

// Event is the value passed between stages. Events are immutable snapshots;
// a stage returns a new event rather than mutating its input.
type Event interface {
	Kind() EventKind
}
