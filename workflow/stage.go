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

package workflow

import (
	"context"

	"github.com/pkg/errors"
)

// Stage is one unit of work. Each stage consumes one event kind and
// produces the next one (or an error). The pipeline only schedules stages
// and records history; it never inspects payloads.
type Stage interface {
	Name() string
	Run(ctx context.Context, in Event) (Event, error)
}

// StageFunc adapts a function to a Stage.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, in Event) (Event, error)
}

func (s StageFunc) Name() string { return s.StageName }

func (s StageFunc) Run(ctx context.Context, in Event) (Event, error) {
	return s.Fn(ctx, in)
}

// ErrBadInput is returned by stages handed an event kind they do not consume.
var ErrBadInput = errors.New("workflow: unexpected input event kind")

// Expect returns ErrBadInput unless in carries the wanted kind.
func Expect(in Event, want EventKind) error {
	if in == nil || in.Kind() != want {
		got := EventKind("<nil>")
		if in != nil {
			got = in.Kind()
		}
		return errors.Wrapf(ErrBadInput, "want %s, got %s", want, got)
	}
	return nil
}
