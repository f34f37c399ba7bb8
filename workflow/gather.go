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
	"golang.org/x/sync/errgroup"
)

// Gather fans in out to every stage concurrently and waits for all of them.
// Outputs are returned in stage order regardless of completion order. The
// join is all-or-nothing: the first branch error cancels the siblings and
// fails the whole call.
func Gather(ctx context.Context, in Event, stages ...Stage) ([]Event, error) {
	if in == nil {
		return nil, errors.New("workflow: initial event is nil")
	}
	if len(stages) == 0 {
		return nil, errors.New("workflow: gather needs at least one stage")
	}
	for i, stage := range stages {
		if stage == nil {
			return nil, errors.Errorf("workflow: stage %d is nil", i)
		}
	}
	outs := make([]Event, len(stages))
	g, gctx := errgroup.WithContext(ctx)
	for i, stage := range stages {
		g.Go(func() error {
			out, err := stage.Run(gctx, in)
			if err != nil {
				return errors.Wrapf(err, "stage %q", stage.Name())
			}
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}
