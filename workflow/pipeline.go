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
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/internal/log"
)

// StageStatus is the outcome of one stage run.
type StageStatus string

const (
	StageOK     StageStatus = "ok"
	StageFailed StageStatus = "failed"
)

// StageRecord is an immutable log entry for one stage execution.
type StageRecord struct {
	StageName string
	Status    StageStatus
	Error     string
	Time      time.Time
}

// Result carries the terminal event of a run plus its stage history.
// On failure Output is nil and History ends with the failed record.
type Result struct {
	RunID   string
	Output  Event
	History []StageRecord
}

// Pipeline runs stages in sequence. Each stage receives the event produced
// by the previous one; the first error aborts the run with no partial output.
type Pipeline struct {
	Stages []Stage
}

// Run threads in through all stages and returns the terminal event.
// The returned Result is also populated on error, for inspection.
func (p *Pipeline) Run(ctx context.Context, in Event) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	if in == nil {
		return res, errors.New("workflow: initial event is nil")
	}
	current := in
	for i, stage := range p.Stages {
		if stage == nil {
			return res, errors.Errorf("workflow: stage %d is nil", i)
		}
		log.Debug("pipeline %s: running stage %s on %s", res.RunID, stage.Name(), current.Kind())
		next, err := stage.Run(ctx, current)
		if err != nil {
			res.History = append(res.History, StageRecord{
				StageName: stage.Name(),
				Status:    StageFailed,
				Error:     err.Error(),
				Time:      time.Now(),
			})
			return res, errors.Wrapf(err, "stage %q", stage.Name())
		}
		res.History = append(res.History, StageRecord{
			StageName: stage.Name(),
			Status:    StageOK,
			Time:      time.Now(),
		})
		current = next
	}
	res.Output = current
	return res, nil
}
