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
	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

// Rule is a compiled boolean expression over event parameters, e.g.
// `category == 'billing' && attempts > 2`. Approval gates use rules for
// auto-escalation before consulting a human.
type Rule struct {
	src  string
	expr *govaluate.EvaluableExpression
}

// CompileRule parses src once; Eval can then run per event.
func CompileRule(src string) (*Rule, error) {
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, errors.Wrapf(err, "compile rule %q", src)
	}
	return &Rule{src: src, expr: expr}, nil
}

// Eval evaluates the rule against params. Non-boolean results are an error.
func (r *Rule) Eval(params map[string]any) (bool, error) {
	out, err := r.expr.Evaluate(params)
	if err != nil {
		return false, errors.Wrapf(err, "eval rule %q", r.src)
	}
	b, ok := out.(bool)
	if !ok {
		return false, errors.Errorf("rule %q is not boolean", r.src)
	}
	return b, nil
}

func (r *Rule) String() string { return r.src }
