// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metric names.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects problems found during validation.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// histogram and summary series share the base metric name.
var seriesSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses a single expression and checks its selectors against known.
func Expr(expr string, known map[string]bool) Result {
	var r Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("parse %q: %v", expr, err))
		return r
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !knownMetric(vs.Name, known) {
			r.Errors = append(r.Errors, fmt.Sprintf("unknown metric %q in %q", vs.Name, expr))
		}
		return nil
	})
	return r
}

func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range seriesSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Exprs validates each expression in turn.
func Exprs(exprs []string, known map[string]bool) Result {
	var r Result
	for _, e := range exprs {
		r.merge(Expr(e, known))
	}
	return r
}

type panelJSON struct {
	Title   string       `json:"title"`
	Type    string       `json:"type"`
	Panels  []panelJSON  `json:"panels"`
	Targets []targetJSON `json:"targets"`
}

type targetJSON struct {
	Expr string `json:"expr"`
}

// Dashboard validates every target expression of every panel, including
// panels nested in rows. Panels without targets are reported as warnings.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("encoding dashboard: %v", err))
		return r
	}

	var decoded struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return r
	}

	for _, p := range decoded.Panels {
		r.merge(panel(p, known))
	}
	return r
}

func panel(p panelJSON, known map[string]bool) Result {
	var r Result
	if p.Type == "row" {
		for _, inner := range p.Panels {
			r.merge(panel(inner, known))
		}
		return r
	}

	if len(p.Targets) == 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("panel %q has no targets", p.Title))
	}
	for _, t := range p.Targets {
		if t.Expr == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("panel %q has an empty expression", p.Title))
			continue
		}
		r.merge(Expr(t.Expr, known))
	}
	return r
}
