// Package doctor runs the preflight checks that decide whether a crafting run
// can start: configuration, input backend tools, the game window and macros.
package doctor

import (
	"context"
	"fmt"
)

// Status is the outcome of a single check item.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// CheckItem is one line of a check result.
type CheckItem struct {
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Fixable bool   `json:"fixable,omitempty"`
}

// Result is the outcome of one check. A failing item always blocks crafting;
// in a Required result a warning blocks it too.
type Result struct {
	Name     string      `json:"name"`
	Required bool        `json:"required"`
	Items    []CheckItem `json:"items"`
}

// Check is a single preflight check.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Report is the outcome of a doctor run against one backend and target.
type Report struct {
	Backend  string   `json:"backend"`
	Target   string   `json:"target"`
	Ready    bool     `json:"ready"`
	Blockers []string `json:"blockers,omitempty"`
	Passed   int      `json:"passed"`
	Warned   int      `json:"warned"`
	Failed   int      `json:"failed"`
	Fixable  int      `json:"fixable"`
	Checks   []Result `json:"checks"`
}

// Run executes checks in order and reports whether crafting can start.
func Run(ctx context.Context, backend, target string, checks []Check) Report {
	report := Report{
		Backend: backend,
		Target:  target,
		Checks:  make([]Result, 0, len(checks)),
	}

	for _, check := range checks {
		result := check.Run(ctx)
		report.Checks = append(report.Checks, result)

		for _, item := range result.Items {
			switch item.Status {
			case StatusPass:
				report.Passed++
				continue
			case StatusWarn:
				report.Warned++
			case StatusFail:
				report.Failed++
			}

			if item.Fixable {
				report.Fixable++
			}
			if item.Status == StatusFail || result.Required {
				report.Blockers = append(report.Blockers, blocker(result.Name, item))
			}
		}
	}

	report.Ready = len(report.Blockers) == 0
	return report
}

func blocker(check string, item CheckItem) string {
	if item.Detail == "" {
		return fmt.Sprintf("%s: %s", check, item.Label)
	}
	return fmt.Sprintf("%s: %s (%s)", check, item.Label, item.Detail)
}
