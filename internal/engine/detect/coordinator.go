package detect

import (
	"strings"

	"debtrank/internal/engine/analysis"
)

// CoordinatorDetector recognizes reconciliation-style functions: a run of
// comparisons on state-like fields that each enqueue an action into an
// accumulator. High cyclomatic counts in such code are structural, not a
// refactoring target.
//
// Validation code accumulating errors looks superficially similar and must
// never fire this detector, so pushes into error-like collections are
// ignored outright.
type CoordinatorDetector struct{}

var stateTokens = []string{"state", "mode", "status", "phase", "current", "desired"}

var errorReceiverTokens = []string{
	"error", "errors", "err", "issue", "issues",
	"warning", "warnings", "violation", "violations",
	"diagnostic", "diagnostics", "problem", "problems", "failure", "failures",
}

func (d *CoordinatorDetector) Name() string { return "coordinator" }

func (d *CoordinatorDetector) Detect(u *analysis.Unit, ctx *Context) *analysis.PatternSignal {
	if u.Kind != analysis.KindFunction {
		return nil
	}

	stateComparisons := 0
	for _, cmp := range u.Comparisons {
		if isStatePath(cmp.Left) || isStatePath(cmp.Right) {
			stateComparisons++
		}
	}

	actionPushes := 0
	for _, push := range u.Pushes {
		if !push.InComparison {
			continue
		}
		if isErrorReceiver(push.Receiver) {
			continue
		}
		actionPushes++
	}

	cfg := ctx.Cfg
	if stateComparisons < cfg.CoordinatorMinComparisons || actionPushes < cfg.CoordinatorMinPushes {
		return nil
	}

	confidence := normalized(actionPushes, 0.4) + normalized(stateComparisons, 0.3)
	if u.ActionLiterals > 0 {
		confidence += 0.2
	}
	if u.ReturnsAccumulator {
		confidence += 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < cfg.CoordinatorConfidence {
		return nil
	}

	return &analysis.PatternSignal{
		Detector:   d.Name(),
		Pattern:    analysis.PatternCoordinator,
		Confidence: confidence,
		Counts: map[string]float64{
			"state_comparisons": float64(stateComparisons),
			"action_pushes":     float64(actionPushes),
			"action_literals":   float64(u.ActionLiterals),
		},
	}
}

// normalized scales a count onto [0, limit] at a rate of 0.1 per occurrence.
func normalized(count int, limit float64) float64 {
	v := float64(count) / 10.0
	if v > limit {
		return limit
	}
	return v
}

func isStatePath(path string) bool {
	lower := strings.ToLower(path)
	for _, tok := range stateTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

func isErrorReceiver(receiver string) bool {
	lower := strings.ToLower(receiver)
	// Match on the final path segment so coord.state_errors is still caught.
	if i := strings.LastIndexByte(lower, '.'); i >= 0 {
		lower = lower[i+1:]
	}
	for _, tok := range errorReceiverTokens {
		if lower == tok || strings.HasSuffix(lower, "_"+tok) || strings.HasSuffix(lower, tok) {
			return true
		}
	}
	return false
}
