package domain

import "fmt"

// Badge is the categorical summary of a findability score.
type Badge string

const (
	BadgePoor      Badge = "poor"
	BadgeFair      Badge = "fair"
	BadgeGood      Badge = "good"
	BadgeExcellent Badge = "excellent"
)

// Rank orders badges poor < fair < good < excellent. Unknown badges rank -1.
func (b Badge) Rank() int {
	switch b {
	case BadgePoor:
		return 0
	case BadgeFair:
		return 1
	case BadgeGood:
		return 2
	case BadgeExcellent:
		return 3
	}
	return -1
}

// ParseBadge validates a stored or transmitted badge value.
func ParseBadge(s string) (Badge, error) {
	b := Badge(s)
	if b.Rank() < 0 {
		return "", fmt.Errorf("unknown badge %q", s)
	}
	return b, nil
}

// NoSignalsEvidence is the only evidence entry when no signal is present.
const NoSignalsEvidence = "No clear signals provided"

// Scoring weights and thresholds. These are product-tuned values.
const (
	presenceWeight   = 0.6
	rankWeight       = 0.3
	confidenceWeight = 0.1

	presenceMin = 2

	rankHighMin = 6
	rankMidMin  = 4
	rankLowMin  = 2

	rankHigh = 1.0
	rankMid  = 0.9
	rankLow  = 0.8

	confidenceBase = 0.3
	confidenceStep = 0.1

	excellentMin = 0.8
	goodMin      = 0.6
	fairMin      = 0.4
)

// Result is the outcome of scoring one SignalSet.
type Result struct {
	Score    float64
	Badge    Badge
	Evidence []string
}

// Evaluate scores a signal set. It is pure and total.
func Evaluate(s SignalSet) Result {
	flags := s.Vector()
	n := 0
	for _, ok := range flags {
		if ok {
			n++
		}
	}

	presence := 0.0
	if n >= presenceMin {
		presence = 1.0
	}

	var rank float64
	switch {
	case n >= rankHighMin:
		rank = rankHigh
	case n >= rankMidMin:
		rank = rankMid
	case n >= rankLowMin:
		rank = rankLow
	}

	confidence := min(1.0, float64(confidenceBase+float64(confidenceStep*float64(n))))

	// Conversions round every product so no fused multiply-add changes the sum.
	overall := float64(presenceWeight*presence) + float64(rankWeight*rank) + float64(confidenceWeight*confidence)
	overall = max(0.0, min(1.0, overall))

	evidence := make([]string, 0, n)
	for i, ok := range flags {
		if ok {
			evidence = append(evidence, "+ "+signalNames[i])
		}
	}
	if len(evidence) == 0 {
		evidence = append(evidence, NoSignalsEvidence)
	}

	return Result{Score: overall, Badge: badgeFor(overall), Evidence: evidence}
}

// EvaluateMap normalizes named signals and scores them.
func EvaluateMap(signals map[string]bool) Result {
	return Evaluate(NormalizeSignals(signals))
}

func badgeFor(score float64) Badge {
	switch {
	case score >= excellentMin:
		return BadgeExcellent
	case score >= goodMin:
		return BadgeGood
	case score >= fairMin:
		return BadgeFair
	default:
		return BadgePoor
	}
}
