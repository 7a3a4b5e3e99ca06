package analysis

// Score bounds.
const (
	MinScore = 10
	MaxScore = 100
)

// Penalty weights.
const (
	codeSmellPenalty  = 15
	complexityPenalty = 5
)

// healthPenalty is charged for every smell.
func healthPenalty(s Severity) int {
	switch s {
	case SeverityCritical:
		return 20
	case SeverityHigh:
		return 10
	default:
		return 5
	}
}

// securityPenalty is charged for Security smells only.
func securityPenalty(s Severity) int {
	switch s {
	case SeverityCritical:
		return 30
	case SeverityHigh:
		return 15
	default:
		return 5
	}
}

// Aggregate combines the smells of one call and its complexity score into
// the three bounded metrics. Nothing accumulates across calls.
func Aggregate(smells []Smell, complexityScore float64) Scores {
	health := 0
	security := 0
	codeSmells := 0

	for _, s := range smells {
		health += healthPenalty(s.Severity)
		switch s.Type {
		case SmellTypeSecurity:
			security += securityPenalty(s.Severity)
		case SmellTypeCodeSmell:
			codeSmells++
		}
	}

	// The maintainability penalty is truncated toward zero before subtraction.
	maintainability := int(float64(codeSmellPenalty*codeSmells) + complexityPenalty*complexityScore)

	return Scores{
		Health:          clampScore(MaxScore - health),
		Security:        clampScore(MaxScore - security),
		Maintainability: clampScore(MaxScore - maintainability),
	}
}

func clampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
