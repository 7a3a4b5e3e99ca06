package analysis

import "strings"

// Rule defines a smell detection rule.
type Rule struct {
	Name        string
	Type        SmellType
	Severity    Severity
	Description string
	Match       func(code string) bool
}

// BuiltinRules contains the smell rules in evaluation order.
// Matching is plain substring presence; no tokenization is attempted.
var BuiltinRules = []Rule{
	{
		Name:        "God Class",
		Type:        SmellTypeCodeSmell,
		Severity:    SeverityHigh,
		Description: "Class has too many responsibilities (Database, Email, Logger, Payment).",
		Match: func(code string) bool {
			return strings.Contains(code, "private Database db")
		},
	},
	{
		Name:        "Hardcoded Secret",
		Type:        SmellTypeSecurity,
		Severity:    SeverityCritical,
		Description: "Detected potential hardcoded API/Access Key.",
		Match: func(code string) bool {
			return containsAny(code, "AWS_KEY", "API_KEY")
		},
	},
	{
		Name:        "SQL Injection",
		Type:        SmellTypeSecurity,
		Severity:    SeverityCritical,
		Description: "Unsafe string concatenation in SQL query.",
		Match: func(code string) bool {
			return containsAny(code, "SELECT", "select") && containsAny(code, "+", "fmt")
		},
	},
	{
		Name:        "Buffer Overflow",
		Type:        SmellTypeSecurity,
		Severity:    SeverityCritical,
		Description: "Unsafe usage of 'strcpy' detected.",
		Match: func(code string) bool {
			return strings.Contains(code, "buffer") && strings.Contains(code, "strcpy")
		},
	},
	{
		Name:        "Sensitive Logging",
		Type:        SmellTypeSecurity,
		Severity:    SeverityHigh,
		Description: "Logging potentially sensitive 'password' data.",
		Match: func(code string) bool {
			return strings.Contains(code, "print") && strings.Contains(strings.ToLower(code), "password")
		},
	},
}

// DetectSmells runs every builtin rule against code and returns one smell per
// matching rule, in rule order.
func DetectSmells(code string) []Smell {
	return DetectWith(BuiltinRules, code)
}

// DetectWith runs the given rules against code.
func DetectWith(rules []Rule, code string) []Smell {
	smells := make([]Smell, 0, len(rules))
	for _, r := range rules {
		if r.Match == nil || !r.Match(code) {
			continue
		}
		smells = append(smells, Smell{
			Type:        r.Type,
			Name:        r.Name,
			Severity:    r.Severity,
			Description: r.Description,
		})
	}
	return smells
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
