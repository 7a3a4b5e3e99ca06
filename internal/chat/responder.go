// Package chat answers free-text questions by matching keywords against an
// ordered list of canned explanations.
package chat

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Rule maps any of its keywords to a response.
type Rule struct {
	Name     string   `toml:"name" json:"name"`
	Keywords []string `toml:"keywords" json:"keywords"`
	Response string   `toml:"response" json:"response"`
}

// RulesFile is the on-disk TOML layout of a rules file.
type RulesFile struct {
	Fallback string `toml:"fallback"`
	Rules    []Rule `toml:"rule"`
}

// Responder picks the first rule whose keyword occurs in a message.
type Responder struct {
	rules    []Rule
	fallback string
}

// DefaultFallback is returned when no rule matches.
const DefaultFallback = "That's an interesting query about your code. To give you a precise answer, I recommend uploading the specific file you're working on in the 'Code Analysis' section. I can then analyze its structure, security, and complexity in detail."

// DefaultRules are the builtin canned answers, in priority order.
var DefaultRules = []Rule{
	{
		Name:     "greeting",
		Keywords: []string{"hello", "hi"},
		Response: "Hello! I am Lumina, your advanced code quality assistant. How can I assist you with your codebase today?",
	},
	{
		Name:     "god_class",
		Keywords: []string{"god class"},
		Response: "A 'God Class' is a class that knows too much or does too much. It violates the Single Responsibility Principle. To fix it, try breaking it down into smaller, specialized classes (e.g., extract 'EmailService', 'Logger' into their own files).",
	},
	{
		Name:     "sql_injection",
		Keywords: []string{"sql injection"},
		Response: "SQL Injection occurs when user input is concatenated directly into queries. ATTENTION: This is a critical vulnerability. Always use parameterized queries (e.g., PreparedStatements in Java, or bind variables in Python) to prevent this.",
	},
	{
		Name:     "complexity",
		Keywords: []string{"complexity", "complex"},
		Response: "Cyclomatic complexity measures the number of linearly independent paths through a program's source code. High complexity (>10) suggests the code is hard to test and maintain. Consider simplifying logic or breaking checks into helper functions.",
	},
	{
		Name:     "optimize",
		Keywords: []string{"optimize", "improve"},
		Response: "To optimize code, focus on: 1. Reducing time complexity (nested loops). 2. Caching expensive operations (memoization). 3. Using efficient data structures (HashMaps vs Lists). Upload your file in the Analysis tab for specific advice!",
	},
	{
		Name:     "security",
		Keywords: []string{"security"},
		Response: "Security is paramount. I look for hardcoded secrets, injection vulnerabilities, and weak encryption. Check the 'Security' tab for a detailed breakdown of risks in your current project.",
	},
	{
		Name:     "identity",
		Keywords: []string{"lumina"},
		Response: "I am Lumina, a specialized AI designed for static code analysis. I use a combination of pattern matching and heuristic algorithms to ensure your code is clean, safe, and efficient.",
	},
	{
		Name:     "python",
		Keywords: []string{"python"},
		Response: "Python is great, but watch out for dynamic typing issues and indentation errors. I can analyze Python files for PEP-8 compliance and logic flaws.",
	},
	{
		Name:     "java",
		Keywords: []string{"java"},
		Response: "Java is robust. Common issues I check for include NullPointerExceptions, resource leaks (unclosed streams), and concurrency bugs.",
	},
	{
		Name:     "wellbeing",
		Keywords: []string{"how are you"},
		Response: "I am operating at peak efficiency. My analysis sub-systems are fully online. How is your code today?",
	},
}

// NewResponder creates a responder. A nil rules slice selects DefaultRules
// and an empty fallback selects DefaultFallback.
func NewResponder(rules []Rule, fallback string) *Responder {
	if rules == nil {
		rules = DefaultRules
	}
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Responder{rules: rules, fallback: fallback}
}

// LoadRules reads a TOML rules file.
func LoadRules(path string) (*Responder, error) {
	var f RulesFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("rules file not found: %s", path)
		}
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s defines no rules", path)
	}
	for i, r := range f.Rules {
		if len(r.Keywords) == 0 || r.Response == "" {
			return nil, fmt.Errorf("rule %d (%s) needs keywords and a response", i, r.Name)
		}
	}
	return NewResponder(f.Rules, f.Fallback), nil
}

// Respond returns the canned answer for message and the name of the rule
// that produced it ("fallback" when none matched). Matching is a
// case-insensitive substring test, so "hi" also matches "this".
func (r *Responder) Respond(message string) (string, string) {
	msg := strings.ToLower(message)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(msg, strings.ToLower(kw)) {
				return rule.Response, rule.Name
			}
		}
	}
	return r.fallback, "fallback"
}

// Rules returns the rules in priority order.
func (r *Responder) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}
