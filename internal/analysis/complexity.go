package analysis

import (
	"strings"
	"unicode"
)

// BaseComplexity is the score of text with no control-flow keywords.
const BaseComplexity = 1.0

// DeepIndent is the leading-whitespace count above which code is treated as
// deeply nested regardless of its keyword score.
const DeepIndent = 12

// keywordWeight is a control-flow keyword and the score it contributes once.
type keywordWeight struct {
	keyword string
	weight  float64
}

var controlFlowWeights = []keywordWeight{
	{"for", 1.0},
	{"while", 1.0},
	{"if", 0.5},
	{"switch", 0.5},
}

// EstimateComplexity scores keyword presence and indentation depth.
// Keywords are matched as raw substrings, so "if" inside "diff" counts.
func EstimateComplexity(code string) Complexity {
	score := BaseComplexity
	for _, kw := range controlFlowWeights {
		if strings.Contains(code, kw.keyword) {
			score += kw.weight
		}
	}

	maxIndent := MaxIndent(code)

	return Complexity{
		Score:     score,
		MaxIndent: maxIndent,
		Label:     complexityLabel(score, maxIndent),
	}
}

// MaxIndent returns the largest count of leading whitespace characters on any
// line. Tabs count as one character.
func MaxIndent(code string) int {
	maxIndent := 0
	for _, line := range strings.Split(code, "\n") {
		indent := len([]rune(line)) - len([]rune(strings.TrimLeftFunc(line, isIndentSpace)))
		if indent > maxIndent {
			maxIndent = indent
		}
	}
	return maxIndent
}

// isIndentSpace reports Unicode whitespace plus the ASCII separators
// U+001C..U+001F, which also count as leading whitespace.
func isIndentSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func complexityLabel(score float64, maxIndent int) string {
	switch {
	case score > 3 || maxIndent > DeepIndent:
		return LabelQuadratic
	case score > 1:
		return LabelLinear
	default:
		return LabelConstant
	}
}
