// Package analysis implements the heuristic code quality engine: smell
// detection, complexity estimation, construct graph extraction and score
// aggregation. Every function here is a pure computation over source text.
package analysis

// SmellType classifies a smell.
type SmellType string

const (
	SmellTypeCodeSmell SmellType = "Code Smell"
	SmellTypeSecurity  SmellType = "Security"
)

// Severity indicates the risk level of a smell.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium" // reserved, no builtin rule emits it
	SeverityLow      Severity = "low"    // reserved, no builtin rule emits it
)

// Weight ranks severities for ordering, higher is more severe.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Complexity labels.
const (
	LabelConstant  = "O(1)"
	LabelLinear    = "O(n)"
	LabelQuadratic = "O(n²)"
)

// Request is a snippet submitted for analysis.
type Request struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Filename string `json:"filename,omitempty"`
}

// Smell is a single detected issue.
type Smell struct {
	Type        SmellType `json:"type"`
	Name        string    `json:"name"`
	Severity    Severity  `json:"severity"`
	Line        *int      `json:"line"`
	Description string    `json:"description,omitempty"`
}

// Complexity is the output of the complexity estimator.
type Complexity struct {
	// Score is 1.0 plus the weights of the control-flow keywords present
	Score float64 `json:"score"`

	// MaxIndent is the largest count of leading whitespace characters on any line
	MaxIndent int `json:"maxIndent"`

	// Label is the coarse big-O style label
	Label string `json:"label"`
}

// Node is a vertex in the construct graph.
type Node struct {
	ID         string  `json:"id"`
	Complexity float64 `json:"complexity"`
}

// Link is a directed edge in the construct graph.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Scores holds the three aggregate metrics, each in [MinScore, MaxScore].
type Scores struct {
	Health          int `json:"health"`
	Security        int `json:"security"`
	Maintainability int `json:"maintainability"`
}

// Result is everything one analysis call produces.
type Result struct {
	Smells     []Smell    `json:"smells"`
	Complexity Complexity `json:"complexity"`
	Scores     Scores     `json:"scores"`
	Nodes      []Node     `json:"nodes"`
	Links      []Link     `json:"links"`
}

// IssuesOpen is the number of smells produced by this call.
func (r *Result) IssuesOpen() int {
	return len(r.Smells)
}

// Response is the wire shape returned to analysis callers.
type Response struct {
	HealthScore          int     `json:"health_score"`
	SecurityScore        int     `json:"security_score"`
	MaintainabilityScore int     `json:"maintainability_score"`
	Smells               []Smell `json:"smells"`
	Complexity           string  `json:"complexity"`
}

// Response renders the result in its wire shape.
func (r *Result) Response() *Response {
	smells := r.Smells
	if smells == nil {
		smells = []Smell{}
	}
	return &Response{
		HealthScore:          r.Scores.Health,
		SecurityScore:        r.Scores.Security,
		MaintainabilityScore: r.Scores.Maintainability,
		Smells:               smells,
		Complexity:           r.Complexity.Label,
	}
}
