package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"lumina/internal/analysis"
	"lumina/internal/chat"
	"lumina/internal/journal"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatYAML  OutputFormat = "yaml"
)

// ChatOutput is printed by the chat command
type ChatOutput struct {
	Response string `json:"response"`
	Rule     string `json:"rule"`
}

// RulesOutput is printed by chat --list-rules
type RulesOutput struct {
	Rules []chat.Rule `json:"rules"`
}

// HistoryOutput is printed by the history command
type HistoryOutput struct {
	Path  string        `json:"path"`
	Total int           `json:"total"`
	Runs  []journal.Run `json:"runs"`
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatYAML formats the response as YAML using its JSON field names and order.
func formatYAML(resp interface{}) (string, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return "", fmt.Errorf("failed to convert to YAML: %w", err)
	}
	blockStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// blockStyle clears the flow and quoting styles inherited from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *analysis.Response:
		return formatAnalysisHuman(v), nil
	case *ChatOutput:
		return v.Response, nil
	case *HistoryOutput:
		return formatHistoryHuman(v), nil
	case *RulesOutput:
		return formatRulesHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatAnalysisHuman(resp *analysis.Response) string {
	var b strings.Builder

	b.WriteString("Lumina Analysis\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("  Health:          %3d\n", resp.HealthScore))
	b.WriteString(fmt.Sprintf("  Security:        %3d\n", resp.SecurityScore))
	b.WriteString(fmt.Sprintf("  Maintainability: %3d\n", resp.MaintainabilityScore))
	b.WriteString(fmt.Sprintf("  Complexity:      %s\n\n", resp.Complexity))

	if len(resp.Smells) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	// Most severe first; detection order breaks ties
	smells := make([]analysis.Smell, len(resp.Smells))
	copy(smells, resp.Smells)
	sort.SliceStable(smells, func(i, j int) bool {
		return smells[i].Severity.Weight() > smells[j].Severity.Weight()
	})

	b.WriteString(fmt.Sprintf("Issues (%d):\n", len(smells)))
	for _, s := range smells {
		b.WriteString(fmt.Sprintf("  [%s] %s (%s)\n", strings.ToUpper(string(s.Severity)), s.Name, s.Type))
		if s.Description != "" {
			b.WriteString(fmt.Sprintf("      %s\n", s.Description))
		}
	}
	return b.String()
}

func formatHistoryHuman(h *HistoryOutput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Analysis History (%d of %d)\n", len(h.Runs), h.Total))
	b.WriteString(strings.Repeat("─", 60) + "\n")

	if len(h.Runs) == 0 {
		b.WriteString("No analyses recorded.\n")
		return b.String()
	}

	for _, r := range h.Runs {
		name := r.Filename
		if name == "" {
			name = analysis.DefaultFilename
		}
		b.WriteString(fmt.Sprintf("%s  %-24s health=%d security=%d maint=%d issues=%d %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			name, r.Health, r.Security, r.Maintainability, r.IssuesOpen, r.Complexity))
	}
	return b.String()
}

func formatRulesHuman(r *RulesOutput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Chat Rules (%d, first match wins)\n", len(r.Rules)))
	b.WriteString(strings.Repeat("─", 60) + "\n")
	for i, rule := range r.Rules {
		b.WriteString(fmt.Sprintf("%2d. %-14s %s\n", i+1, rule.Name, strings.Join(rule.Keywords, ", ")))
	}
	return b.String()
}
