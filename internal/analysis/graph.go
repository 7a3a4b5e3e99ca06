package analysis

import "strings"

// FallbackNodeID names the placeholder node used when no construct is found.
const FallbackNodeID = "Main"

// DefaultFilename is used for the graph root when a request has no filename.
const DefaultFilename = "untitled"

// declarationKeywords are stripped from construct names in this order.
var declarationKeywords = []string{"class ", "def ", "void ", "function "}

// RootID returns the id of the file node for filename.
func RootID(filename string) string {
	if filename == "" {
		filename = DefaultFilename
	}
	return "File: " + filename
}

// FallbackGraph returns the single placeholder node graph.
func FallbackGraph() ([]Node, []Link) {
	return []Node{{ID: FallbackNodeID, Complexity: 1}}, []Link{}
}

// ExtractGraph builds a one-level file -> construct graph by scanning lines
// for declaration keywords. The root node carries the file's complexity score.
// Node ids are unique: a repeated construct name, or one equal to the root id,
// keeps its first node and adds no link.
func ExtractGraph(code, filename string, score float64) ([]Node, []Link) {
	root := RootID(filename)
	nodes := []Node{{ID: root, Complexity: score}}
	links := []Link{}
	seen := map[string]bool{root: true}
	found := false

	for _, line := range strings.Split(code, "\n") {
		if !containsAny(line, declarationKeywords...) {
			continue
		}
		found = true
		name := constructName(line)
		if seen[name] {
			continue
		}
		seen[name] = true
		nodes = append(nodes, Node{ID: name, Complexity: 1})
		links = append(links, Link{Source: root, Target: name})
	}

	if !found {
		return FallbackGraph()
	}
	return nodes, links
}

// constructName takes the text before the first "(" and removes the first
// occurrence of every declaration keyword, then trims whitespace.
func constructName(line string) string {
	name, _, _ := strings.Cut(line, "(")
	for _, kw := range declarationKeywords {
		name = strings.Replace(name, kw, "", 1)
	}
	return strings.TrimSpace(name)
}
