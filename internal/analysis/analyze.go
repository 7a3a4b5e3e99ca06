package analysis

// Analyze runs the detector, the estimator, the aggregator and the graph
// extractor over the same text. It is total: any input, including empty or
// binary-looking text, yields a well-formed result.
func Analyze(req Request) *Result {
	smells := DetectSmells(req.Code)
	complexity := EstimateComplexity(req.Code)
	scores := Aggregate(smells, complexity.Score)
	nodes, links := ExtractGraph(req.Code, req.Filename, complexity.Score)

	return &Result{
		Smells:     smells,
		Complexity: complexity,
		Scores:     scores,
		Nodes:      nodes,
		Links:      links,
	}
}
