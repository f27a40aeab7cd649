package output

import (
	"modelmedic/internal/check"
	"modelmedic/internal/compat"
)

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line):
// - run.started
// - model.result
// - run.summary
// - run.finished
//
// JSON mode remains an aggregate of check.Result values.
type Event struct {
	Type  string `json:"type"`
	Model string `json:"model,omitempty"`
	*check.Result
	Summary  *Summary `json:"summary,omitempty"`
	Models   int      `json:"models,omitempty"`
	ExitCode int      `json:"exit_code,omitempty"`
}

// Summary is the fixed tier table plus the aggregate recommendation
// emitted once per run, after all per-model results.
type Summary struct {
	Runtimes       []compat.Runtime      `json:"runtimes"`
	Recommendation compat.Recommendation `json:"recommendation"`
}

func eventFromResult(r check.Result) Event {
	return Event{Type: "model.result", Model: r.Name, Result: &r}
}

func eventFromSummary(s Summary) Event {
	return Event{Type: "run.summary", Summary: &s}
}
