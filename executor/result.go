package executor

// StepResult is the simulated effect record stored for one executed step.
// Fields are populated per command kind; unused fields are omitted from
// JSON.
type StepResult struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Output  string `json:"output,omitempty"`
	URL     string `json:"url,omitempty"`
	To      string `json:"to,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Property projects a named property out of the result record. The
// original design only specified ".status"; the remaining record fields
// are projected by name, and any unknown property name falls back to the
// record's data value.
func (r *StepResult) Property(name string) any {
	switch name {
	case "status":
		return r.Status
	case "type":
		return r.Type
	case "output":
		return r.Output
	case "url":
		return r.URL
	case "to":
		return r.To
	case "message":
		return r.Message
	case "data":
		return r.Data
	default:
		return r.Data
	}
}

// VarBinding records one evaluated top-level variable declaration.
type VarBinding struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// StepRecord pairs a step's identity with its simulated effect, in
// execution order.
type StepRecord struct {
	Workflow string      `json:"workflow"`
	Number   int         `json:"step"`
	Command  string      `json:"command"`
	Result   *StepResult `json:"result"`
}

// Trace is the in-memory record of one Execute call. It is never
// persisted.
type Trace struct {
	RunID     string       `json:"runId"`
	Variables []VarBinding `json:"variables"`
	Steps     []StepRecord `json:"steps"`
}
