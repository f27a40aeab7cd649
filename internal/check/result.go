package check

// Status classifies the outcome of checking one model file.
type Status string

const (
	// StatusOK means the file was loaded and classified.
	StatusOK Status = "OK"
	// StatusMissing means the file does not exist at the descriptor's path.
	StatusMissing Status = "MISSING"
	// StatusError means the file exists but could not be loaded or is
	// missing required metadata.
	StatusError Status = "ERROR"
)

// Descriptor names a model file to check. Supplied by the caller at
// startup; checks never mutate it.
type Descriptor struct {
	Name string
	Path string
}

// Result is the outcome of checking one descriptor. Exactly one Result is
// produced per descriptor per run.
type Result struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Status Status `json:"status"`

	// Version fields are set only for StatusOK.
	IRVersion    int64 `json:"ir_version,omitempty"`
	OpsetVersion int64 `json:"opset_version,omitempty"`
	Compatible   bool  `json:"compatible"`

	// Message is the verdict line for StatusOK, or the underlying error
	// text (verbatim) otherwise.
	Message string `json:"message,omitempty"`
}
