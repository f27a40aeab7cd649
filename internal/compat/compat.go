// Package compat classifies ONNX models against known ONNX Runtime
// support ranges.
//
// Classification looks at the IR version only. The opset version is
// carried through and reported, but does not gate the verdict: the
// exporter pins opset 14, well under every tier's ceiling, so the IR
// version is the field that actually decides loadability. Confirm with
// the model owners before adding an opset gate here.
package compat

import "fmt"

// Runtime describes a released ONNX Runtime line and the maximum IR and
// opset versions it declares support for.
type Runtime struct {
	Version  string `json:"version"`
	MaxIR    int64  `json:"max_ir"`
	MaxOpset int64  `json:"max_opset"`
}

// The runtime tiers the project pins against. CurrentRuntime is what
// ships today; UpgradeRuntime is the tier to move to for IR 10 models.
var (
	CurrentRuntime = Runtime{Version: "1.16.3", MaxIR: 9, MaxOpset: 18}
	UpgradeRuntime = Runtime{Version: "1.19.0", MaxIR: 10, MaxOpset: 21}
)

// Runtimes returns the known tiers, oldest first.
func Runtimes() []Runtime {
	return []Runtime{CurrentRuntime, UpgradeRuntime}
}

// Verdict is the compatibility classification of a single model.
type Verdict struct {
	// IRVersion is the model's IR version the verdict was derived from.
	IRVersion int64

	// Compatible reports whether the current runtime tier can load the model.
	Compatible bool

	// MinRuntime labels the runtime line required when Compatible is false,
	// e.g. "1.17+".
	MinRuntime string
}

// Classify determines which runtime tier can load a model with the given
// IR version. Pure function, total over non-negative versions.
func Classify(irVersion int64) Verdict {
	if irVersion <= CurrentRuntime.MaxIR {
		return Verdict{IRVersion: irVersion, Compatible: true}
	}
	return Verdict{IRVersion: irVersion, MinRuntime: "1.17+"}
}

// Message renders the human-readable verdict line.
func (v Verdict) Message() string {
	if v.Compatible {
		return fmt.Sprintf("Compatible with ONNX Runtime %s", CurrentRuntime.Version)
	}
	return fmt.Sprintf("Requires ONNX Runtime %s (IR version %d)", v.MinRuntime, v.IRVersion)
}

// Recommendation is the aggregate upgrade advice for a full check run.
type Recommendation struct {
	// Upgrade is true when at least one model needs a newer runtime.
	Upgrade bool `json:"upgrade"`

	// Runtime is the tier to run: CurrentRuntime's version to keep, or
	// UpgradeRuntime's version when Upgrade is true.
	Runtime string `json:"runtime"`
}

// Recommend derives the aggregate recommendation from the IR versions of
// every successfully loaded model. With no loaded models there is nothing
// forcing an upgrade, so the current tier stands.
func Recommend(irVersions []int64) Recommendation {
	for _, ir := range irVersions {
		if ir > CurrentRuntime.MaxIR {
			return Recommendation{Upgrade: true, Runtime: UpgradeRuntime.Version}
		}
	}
	return Recommendation{Runtime: CurrentRuntime.Version}
}

// Message renders the human-readable recommendation line.
func (r Recommendation) Message() string {
	if r.Upgrade {
		return fmt.Sprintf("Upgrade to ONNX Runtime %s (at least one model has IR > %d)", r.Runtime, CurrentRuntime.MaxIR)
	}
	return fmt.Sprintf("Keep ONNX Runtime %s (all models have IR <= %d)", r.Runtime, CurrentRuntime.MaxIR)
}
