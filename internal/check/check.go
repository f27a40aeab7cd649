// Package check runs the model version check: load each named ONNX file,
// extract its IR and opset versions, and classify it against the known
// runtime tiers.
package check

import (
	"errors"
	"fmt"
	"io/fs"

	"modelmedic/internal/compat"
	"modelmedic/internal/onnx"
)

// Check inspects each descriptor in order and returns one result per
// descriptor, preserving input order. A failure to load one model never
// stops the others; each file is read exactly once, sequentially, with
// no retries.
func Check(descriptors []Descriptor) []Result {
	results := make([]Result, 0, len(descriptors))
	for _, d := range descriptors {
		results = append(results, checkOne(d))
	}
	return results
}

func checkOne(d Descriptor) Result {
	res := Result{Name: d.Name, Path: d.Path}

	model, err := onnx.ReadFile(d.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = StatusMissing
			res.Message = fmt.Sprintf("Model not found at %s", d.Path)
			return res
		}
		res.Status = StatusError
		res.Message = err.Error()
		return res
	}

	info, err := model.Versions()
	if err != nil {
		res.Status = StatusError
		res.Message = err.Error()
		return res
	}

	verdict := compat.Classify(info.IRVersion)
	res.Status = StatusOK
	res.IRVersion = info.IRVersion
	res.OpsetVersion = info.OpsetVersion
	res.Compatible = verdict.Compatible
	res.Message = verdict.Message()
	return res
}

// Recommendation derives the aggregate upgrade advice from a result set.
// Only successfully loaded models participate.
func Recommendation(results []Result) compat.Recommendation {
	var irVersions []int64
	for _, r := range results {
		if r.Status == StatusOK {
			irVersions = append(irVersions, r.IRVersion)
		}
	}
	return compat.Recommend(irVersions)
}
