// Package onnx reads the version metadata of ONNX model files.
//
//   - Parse: decodes a serialized ONNX ModelProto, keeping only the
//     top-level version and producer fields.
//   - ReadFile: reads a file and calls Parse.
//   - Model.Versions: extracts the (IR version, opset version) pair a
//     runtime uses to decide whether it can load the model.
//
// The full generated ONNX protos are deliberately not vendored. The fields
// read here are two scalars and one small repeated message, so the decoder
// walks the wire format directly with protowire and skips everything else
// (graph, initializers, functions).
package onnx

import (
	"os"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// ModelProto field numbers, per the ONNX schema (onnx/onnx.proto).
const (
	fieldIRVersion       = 1
	fieldProducerName    = 2
	fieldProducerVersion = 3
	fieldOpsetImport     = 8
)

// OperatorSetIdProto field numbers.
const (
	fieldOpsetDomain  = 1
	fieldOpsetVersion = 2
)

// OperatorSetID is one entry of a model's opset_import list. An empty
// Domain means the default ONNX operator domain.
type OperatorSetID struct {
	Domain  string
	Version int64
}

// Model holds the version metadata of a parsed ONNX file.
type Model struct {
	IRVersion       int64
	ProducerName    string
	ProducerVersion string
	OpsetImports    []OperatorSetID
}

// VersionInfo is the pair of container and operator-set versions that
// gates runtime compatibility. OpsetVersion is taken from the first
// opset_import entry; a model may declare further imports for other
// domains, which are not considered.
type VersionInfo struct {
	IRVersion    int64 `json:"ir_version"`
	OpsetVersion int64 `json:"opset_version"`
}

// ReadFile reads and parses the version metadata of the ONNX model at
// filePath. The returned error wraps fs.ErrNotExist when the file does
// not exist, so callers can tell a missing model from a corrupt one.
func ReadFile(filePath string) (*Model, error) {
	contents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read ONNX model file in %s", filePath)
	}
	return Parse(contents)
}

// Parse decodes the top-level version fields of a serialized ModelProto.
func Parse(contents []byte) (*Model, error) {
	m := &Model{}
	data := contents
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "failed to parse ONNX model proto")
		}
		data = data[n:]

		switch {
		case num == fieldIRVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "failed to parse ONNX ir_version")
			}
			m.IRVersion = int64(v)
			data = data[n:]

		case num == fieldProducerName && typ == protowire.BytesType:
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "failed to parse ONNX producer_name")
			}
			m.ProducerName = string(b)
			data = data[n:]

		case num == fieldProducerVersion && typ == protowire.BytesType:
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "failed to parse ONNX producer_version")
			}
			m.ProducerVersion = string(b)
			data = data[n:]

		case num == fieldOpsetImport && typ == protowire.BytesType:
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "failed to parse ONNX opset_import")
			}
			opset, err := parseOperatorSetID(b)
			if err != nil {
				return nil, err
			}
			m.OpsetImports = append(m.OpsetImports, opset)
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errors.Wrapf(protowire.ParseError(n), "failed to parse ONNX model proto field %d", num)
			}
			data = data[n:]
		}
	}
	return m, nil
}

func parseOperatorSetID(data []byte) (OperatorSetID, error) {
	var opset OperatorSetID
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return opset, errors.Wrap(protowire.ParseError(n), "failed to parse ONNX OperatorSetIdProto")
		}
		data = data[n:]

		switch {
		case num == fieldOpsetDomain && typ == protowire.BytesType:
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return opset, errors.Wrap(protowire.ParseError(n), "failed to parse ONNX opset domain")
			}
			opset.Domain = string(b)
			data = data[n:]

		case num == fieldOpsetVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return opset, errors.Wrap(protowire.ParseError(n), "failed to parse ONNX opset version")
			}
			opset.Version = int64(v)
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return opset, errors.Wrapf(protowire.ParseError(n), "failed to parse ONNX OperatorSetIdProto field %d", num)
			}
			data = data[n:]
		}
	}
	return opset, nil
}

// Versions returns the model's VersionInfo. It fails when the model
// declares no opset imports, which a well-formed exporter never produces.
func (m *Model) Versions() (VersionInfo, error) {
	if len(m.OpsetImports) == 0 {
		return VersionInfo{}, errors.New("model declares no opset imports")
	}
	return VersionInfo{
		IRVersion:    m.IRVersion,
		OpsetVersion: m.OpsetImports[0].Version,
	}, nil
}
