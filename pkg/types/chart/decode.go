package chart

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// Format is a payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension; anything that is
// not .yaml/.yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads one payload from r into v and validates it.
func Decode(r io.Reader, format Format, v interface{}) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidParam, "read payload")
	}
	return Unmarshal(data, format, v)
}

// Unmarshal decodes data into v and validates it.
func Unmarshal(data []byte, format Format, v interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New(errors.CodeInvalidParam, "empty payload")
	}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return errors.Wrap(err, errors.CodeInvalidParam, "decode yaml payload")
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, v); err != nil {
			return errors.Wrap(err, errors.CodeInvalidParam, "decode json payload")
		}
	default:
		return errors.Newf(errors.CodeInvalidParam, "unsupported payload format %q", format)
	}
	return Validate(v)
}

// LoadFile decodes the payload stored at path, choosing the format from the
// extension.
func LoadFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeNotFound, "read payload file").WithDetail(path)
	}
	return Unmarshal(data, FormatFromPath(path), v)
}

//Personal.AI order the ending
