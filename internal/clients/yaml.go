package clients

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeYAML reads a YAML sequence of clients. Timestamps use RFC 3339.
// Records are returned as decoded; call Validate to check them.
func DecodeYAML(r io.Reader) ([]Client, error) {
	var out []Client
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode clients yaml: %w", err)
	}
	return out, nil
}
