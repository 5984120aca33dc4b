// Package config loads read requests for the hedm command line tool.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-hedm/hedm"
)

// Request describes which part of a scan to read.
type Request struct {
	// Group is the internal group path of the scan.
	Group string `yaml:"group"`

	// Arrays is the column allow-list.
	Arrays []string `yaml:"arrays,omitempty"`

	// ReadAll loads every known column.
	ReadAll bool `yaml:"read_all,omitempty"`

	// PhaseOrder is "store" (default) or "index".
	PhaseOrder string `yaml:"phase_order,omitempty"`
}

// Load reads and parses a request YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields or names an unknown column.
func Load(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	return Parse(data)
}

// Parse parses a request from YAML.
func Parse(data []byte) (*Request, error) {
	var req Request
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := Validate(&req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return &req, nil
}

// Validate checks column names and the phase order.
func Validate(r *Request) error {
	for _, name := range r.Arrays {
		if _, ok := hedm.LookupColumn(name); !ok {
			return fmt.Errorf("unknown column %q", name)
		}
	}
	if _, err := hedm.ParsePhaseOrder(r.PhaseOrder); err != nil {
		return err
	}
	return nil
}

// Options converts the request into reader options.
func (r *Request) Options() []hedm.Option {
	order, _ := hedm.ParsePhaseOrder(r.PhaseOrder)
	return []hedm.Option{
		hedm.WithGroupPath(r.Group),
		hedm.WithArrays(r.Arrays...),
		hedm.WithReadAll(r.ReadAll),
		hedm.WithPhaseOrder(order),
	}
}
