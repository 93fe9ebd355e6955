// Package Workloads reads, writes, generates and replays benchmark workloads: named sequences of insert, get and delete operations on string keys.
//
// A workload file is a JSON document:
//
//	{"name": "mixed_uniform_medium", "size": 10000, "operations": [{"op": "insert", "key": "key_1", "value": "value_9"}, {"op": "get", "key": "key_1"}]}
//
// name, size and operations are required; the remaining fields record how the file was generated.
package Workloads

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	OpInsert = "insert"
	OpGet    = "get"
	OpDelete = "delete"
)

type Operation struct {
	Op    string `json:"op"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

type Workload struct {
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	Size             int                `json:"size"`
	Distribution     string             `json:"distribution,omitempty"`
	OperationWeights map[string]float64 `json:"operation_weights,omitempty"`
	Seed             uint64             `json:"seed,omitempty"`
	Operations       []Operation        `json:"operations"`
}

// Manifest lists the files produced by one generator run.
type Manifest struct {
	Workloads     []string          `json:"workloads"`
	Sizes         map[string]int    `json:"sizes"`
	Distributions []string          `json:"distributions"`
	Seeds         map[string]uint64 `json:"seeds"`
}

type UnknownOpError struct {
	Index int
	Op    string
}

func (e *UnknownOpError) Error() string {
	return fmt.Sprintf("operation %d: unknown op %q", e.Index, e.Op)
}

// Parse decodes a workload and checks that every operation is one of OpInsert, OpGet and OpDelete.
func Parse(r io.Reader) (*Workload, error) {
	var w Workload
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode workload: %w", err)
	}
	for i, op := range w.Operations {
		switch op.Op {
		case OpInsert, OpGet, OpDelete:
		default:
			return nil, &UnknownOpError{Index: i, Op: op.Op}
		}
	}
	return &w, nil
}

func Load(path string) (*Workload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	w, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Save writes w to path as indented JSON, creating parent directories as needed.
func Save(path string, w *Workload) error {
	return WriteJSON(path, w, true)
}

// WriteJSON writes v to path, creating parent directories as needed.
func WriteJSON(path string, v any, indent bool) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	enc := json.NewEncoder(f)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err = enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Find returns the path of the first <name>.json found in dirs.
func Find(name string, dirs ...string) (string, error) {
	for _, d := range dirs {
		p := filepath.Join(d, name+".json")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("workload %s: %w", name, fs.ErrNotExist)
}
