package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jbonatakis/skinwell/internal/config"
)

var ErrReportNotFound = errors.New("report file not found")

func JSON(r Report) ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(b, '\n'), nil
}

func SaveAtomic(path string, r Report) error {
	b, err := JSON(r)
	if err != nil {
		return err
	}
	return config.WriteFileAtomic(path, b, 0o644)
}

func Load(path string) (Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Report{}, ErrReportNotFound
		}
		return Report{}, fmt.Errorf("read report %s: %w", path, err)
	}
	r, err := Decode(b)
	if err != nil {
		return Report{}, fmt.Errorf("parse report %s: %w", path, err)
	}
	return r, nil
}

// Decode parses and validates a JSON report. Unknown fields and trailing
// values are rejected.
func Decode(b []byte) (Report, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var r Report
	if err := dec.Decode(&r); err != nil {
		return Report{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Report{}, errors.New("trailing JSON values")
		}
		return Report{}, fmt.Errorf("trailing data: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Report{}, err
	}
	return r, nil
}
