package ingest

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// KindCSV labels a verdict for the flat result CSV.
const KindCSV Kind = "csv"

// Verdict is the outcome of checking one file. Problems is empty when the
// file is valid.
type Verdict struct {
	Path     string   `json:"path"               yaml:"path"`
	Kind     Kind     `json:"kind,omitempty"     yaml:"kind,omitempty"`
	Rows     int      `json:"rows,omitempty"     yaml:"rows,omitempty"`
	Problems []string `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// Valid reports whether no problems were found.
func (v Verdict) Valid() bool { return len(v.Problems) == 0 }

// Validate checks path without loading it into a dataset. Files ending in
// .csv are checked as result CSVs, anything else against every JSON schema.
// Content problems land in the verdict; only an unreadable file is an error.
func Validate(ctx context.Context, path string) (Verdict, error) {
	data, err := readSource(ctx, path)
	if err != nil {
		return Verdict{Path: path}, err
	}

	return ValidateBytes(path, data), nil
}

// ValidateBytes is Validate for content already in memory; name picks the
// format the same way.
func ValidateBytes(name string, data []byte) Verdict {
	v := Verdict{Path: name}

	if strings.EqualFold(filepath.Ext(name), ".csv") {
		v.Kind = KindCSV

		rows, err := ParseCSV(bytes.NewReader(data))
		if err != nil {
			v.Problems = problemsOf(err)

			return v
		}

		v.Rows = len(rows)

		return v
	}

	kind, err := DetectKind(name, data)
	if err != nil {
		v.Problems = problemsOf(err)

		return v
	}

	v.Kind = kind

	return v
}

func problemsOf(err error) []string {
	var (
		se *SchemaError
		mc *MissingColumnsError
	)

	switch {
	case errors.As(err, &se):
		return se.Problems
	case errors.As(err, &mc):
		out := make([]string, len(mc.Missing))
		for i, col := range mc.Missing {
			out[i] = "missing column: " + col
		}

		return out
	default:
		return []string{err.Error()}
	}
}
