package output

import (
	"fmt"
	"os"
)

// Outputs appends workflow output variables in the GitHub Actions file
// format. With no destination configured it writes to the null device, so
// local runs need no special casing.
type Outputs struct {
	f *os.File
}

// Open opens the output file for appending, falling back to the null device
// when path is empty.
func Open(path string) (*Outputs, error) {
	if path == "" {
		path = os.DevNull
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open outputs file: %w", err)
	}
	return &Outputs{f: f}, nil
}

// Set writes a single-line output variable.
func (o *Outputs) Set(name, value string) error {
	if _, err := fmt.Fprintf(o.f, "%s=%s\n", name, value); err != nil {
		return fmt.Errorf("write output %s: %w", name, err)
	}
	return nil
}

// SetMultiline writes a multiline output variable in heredoc syntax.
func (o *Outputs) SetMultiline(name, value string) error {
	if _, err := fmt.Fprintf(o.f, "%s<<EOF\n%s\nEOF\n", name, value); err != nil {
		return fmt.Errorf("write output %s: %w", name, err)
	}
	return nil
}

// Close closes the underlying file.
func (o *Outputs) Close() error {
	return o.f.Close()
}
