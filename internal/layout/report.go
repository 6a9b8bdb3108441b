package layout

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/zeebo/xxh3"
)

// FieldLayout is the computed placement of one field.
type FieldLayout struct {
	Name   string
	Size   int
	Offset int
}

// End returns the offset one past the last byte of the field.
func (f FieldLayout) End() int { return f.Offset + f.Size }

func (f FieldLayout) String() string {
	return fmt.Sprintf("%s: size = %d, offset = %d", f.Name, f.Size, f.Offset)
}

// Report is the layout of a record in declaration order.
type Report struct {
	Record string
	ABI    string
	Fields []FieldLayout
	// Size is the record size including trailing padding.
	Size int
	// Align is the record alignment.
	Align int
}

// Field looks up a field by name.
func (r Report) Field(name string) (FieldLayout, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldLayout{}, false
}

// WriteText writes one "<name>: size = <N>, offset = <N>" line per field.
func (r Report) WriteText(w io.Writer) error {
	for _, f := range r.Fields {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}
	return nil
}

// Text returns the text emission as a string.
func (r Report) Text() string {
	var buf bytes.Buffer
	_ = r.WriteText(&buf) // bytes.Buffer writes do not fail
	return buf.String()
}

// Fingerprint returns the xxh3 digest of the text emission. Two reports with
// the same fields in the same order have the same fingerprint.
func (r Report) Fingerprint() uint64 {
	return xxh3.HashString(r.Text())
}

// ParseText reads field lines in the WriteText format, such as the output of
// the C reporter built against the producer's header. Blank lines and lines
// starting with '#' are skipped. A field listed twice is an error.
func ParseText(rd io.Reader) ([]FieldLayout, error) {
	var fields []FieldLayout
	seen := make(map[string]int)

	scanner := bufio.NewScanner(rd)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		f, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if first, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("line %d: duplicate field %q, first listed on line %d", lineNo, f.Name, first)
		}
		seen[f.Name] = lineNo
		fields = append(fields, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	return fields, nil
}

func parseLine(line string) (FieldLayout, error) {
	name, rest, ok := strings.Cut(line, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return FieldLayout{}, fmt.Errorf("malformed layout line %q", line)
	}

	var f FieldLayout
	f.Name = name
	n, err := fmt.Sscanf(strings.TrimSpace(rest), "size = %d, offset = %d", &f.Size, &f.Offset)
	if err != nil || n != 2 {
		return FieldLayout{}, fmt.Errorf("malformed layout line %q", line)
	}
	if f.Size < 0 || f.Offset < 0 {
		return FieldLayout{}, fmt.Errorf("negative size or offset in %q", line)
	}
	return f, nil
}
