package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Reason classifies a single layout disagreement.
type Reason string

const (
	ReasonMissing    Reason = "missing"
	ReasonUnexpected Reason = "unexpected"
	ReasonOrder      Reason = "order"
	ReasonSize       Reason = "size"
	ReasonOffset     Reason = "offset"
)

// Mismatch is one field on which two layouts disagree.
type Mismatch struct {
	Field  string
	Reason Reason
	// Want is the reference placement. Zero for ReasonUnexpected.
	Want FieldLayout
	// Got is the checked placement. Zero for ReasonMissing.
	Got FieldLayout
}

func (m Mismatch) String() string {
	switch m.Reason {
	case ReasonMissing:
		return fmt.Sprintf("%s: missing (want size = %d, offset = %d)", m.Field, m.Want.Size, m.Want.Offset)
	case ReasonUnexpected:
		return fmt.Sprintf("%s: unexpected field (size = %d, offset = %d)", m.Field, m.Got.Size, m.Got.Offset)
	case ReasonSize:
		return fmt.Sprintf("%s: size = %d, want %d", m.Field, m.Got.Size, m.Want.Size)
	case ReasonOffset:
		return fmt.Sprintf("%s: offset = %d, want %d", m.Field, m.Got.Offset, m.Want.Offset)
	default:
		return fmt.Sprintf("%s: %s", m.Field, m.Reason)
	}
}

// MismatchError reports that two layouts of the same record disagree.
type MismatchError struct {
	Mismatches []Mismatch
}

func (e *MismatchError) Error() string {
	parts := make([]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		parts = append(parts, m.String())
	}
	return fmt.Sprintf("layout mismatch in %d field(s): %s", len(e.Mismatches), strings.Join(parts, "; "))
}

// Compare checks got against the reference want. It returns nil when both
// list the same fields in the same order with equal sizes and offsets, and a
// *MismatchError otherwise.
func Compare(want, got []FieldLayout) error {
	var mismatches []Mismatch

	gotIndex := make(map[string]int, len(got))
	for i, f := range got {
		gotIndex[f.Name] = i
	}
	wantIndex := make(map[string]int, len(want))
	for i, f := range want {
		wantIndex[f.Name] = i
	}

	// Declaration order is checked among the fields both sides declare, so
	// a single missing field does not flag every field after it.
	var gotOrder []string
	for _, g := range got {
		if _, ok := wantIndex[g.Name]; ok {
			gotOrder = append(gotOrder, g.Name)
		}
	}

	pos := 0
	for _, w := range want {
		j, ok := gotIndex[w.Name]
		if !ok {
			mismatches = append(mismatches, Mismatch{Field: w.Name, Reason: ReasonMissing, Want: w})
			continue
		}
		g := got[j]
		inOrder := pos < len(gotOrder) && gotOrder[pos] == w.Name
		pos++

		if g.Size != w.Size {
			mismatches = append(mismatches, Mismatch{Field: w.Name, Reason: ReasonSize, Want: w, Got: g})
		}
		if g.Offset != w.Offset {
			mismatches = append(mismatches, Mismatch{Field: w.Name, Reason: ReasonOffset, Want: w, Got: g})
		}
		if !inOrder && g.Size == w.Size && g.Offset == w.Offset {
			mismatches = append(mismatches, Mismatch{Field: w.Name, Reason: ReasonOrder, Want: w, Got: g})
		}
	}

	for _, g := range got {
		if _, ok := wantIndex[g.Name]; !ok {
			mismatches = append(mismatches, Mismatch{Field: g.Name, Reason: ReasonUnexpected, Got: g})
		}
	}

	if len(mismatches) == 0 {
		return nil
	}
	return &MismatchError{Mismatches: mismatches}
}

// RecordField is the Mismatch.Field used for a disagreement on the total
// record size.
const RecordField = "(record)"

// CompareReports is Compare plus a check of the total record size, which
// covers trailing padding. The size check is skipped when either side does not
// know it.
func CompareReports(want, got Report) error {
	err := Compare(want.Fields, got.Fields)
	if want.Size == 0 || got.Size == 0 || want.Size == got.Size {
		return err
	}

	sizeMismatch := Mismatch{
		Field:  RecordField,
		Reason: ReasonSize,
		Want:   FieldLayout{Name: RecordField, Size: want.Size},
		Got:    FieldLayout{Name: RecordField, Size: got.Size},
	}
	var mismatch *MismatchError
	if errors.As(err, &mismatch) {
		mismatch.Mismatches = append(mismatch.Mismatches, sizeMismatch)
		return mismatch
	}
	return &MismatchError{Mismatches: []Mismatch{sizeMismatch}}
}
