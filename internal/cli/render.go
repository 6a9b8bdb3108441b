package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/coral-mesh/stacklayout/internal/layout"
)

// renderResult prints the outcome of a comparison and returns err unchanged,
// so a mismatch still fails the command. The renderer is bound to w, so
// output is unstyled when w is not a terminal.
func renderResult(w io.Writer, subject string, fields int, err error) error {
	r := lipgloss.NewRenderer(w)
	okStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	badStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle := r.NewStyle().Bold(true)

	if err == nil {
		_, werr := fmt.Fprintf(w, "%s %s (%d fields)\n", okStyle.Render("OK"), subject, fields)
		return werr
	}

	var mismatch *layout.MismatchError
	if !errors.As(err, &mismatch) {
		return err
	}

	if _, werr := fmt.Fprintf(w, "%s %s: %d difference(s)\n", badStyle.Render("MISMATCH"), subject, len(mismatch.Mismatches)); werr != nil {
		return werr
	}
	if _, werr := fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-12s %-10s %-22s %-22s", "FIELD", "REASON", "WANT", "GOT"))); werr != nil {
		return werr
	}
	for _, m := range mismatch.Mismatches {
		line := fmt.Sprintf("%-12s %-10s %-22s %-22s", m.Field, m.Reason, placement(m.Want, m.Reason != layout.ReasonUnexpected), placement(m.Got, m.Reason != layout.ReasonMissing))
		if _, werr := fmt.Fprintln(w, line); werr != nil {
			return werr
		}
	}
	return err
}

func placement(f layout.FieldLayout, known bool) string {
	if !known {
		return "-"
	}
	if f.Name == layout.RecordField {
		return fmt.Sprintf("size=%d", f.Size)
	}
	return fmt.Sprintf("size=%d offset=%d", f.Size, f.Offset)
}
