package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/rangeprint/internal/errors"
)

// Diagnostics writes one line per fatal error: the failure category,
// styled, followed by the error message.
type Diagnostics struct {
	w     io.Writer
	label lipgloss.Style
}

// NewDiagnostics returns a Diagnostics writing to w. The color profile is
// detected from w.
func NewDiagnostics(w io.Writer) *Diagnostics {
	r := lipgloss.NewRenderer(w)
	return &Diagnostics{
		w:     w,
		label: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// Report prints the diagnostic line for err. A nil error prints nothing.
func (d *Diagnostics) Report(err error) {
	if err == nil {
		return
	}
	category := apperrors.CategoryOf(err)
	fmt.Fprintf(d.w, "%s: %v\n", d.label.Render(string(category)), err)
}
