// Package report renders human-readable summaries of conversions,
// validation results and type lookups.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/metaconv/internal/metadata"
	"github.com/vvka-141/metaconv/internal/pgtypes"
	"github.com/vvka-141/metaconv/internal/pipeline"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// Printer writes summaries to w, styled when color is true.
type Printer struct {
	w      io.Writer
	styles styles
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{
		w:      w,
		styles: newStyles(lipgloss.NewRenderer(w), color),
	}
}

// Validation prints the findings for one document.
func (p *Printer) Validation(input string, v metadata.ValidationResult) {
	s := p.styles
	if !v.HasErrors() {
		fmt.Fprintf(p.w, "%s %s: valid v%s metadata\n", s.success.Render(SymbolCheck), input, v.Version)
	} else {
		fmt.Fprintf(p.w, "%s %s: %d problem(s) against v%s\n", s.err.Render(SymbolCross), input, len(v.Errors), v.Version)
		for _, e := range v.Errors {
			fmt.Fprintf(p.w, "  %s %s\n", s.err.Render(SymbolBullet), e)
		}
	}
	for _, w := range v.Warnings {
		fmt.Fprintf(p.w, "  %s %s\n", s.warning.Render(SymbolWarning), w)
	}
}

// Converted prints one completed conversion.
func (p *Printer) Converted(res *pipeline.Result) {
	s := p.styles
	fmt.Fprintf(p.w, "%s %s %s %s %s\n",
		s.success.Render(SymbolCheck),
		res.Input,
		SymbolArrowRight,
		s.title.Render(res.Output),
		s.muted.Render(fmt.Sprintf("(table %s, v%s to v%s)", res.Table, res.SourceVersion, metaconv.TargetVersion)))
	if n := len(res.Validation.Errors) + len(res.Validation.Warnings); n > 0 {
		fmt.Fprintf(p.w, "  %s\n", s.warning.Render(fmt.Sprintf("%d validation finding(s)", n)))
	}
	for _, path := range res.Intermediates {
		fmt.Fprintf(p.w, "  %s\n", s.muted.Render("kept "+path))
	}
}

// Types prints resolved column types, one per line.
func (p *Printer) Types(types []pgtypes.ColumnType) {
	for _, t := range types {
		fmt.Fprintf(p.w, "%s %s %s\n", t.Name, SymbolArrowRight, p.styles.title.Render(t.SQL()))
	}
}
