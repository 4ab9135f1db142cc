// Package terminal renders status views as lines of text.
package terminal

import (
	"fmt"
	"io"

	"github.com/aouiniamine/bookmarks/internal/features/status/view"
	"github.com/labstack/gommon/color"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

type Printer struct {
	w     io.Writer
	color *color.Color
}

// New colors output only for terminals in auto mode.
func New(w io.Writer, mode ColorMode) *Printer {
	c := color.New()
	c.SetOutput(w)
	switch mode {
	case ColorAlways:
		c.Enable()
	case ColorNever:
		c.Disable()
	}
	return &Printer{w: w, color: c}
}

func (p *Printer) Heading(r view.Rendering) error {
	_, err := fmt.Fprintln(p.w, p.color.Bold(r.Heading))
	return err
}

func (p *Printer) Status(r view.Rendering) error {
	text := r.Text
	if r.IsError {
		text = p.color.Red(text)
	}
	_, err := fmt.Fprintln(p.w, text)
	return err
}
