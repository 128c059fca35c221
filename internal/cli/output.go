package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tahlil-bot/internal/models"
)

// Output handles formatted terminal output for the CLI.
type Output struct {
	writer io.Writer
	buy    *color.Color
	sell   *color.Color
	warn   *color.Color
	header *color.Color
}

// NewOutput creates a new Output instance.
func NewOutput(cmd *cobra.Command, colorEnabled bool) *Output {
	o := &Output{
		writer: cmd.OutOrStdout(),
		buy:    color.New(color.FgGreen, color.Bold),
		sell:   color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow),
		header: color.New(color.Bold),
	}
	if !colorEnabled {
		for _, c := range []*color.Color{o.buy, o.sell, o.warn, o.header} {
			c.DisableColor()
		}
	}
	return o
}

// Println writes a plain line.
func (o *Output) Println(s string) {
	fmt.Fprintln(o.writer, s)
}

// Header writes an emphasized line.
func (o *Output) Header(s string) {
	o.header.Fprintln(o.writer, s)
}

// Row writes an aligned label/value pair.
func (o *Output) Row(label, value string) {
	fmt.Fprintf(o.writer, "  %-12s %s\n", label, value)
}

// Warn writes a warning line.
func (o *Output) Warn(s string) {
	o.warn.Fprintf(o.writer, "⚠ %s\n", s)
}

// Decision writes a colored decision banner.
func (o *Output) Decision(d models.Decision) {
	switch d {
	case models.DecisionBuy:
		o.buy.Fprintln(o.writer, "▲ BUY")
	case models.DecisionSell:
		o.sell.Fprintln(o.writer, "▼ SELL")
	default:
		fmt.Fprintln(o.writer, "● NEUTRAL")
	}
}
