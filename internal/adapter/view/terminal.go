package view

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/newsverdict/verdict/internal/domain/entity"
	"github.com/newsverdict/verdict/internal/domain/render"
)

var (
	realStyle  = color.New(color.FgWhite, color.BgGreen, color.OpBold)
	fakeStyle  = color.New(color.FgWhite, color.BgRed, color.OpBold)
	alertStyle = color.New(color.FgYellow)
)

// Terminal renders verdicts as a table on a text stream. Alerts are written
// immediately to errOut; results are written by Flush once revealed.
type Terminal struct {
	out     io.Writer
	errOut  io.Writer
	colours bool

	texts   map[string]string
	class   string
	visible bool
}

// NewTerminal creates a terminal surface
func NewTerminal(out, errOut io.Writer, colours bool) *Terminal {
	return &Terminal{
		out:     out,
		errOut:  errOut,
		colours: colours,
		texts:   make(map[string]string),
	}
}

type terminalSlot struct {
	t  *Terminal
	id string
}

func (s terminalSlot) SetText(text string) { s.t.texts[s.id] = text }

func (s terminalSlot) SetClass(class string) { s.t.class = class }

// Show marks the results as ready to print
func (t *Terminal) Show() { t.visible = true }

// Alert prints a warning to errOut
func (t *Terminal) Alert(message string) {
	if t.colours {
		message = alertStyle.Sprint(message)
	}
	fmt.Fprintln(t.errOut, message)
}

// Bindings returns the terminal's output slots
func (t *Terminal) Bindings() render.Bindings {
	return render.Bindings{
		NaiveBayes:       terminalSlot{t: t, id: render.SlotNaiveBayes},
		DecisionTree:     terminalSlot{t: t, id: render.SlotDecisionTree},
		RandomForest:     terminalSlot{t: t, id: render.SlotRandomForest},
		GradientBoosting: terminalSlot{t: t, id: render.SlotGradientBoosting},
		Stacking:         terminalSlot{t: t, id: render.SlotStacking},
		Verdict:          terminalSlot{t: t, id: render.SlotFinalVerdict},
		Results:          t,
		Alert:            t,
	}
}

var terminalRows = []struct {
	model string
	slot  string
}{
	{entity.KeyNaiveBayes, render.SlotNaiveBayes},
	{entity.KeyDecisionTree, render.SlotDecisionTree},
	{entity.KeyRandomForest, render.SlotRandomForest},
	{entity.KeyGradientBoosting, render.SlotGradientBoosting},
	{entity.KeyStackingModel, render.SlotStacking},
}

// Flush prints the results table and verdict. Nothing is printed while the
// results are hidden.
func (t *Terminal) Flush() error {
	if !t.visible {
		return nil
	}

	table := tablewriter.NewWriter(t.out)
	table.SetHeader([]string{"Model", "Prediction"})
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range terminalRows {
		table.Append([]string{row.model, t.texts[row.slot]})
	}
	table.Render()

	verdict := t.texts[render.SlotFinalVerdict]
	if t.colours {
		if t.class == string(entity.StyleReal) {
			verdict = realStyle.Sprint(" " + verdict + " ")
		} else {
			verdict = fakeStyle.Sprint(" " + verdict + " ")
		}
	}
	_, err := fmt.Fprintf(t.out, "%s: %s\n", entity.KeyFinalVerdict, verdict)
	return err
}

// Class returns the verdict style applied by the last render
func (t *Terminal) Class() string {
	return t.class
}
