// Package render writes predictions onto an injected output surface.
package render

import (
	"github.com/newsverdict/verdict/internal/domain/entity"
)

// TextSlot is an output bound to a single label
type TextSlot interface {
	SetText(text string)
}

// BadgeSlot is a text slot that also carries a style class
type BadgeSlot interface {
	TextSlot
	SetClass(class string)
}

// Panel is a results container hidden until a verdict is rendered
type Panel interface {
	Show()
}

// Alerter surfaces a user-facing warning
type Alerter interface {
	Alert(message string)
}

// Bindings holds every slot a surface exposes
type Bindings struct {
	NaiveBayes       TextSlot
	DecisionTree     TextSlot
	RandomForest     TextSlot
	GradientBoosting TextSlot
	Stacking         TextSlot
	Verdict          BadgeSlot
	Results          Panel
	Alert            Alerter
}

// Render assigns every label of p to its slot, styles the verdict badge and
// reveals the results panel. Assignments overwrite, so rendering the same
// prediction twice leaves the surface unchanged.
func Render(p *entity.Prediction, b Bindings) {
	b.NaiveBayes.SetText(string(p.NaiveBayes))
	b.DecisionTree.SetText(string(p.DecisionTree))
	b.RandomForest.SetText(string(p.RandomForest))
	b.GradientBoosting.SetText(string(p.GradientBoosting))
	b.Stacking.SetText(string(p.StackingModel))

	b.Verdict.SetText(string(p.FinalVerdict))
	b.Verdict.SetClass(string(p.Style()))

	b.Results.Show()
}

// Warn surfaces message through the alert slot, if one is bound
func Warn(b Bindings, message string) {
	if b.Alert != nil {
		b.Alert.Alert(message)
	}
}
