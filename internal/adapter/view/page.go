package view

import (
	"embed"
	"html/template"

	"github.com/newsverdict/verdict/internal/domain/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the name of the analyzer page template
const PageTemplate = "index.html"

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Page is the view model of the analyzer page. It exposes the same slots
// the page markup renders, keyed by element id.
type Page struct {
	Input          string
	VerdictClass   string
	ResultsVisible bool
	Alerts         []string
	RequestID      string

	texts map[string]string
}

// NewPage creates a page with the results container hidden
func NewPage(input string) *Page {
	return &Page{
		Input: input,
		texts: make(map[string]string),
	}
}

type pageSlot struct {
	p  *Page
	id string
}

func (s pageSlot) SetText(text string) { s.p.texts[s.id] = text }

func (s pageSlot) SetClass(class string) { s.p.VerdictClass = class }

// Show reveals the results container
func (p *Page) Show() { p.ResultsVisible = true }

// Alert queues a warning shown above the form
func (p *Page) Alert(message string) { p.Alerts = append(p.Alerts, message) }

// Bindings returns the page's output slots
func (p *Page) Bindings() render.Bindings {
	return render.Bindings{
		NaiveBayes:       pageSlot{p: p, id: render.SlotNaiveBayes},
		DecisionTree:     pageSlot{p: p, id: render.SlotDecisionTree},
		RandomForest:     pageSlot{p: p, id: render.SlotRandomForest},
		GradientBoosting: pageSlot{p: p, id: render.SlotGradientBoosting},
		Stacking:         pageSlot{p: p, id: render.SlotStacking},
		Verdict:          pageSlot{p: p, id: render.SlotFinalVerdict},
		Results:          p,
		Alert:            p,
	}
}

// Text returns the value rendered into the slot with the given id
func (p *Page) Text(id string) string {
	return p.texts[id]
}

// ResultsClass is the class attribute of the results container
func (p *Page) ResultsClass() string {
	if p.ResultsVisible {
		return "results"
	}
	return "results hidden"
}
