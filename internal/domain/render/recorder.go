package render

import "sync"

// Recorder is an in-memory surface. It backs the JSON API and is handy in
// tests that need to inspect what was rendered.
type Recorder struct {
	mu      sync.Mutex
	texts   map[string]string
	class   string
	visible bool
	alerts  []string
}

// NewRecorder creates an empty surface with the results panel hidden
func NewRecorder() *Recorder {
	return &Recorder{texts: make(map[string]string)}
}

type recorderSlot struct {
	r   *Recorder
	key string
}

func (s recorderSlot) SetText(text string) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	s.r.texts[s.key] = text
}

func (s recorderSlot) SetClass(class string) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	s.r.class = class
}

// Show reveals the results panel
func (r *Recorder) Show() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = true
}

// Alert records a warning
func (r *Recorder) Alert(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, message)
}

// Bindings returns slots writing into the recorder, keyed by the page ids
func (r *Recorder) Bindings() Bindings {
	return Bindings{
		NaiveBayes:       recorderSlot{r: r, key: SlotNaiveBayes},
		DecisionTree:     recorderSlot{r: r, key: SlotDecisionTree},
		RandomForest:     recorderSlot{r: r, key: SlotRandomForest},
		GradientBoosting: recorderSlot{r: r, key: SlotGradientBoosting},
		Stacking:         recorderSlot{r: r, key: SlotStacking},
		Verdict:          recorderSlot{r: r, key: SlotFinalVerdict},
		Results:          r,
		Alert:            r,
	}
}

// Text returns the value written to the slot with the given id
func (r *Recorder) Text(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.texts[id]
}

// Written reports whether any slot has been assigned
func (r *Recorder) Written() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.texts) > 0 || r.class != ""
}

// Class returns the verdict badge class
func (r *Recorder) Class() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.class
}

// Visible reports whether the results panel was revealed
func (r *Recorder) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// Alerts returns the warnings raised so far
func (r *Recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}
