package entity

// Label is a classifier output as returned by the prediction API
type Label string

const (
	LabelReal Label = "REAL"
	LabelFake Label = "FAKE"
)

// Response keys of the prediction API
const (
	KeyNaiveBayes       = "Naive Bayes"
	KeyDecisionTree     = "Decision Tree"
	KeyRandomForest     = "Random Forest"
	KeyGradientBoosting = "Gradient Boosting"
	KeyStackingModel    = "Stacking Model"
	KeyFinalVerdict     = "Final Verdict"
)

// ModelKeys lists the per-model keys in display order
var ModelKeys = []string{
	KeyNaiveBayes,
	KeyDecisionTree,
	KeyRandomForest,
	KeyGradientBoosting,
	KeyStackingModel,
}

// ResponseKeys lists every key the prediction API is expected to return
var ResponseKeys = append(append([]string{}, ModelKeys...), KeyFinalVerdict)

// Style is the class applied to the verdict badge
type Style string

const (
	StyleReal Style = "verdict real"
	StyleFake Style = "verdict fake"
)

// StyleFor returns StyleReal only for an exact "REAL"; every other value,
// including malformed ones, is styled as fake.
func StyleFor(verdict Label) Style {
	if verdict == LabelReal {
		return StyleReal
	}
	return StyleFake
}

// AnalysisRequest is the body sent to the prediction API
type AnalysisRequest struct {
	Text string `json:"text"`
}

// AnalysisResponse is the raw prediction payload keyed by model name.
// Values are kept untyped so a non-string label does not fail decoding.
type AnalysisResponse map[string]any

// Label returns the string value stored under key, or "" when the key is
// absent or not a string.
func (r AnalysisResponse) Label(key string) (Label, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", true
	}
	return Label(s), true
}

// Prediction is the typed result rendered onto a surface
type Prediction struct {
	NaiveBayes       Label    `json:"naive_bayes"`
	DecisionTree     Label    `json:"decision_tree"`
	RandomForest     Label    `json:"random_forest"`
	GradientBoosting Label    `json:"gradient_boosting"`
	StackingModel    Label    `json:"stacking_model"`
	FinalVerdict     Label    `json:"final_verdict"`
	Missing          []string `json:"missing,omitempty"`
}

// NewPrediction maps a raw response onto a Prediction, recording absent keys
func NewPrediction(resp AnalysisResponse) *Prediction {
	p := &Prediction{}
	targets := map[string]*Label{
		KeyNaiveBayes:       &p.NaiveBayes,
		KeyDecisionTree:     &p.DecisionTree,
		KeyRandomForest:     &p.RandomForest,
		KeyGradientBoosting: &p.GradientBoosting,
		KeyStackingModel:    &p.StackingModel,
		KeyFinalVerdict:     &p.FinalVerdict,
	}
	for _, key := range ResponseKeys {
		label, ok := resp.Label(key)
		if !ok {
			p.Missing = append(p.Missing, key)
			continue
		}
		*targets[key] = label
	}
	return p
}

// Style returns the badge style for the final verdict
func (p *Prediction) Style() Style {
	return StyleFor(p.FinalVerdict)
}

// IsReal reports whether the final verdict is exactly REAL
func (p *Prediction) IsReal() bool {
	return p.FinalVerdict == LabelReal
}

// ModelLabels returns the per-model labels keyed by response key
func (p *Prediction) ModelLabels() map[string]Label {
	return map[string]Label{
		KeyNaiveBayes:       p.NaiveBayes,
		KeyDecisionTree:     p.DecisionTree,
		KeyRandomForest:     p.RandomForest,
		KeyGradientBoosting: p.GradientBoosting,
		KeyStackingModel:    p.StackingModel,
	}
}
