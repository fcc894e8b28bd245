package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// PreviewLength is the number of characters of the input kept in history
const PreviewLength = 120

// Analysis is an audit record of one rendered verdict
type Analysis struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RequestID        string    `json:"request_id" gorm:"type:varchar(64);index"`
	TextPreview      string    `json:"text_preview" gorm:"type:text;not null"`
	TextLength       int       `json:"text_length" gorm:"not null"`
	TextSHA256       string    `json:"text_sha256" gorm:"type:char(64);not null;index"`
	NaiveBayes       string    `json:"naive_bayes" gorm:"type:varchar(32)"`
	DecisionTree     string    `json:"decision_tree" gorm:"type:varchar(32)"`
	RandomForest     string    `json:"random_forest" gorm:"type:varchar(32)"`
	GradientBoosting string    `json:"gradient_boosting" gorm:"type:varchar(32)"`
	StackingModel    string    `json:"stacking_model" gorm:"type:varchar(32)"`
	FinalVerdict     string    `json:"final_verdict" gorm:"type:varchar(32);index"`
	Style            string    `json:"style" gorm:"type:varchar(32);not null"`
	LatencyMs        int64     `json:"latency_ms" gorm:"default:0"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (Analysis) TableName() string {
	return "analyses"
}

// NewAnalysis builds an audit record for a rendered prediction
func NewAnalysis(requestID, text string, p *Prediction, latency time.Duration) *Analysis {
	sum := sha256.Sum256([]byte(text))
	return &Analysis{
		ID:               uuid.New(),
		RequestID:        requestID,
		TextPreview:      preview(text),
		TextLength:       utf8.RuneCountInString(text),
		TextSHA256:       hex.EncodeToString(sum[:]),
		NaiveBayes:       string(p.NaiveBayes),
		DecisionTree:     string(p.DecisionTree),
		RandomForest:     string(p.RandomForest),
		GradientBoosting: string(p.GradientBoosting),
		StackingModel:    string(p.StackingModel),
		FinalVerdict:     string(p.FinalVerdict),
		Style:            string(p.Style()),
		LatencyMs:        latency.Milliseconds(),
	}
}

// preview cuts text to PreviewLength characters, marking the cut with "..."
func preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	return lo.Substring(text, 0, PreviewLength-3) + "..."
}
