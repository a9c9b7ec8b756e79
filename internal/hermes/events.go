package hermes

import (
	"fmt"
	"math"
	"time"
)

// DuplicateWindow is how long the stream remembers message IDs.
const DuplicateWindow = 2 * time.Minute

// Deduplicated is implemented by events whose repeats carry no new information. Publishers
// attach MessageID so the stream can drop them.
type Deduplicated interface {
	MessageID() string
}

// Change kinds carried by UniversityEvent.
const (
	ChangeCreated        = "created"
	ChangeInstitution    = "institution"
	ChangeCareerAdded    = "career_added"
	ChangeCareerUpdated  = "career_updated"
	ChangeCareerRemoved  = "career_removed"
	ChangeMatrixEdited   = "matrix_edited"
	ChangeTemplateLoaded = "template_loaded"
)

type UniversityEvent struct {
	UniversityID string    `json:"university_id"`
	Name         string    `json:"name"`
	Change       string    `json:"change"`
	CareerID     string    `json:"career_id,omitempty"`
	ClientID     string    `json:"client_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type WeightsUpdatedEvent struct {
	WeightEducation   float64   `json:"weight_education"`
	WeightNormative   float64   `json:"weight_normative"`
	WeightResearch    float64   `json:"weight_research"`
	TotalSystemBudget float64   `json:"total_system_budget"`
	TotalSystemPoints float64   `json:"total_system_points"`
	Timestamp         time.Time `json:"timestamp"`
}

type ResultComputedEvent struct {
	UniversityID    string    `json:"university_id"`
	Name            string    `json:"name"`
	TotalScore      float64   `json:"total_score"`
	SharePercent    float64   `json:"share_percent"`
	EstimatedBudget float64   `json:"estimated_budget"`
	CostPerStudent  float64   `json:"cost_per_student"`
	TotalHeadcount  int       `json:"total_headcount"`
	Trigger         string    `json:"trigger"`
	Timestamp       time.Time `json:"timestamp"`
}

// MessageID identifies the computed figures, not the computation. A recalculation that
// reproduces the previous result yields the same ID whatever triggered it.
func (e ResultComputedEvent) MessageID() string {
	return fmt.Sprintf("result-%s-%016x-%016x-%d",
		e.UniversityID,
		math.Float64bits(e.TotalScore),
		math.Float64bits(e.EstimatedBudget),
		e.TotalHeadcount)
}
