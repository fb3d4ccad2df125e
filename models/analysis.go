package models

import "time"

// Verdict values for text authorship assessment (closed set).
const (
	VerdictLikelyAI       = "Likely AI-generated"
	VerdictPossiblyAI     = "Possibly AI-assisted"
	VerdictLikelyHuman    = "Likely human-authored"
	VerdictLikelyCaptured = "Likely human-captured"
)

// Source is a grounding reference attached to an analysis.
// Sources are deduplicated by URI.
type Source struct {
	URI   string `bson:"uri" json:"uri"`
	Title string `bson:"title" json:"title"`
}

// KeyClaim is a single claim extracted from the analyzed content together
// with the model's assessment of it.
type KeyClaim struct {
	Claim        string `bson:"claim" json:"claim"`
	Assessment   string `bson:"assessment" json:"assessment"`
	IsMisleading bool   `bson:"is_misleading" json:"isMisleading"`
}

// AIGenerationAssessment describes how likely the content is to be
// machine-written. Verdict is restricted to the closed set above.
type AIGenerationAssessment struct {
	Verdict         string   `bson:"verdict" json:"verdict"`
	LikelihoodScore int      `bson:"likelihood_score" json:"likelihoodScore"`
	Confidence      int      `bson:"confidence" json:"confidence"`
	Rationale       string   `bson:"rationale" json:"rationale"`
	Indicators      []string `bson:"indicators" json:"indicators"`
}

// BiasDetection verdict values (closed set).
const (
	BiasNone     = "No significant bias"
	BiasSlight   = "Slight bias"
	BiasModerate = "Moderate bias"
	BiasStrong   = "Strong bias"
)

type BiasDetection struct {
	Verdict    string   `bson:"verdict" json:"verdict"`
	Score      int      `bson:"score" json:"score"`
	Rationale  string   `bson:"rationale" json:"rationale"`
	Indicators []string `bson:"indicators" json:"indicators"`
}

// SentimentManipulation verdict values (closed set).
const (
	ManipulationNone     = "None detected"
	ManipulationMild     = "Mild"
	ManipulationModerate = "Moderate"
	ManipulationHeavy    = "Heavy"
)

type SentimentManipulation struct {
	Verdict    string   `bson:"verdict" json:"verdict"`
	Score      int      `bson:"score" json:"score"`
	Rationale  string   `bson:"rationale" json:"rationale"`
	Techniques []string `bson:"techniques" json:"techniques"`
}

type PredictiveAlerts struct {
	RiskScore int      `bson:"risk_score" json:"riskScore"`
	Rationale string   `bson:"rationale" json:"rationale"`
	Alerts    []string `bson:"alerts" json:"alerts"`
}

// AnalysisResult is the sanitized output of one content assessment.
// Immutable after creation.
type AnalysisResult struct {
	CredibilityScore      int                     `bson:"credibility_score" json:"credibilityScore"`
	Summary               string                  `bson:"summary" json:"summary"`
	KeyClaims             []KeyClaim              `bson:"key_claims" json:"keyClaims"`
	AIGeneration          *AIGenerationAssessment `bson:"ai_generation,omitempty" json:"aiGeneration,omitempty"`
	BiasDetection         *BiasDetection          `bson:"bias_detection,omitempty" json:"biasDetection,omitempty"`
	SentimentManipulation *SentimentManipulation  `bson:"sentiment_manipulation,omitempty" json:"sentimentManipulation,omitempty"`
	PredictiveAlerts      *PredictiveAlerts       `bson:"predictive_alerts,omitempty" json:"predictiveAlerts,omitempty"`
	Sources               []Source                `bson:"sources" json:"sources"`
}

// AnalysisKind distinguishes what was submitted.
const (
	AnalysisKindText  = "text"
	AnalysisKindURL   = "url"
	AnalysisKindImage = "image"
)

// AnalysisRecord is one entry of a user's analysis history.
// Collection: analyses
type AnalysisRecord struct {
	ID          string               `bson:"_id" json:"id"`
	UserID      string               `bson:"user_id" json:"-"`
	Kind        string               `bson:"kind" json:"kind"`
	Query       string               `bson:"query" json:"query"`
	Language    string               `bson:"language,omitempty" json:"language,omitempty"`
	CreatedAt   time.Time            `bson:"created_at" json:"timestamp"`
	Result      *AnalysisResult      `bson:"result,omitempty" json:"result,omitempty"`
	ImageResult *ImageAnalysisResult `bson:"image_result,omitempty" json:"imageResult,omitempty"`
}
