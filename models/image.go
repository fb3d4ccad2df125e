package models

// ImageAuthenticity is the authenticity assessment for an image submission.
// Verdict is one of VerdictLikelyAI, VerdictPossiblyAI, VerdictLikelyCaptured.
type ImageAuthenticity struct {
	Verdict    string   `bson:"verdict" json:"verdict"`
	Confidence int      `bson:"confidence" json:"confidence"`
	Rationale  string   `bson:"rationale" json:"rationale"`
	Indicators []string `bson:"indicators" json:"indicators"`
	RiskScore  *int     `bson:"risk_score,omitempty" json:"riskScore,omitempty"`
}

// ImageAnalysisResult is the sanitized output of one image assessment.
// A secondary risk-audit pass may raise the verdict severity and the risk
// score, never lower them.
type ImageAnalysisResult struct {
	Summary          string            `bson:"summary" json:"summary"`
	Authenticity     ImageAuthenticity `bson:"authenticity" json:"authenticity"`
	ContentWarnings  []string          `bson:"content_warnings" json:"contentWarnings"`
	SuggestedActions []string          `bson:"suggested_actions" json:"suggestedActions"`
}

// VisionFindings is the sanitized response of the content-service image
// forensics endpoint. Every field is independently optional on the wire.
type VisionFindings struct {
	AIScore           int      `json:"aiScore"`
	Verdict           string   `json:"verdict"`
	Confidence        int      `json:"confidence"`
	Rationale         string   `json:"rationale"`
	Indicators        []string `json:"indicators"`
	Warnings          []string `json:"warnings"`
	SuggestedActions  []string `json:"suggestedActions"`
	BestGuessLabels   []string `json:"bestGuessLabels"`
	LabelHints        []string `json:"labelHints"`
	SuspiciousDomains []string `json:"suspiciousDomains"`
}
