package dto

import (
	"time"

	"veritas-ai/models"
)

// CommunityEntryDTO is one feed entry as exposed to clients. UserVote is the
// caller's own vote ("up", "down" or empty), derived server-side.
type CommunityEntryDTO struct {
	ID               string                         `json:"id"`
	Headline         string                         `json:"headline"`
	Summary          string                         `json:"summary"`
	Timestamp        time.Time                      `json:"timestamp"`
	CredibilityScore int                            `json:"credibilityScore"`
	AIVerdict        string                         `json:"aiVerdict,omitempty"`
	AIDetection      *models.AIGenerationAssessment `json:"aiDetection,omitempty"`
	SupportCount     int                            `json:"supportCount"`
	DisputeCount     int                            `json:"disputeCount"`
	UserVote         string                         `json:"userVote,omitempty" example:"up"`
}

// CommunityFeedResponseDTO is the feed listing, newest first.
type CommunityFeedResponseDTO struct {
	Items []CommunityEntryDTO `json:"items"`
}

// VoteRequest is the body of POST /api/v1/community/:id/vote.
type VoteRequest struct {
	Direction string `json:"direction" binding:"required" example:"up"`
}

// NewCommunityEntryDTO projects an entry for one viewer.
func NewCommunityEntryDTO(e models.CommunityEntry, viewerID string) CommunityEntryDTO {
	return CommunityEntryDTO{
		ID:               e.ID,
		Headline:         e.Headline,
		Summary:          e.Summary,
		Timestamp:        e.Timestamp,
		CredibilityScore: e.CredibilityScore,
		AIVerdict:        e.AIVerdict,
		AIDetection:      e.AIDetection,
		SupportCount:     e.SupportCount,
		DisputeCount:     e.DisputeCount,
		UserVote:         e.UserVotes[viewerID],
	}
}
