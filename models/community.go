package models

import "time"

// CommunityEntry is a shared, multi-user feed document.
// Collection: community_feed
//
// SupportCount and DisputeCount always equal the number of "up"/"down"
// entries in UserVotes; they are mutated only inside the vote transaction.
// Entries are never deleted.
type CommunityEntry struct {
	ID               string                  `bson:"_id" json:"id"`
	Headline         string                  `bson:"headline" json:"headline"`
	Summary          string                  `bson:"summary" json:"summary"`
	Timestamp        time.Time               `bson:"timestamp" json:"timestamp"`
	CredibilityScore int                     `bson:"credibility_score" json:"credibilityScore"`
	AIVerdict        string                  `bson:"ai_verdict,omitempty" json:"aiVerdict,omitempty"`
	AIDetection      *AIGenerationAssessment `bson:"ai_detection,omitempty" json:"aiDetection,omitempty"`
	SupportCount     int                     `bson:"support_count" json:"supportCount"`
	DisputeCount     int                     `bson:"dispute_count" json:"disputeCount"`

	// UserVotes maps voter id to "up" or "down". It is server-side state;
	// API responses expose only the caller's own vote, derived from it.
	UserVotes map[string]string `bson:"user_votes,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
