package eventbus

// Topics published by the API service.
const (
	TopicAnalysisCompleted = "analysis.completed"
	TopicVoteRecorded      = "community.vote.recorded"
	TopicFeedEntrySeeded   = "community.feed.seeded"
)
