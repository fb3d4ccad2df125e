package services

import (
	"context"
	"time"

	"veritas-ai/cmd/api/dto"
	"veritas-ai/eventbus"
	"veritas-ai/logger"
	"veritas-ai/models"
	"veritas-ai/repositories"
	"veritas-ai/votes"
)

type CommunityService struct {
	repo      *repositories.CommunityRepository
	bus       eventbus.EventBus
	notifier  *FeedNotifier
	feedLimit int
}

func NewCommunityService(repo *repositories.CommunityRepository, bus eventbus.EventBus, notifier *FeedNotifier, feedLimit int) *CommunityService {
	return &CommunityService{
		repo:      repo,
		bus:       bus,
		notifier:  notifier,
		feedLimit: feedLimit,
	}
}

// Feed lists the newest entries projected for one viewer.
func (s *CommunityService) Feed(ctx context.Context, viewerID string) ([]dto.CommunityEntryDTO, error) {
	entries, err := s.repo.List(ctx, s.feedLimit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommunityEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.NewCommunityEntryDTO(e, viewerID))
	}
	return items, nil
}

type voteRecordedEvent struct {
	EntryID      string `json:"entry_id"`
	UserID       string `json:"user_id"`
	Direction    string `json:"direction"`
	SupportCount int    `json:"support_count"`
	DisputeCount int    `json:"dispute_count"`
}

// Vote applies one user's vote and returns the updated entry as seen by that
// user. Repeating a vote toggles it off; the opposite direction switches.
func (s *CommunityService) Vote(ctx context.Context, entryID, userID string, direction votes.Direction) (dto.CommunityEntryDTO, error) {
	entry, err := s.repo.RecordVote(ctx, entryID, userID, direction)
	if err != nil {
		return dto.CommunityEntryDTO{}, err
	}

	event := eventbus.NewEvent(voteRecordedEvent{
		EntryID:      entry.ID,
		UserID:       userID,
		Direction:    entry.UserVotes[userID],
		SupportCount: entry.SupportCount,
		DisputeCount: entry.DisputeCount,
	})
	if err := s.bus.Publish(ctx, eventbus.TopicVoteRecorded, event); err != nil {
		logger.WarnWithFields("failed to publish vote event", logger.Fields{
			"entry_id": entry.ID,
			"error":    err.Error(),
		})
	}

	s.notifier.Broadcast(FeedEvent{Type: "vote", EntryID: entry.ID})
	return dto.NewCommunityEntryDTO(*entry, userID), nil
}

// Seed merges an entry into the feed, as done by the watchlist seeder.
func (s *CommunityService) Seed(ctx context.Context, entry *models.CommunityEntry) error {
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return err
	}
	s.notifier.Broadcast(FeedEvent{Type: "seed", EntryID: entry.ID})
	return nil
}

// WatchFeed pushes a notification to websocket clients whenever the feed
// collection changes. Deployments without an oplog (standalone Mongo) fall
// back to polling.
func (s *CommunityService) WatchFeed(ctx context.Context) {
	stream, err := s.repo.Watch(ctx)
	if err != nil {
		logger.WarnWithFields("change streams unavailable, falling back to polling", logger.Fields{
			"error": err.Error(),
		})
		s.pollFeed(ctx)
		return
	}
	defer stream.Close(ctx)

	logger.Log.Info("community feed change stream started")
	for stream.Next(ctx) {
		s.broadcastListing(ctx)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		logger.ErrorWithFields("community feed change stream closed", logger.Fields{
			"error": err.Error(),
		})
	}
}

const feedPollInterval = 15 * time.Second

func (s *CommunityService) pollFeed(ctx context.Context) {
	ticker := time.NewTicker(feedPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.notifier.ClientCount() > 0 {
				s.broadcastListing(ctx)
			}
		}
	}
}

// broadcastListing pushes the current feed snapshot to all clients. The
// snapshot carries no viewer-specific vote; clients keep their own vote
// state from the REST responses.
func (s *CommunityService) broadcastListing(ctx context.Context) {
	items, err := s.Feed(ctx, "")
	if err != nil {
		logger.WarnWithFields("failed to list feed for broadcast", logger.Fields{
			"error": err.Error(),
		})
		return
	}
	s.notifier.Broadcast(FeedEvent{Type: "feed", Items: items})
}
