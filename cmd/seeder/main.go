package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"veritas-ai/analyzer"
	"veritas-ai/config"
	"veritas-ai/db"
	"veritas-ai/eventbus"
	"veritas-ai/feeder"
	"veritas-ai/logger"
	"veritas-ai/models"
	"veritas-ai/repositories"
)

const (
	itemsPerSource = 5
	seedInterval   = 30 * time.Minute

	// Entries that could not be analyzed enter the feed with a neutral
	// score so votes still work on them.
	neutralScore = 50
)

func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	bus, err := eventbus.NewFromEnv()
	if err != nil {
		log.Fatal("failed to initialize event bus:", err)
	}
	defer bus.Close()

	// The seeder keeps running without Gemini credentials; it just seeds
	// neutral entries in that case.
	geminiAnalyzer, err := analyzer.NewAnalyzer(ctx)
	if err != nil {
		logger.Log.Warnf("Analyzer unavailable, seeding neutral entries: %v", err)
		geminiAnalyzer = nil
	}

	communityRepo := repositories.NewCommunityRepository(db.Client(), db.Database())

	if err := runOnce(ctx, communityRepo, geminiAnalyzer, bus); err != nil {
		logger.Log.Errorf("Seeder run failed: %v", err)
	}

	ticker := time.NewTicker(seedInterval)
	defer ticker.Stop()
	for range ticker.C {
		if err := runOnce(ctx, communityRepo, geminiAnalyzer, bus); err != nil {
			logger.Log.Errorf("Seeder run failed: %v", err)
		}
	}
}

// runOnce seeds one batch of watchlist headlines into the community feed.
func runOnce(ctx context.Context, repo *repositories.CommunityRepository, a *analyzer.Analyzer, bus eventbus.EventBus) error {
	sources := config.GetConfig().Watchlist
	if len(sources) == 0 {
		logger.Log.Warn("No watchlist sources configured in config.yaml (key: watchlist)")
		return nil
	}

	for _, src := range sources {
		items, err := feeder.FetchRssFeeds(src.RSSURL, itemsPerSource)
		if err != nil {
			logger.Log.Errorf("Failed to fetch feed %s: %v", src.Name, err)
			continue
		}

		for _, item := range items {
			entry := buildEntry(ctx, a, item)
			if err := repo.Upsert(ctx, entry); err != nil {
				logger.Log.Errorf("Failed to upsert entry %s: %v", entry.ID, err)
				continue
			}
			publishSeeded(ctx, bus, src.Name, entry)
		}
		logger.Log.Infof("Seeded %d entries from %s", len(items), src.Name)
	}
	return nil
}

// buildEntry analyzes one headline when the analyzer is available and
// falls back to a neutral entry otherwise.
func buildEntry(ctx context.Context, a *analyzer.Analyzer, item feeder.RssFeedItem) *models.CommunityEntry {
	entry := &models.CommunityEntry{
		// SHA1 of the article link keeps reruns idempotent.
		ID:               uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.Link)).String(),
		Headline:         item.Title,
		Summary:          item.Description,
		Timestamp:        item.PublishedAt,
		CredibilityScore: neutralScore,
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if a == nil {
		return entry
	}

	result, _, err := a.AnalyzeText(ctx, item.Title+"\n\n"+item.Description)
	if err != nil {
		logger.Log.Warnf("Analysis failed for %q, seeding neutral: %v", item.Title, err)
		return entry
	}

	entry.CredibilityScore = result.CredibilityScore
	if result.Summary != "" {
		entry.Summary = result.Summary
	}
	if result.AIGeneration != nil {
		entry.AIVerdict = result.AIGeneration.Verdict
		entry.AIDetection = result.AIGeneration
	}
	return entry
}

type entrySeededEvent struct {
	EntryID          string `json:"entry_id"`
	Source           string `json:"source"`
	Headline         string `json:"headline"`
	CredibilityScore int    `json:"credibility_score"`
}

func publishSeeded(ctx context.Context, bus eventbus.EventBus, source string, entry *models.CommunityEntry) {
	event := eventbus.NewEvent(entrySeededEvent{
		EntryID:          entry.ID,
		Source:           source,
		Headline:         entry.Headline,
		CredibilityScore: entry.CredibilityScore,
	})
	if err := bus.Publish(ctx, eventbus.TopicFeedEntrySeeded, event); err != nil {
		logger.Log.Warnf("Failed to publish seeded event for %s: %v", entry.ID, err)
	}
}
