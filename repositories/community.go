package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"veritas-ai/models"
	"veritas-ai/votes"
)

// ErrEntryNotFound is returned when a feed entry id does not exist.
var ErrEntryNotFound = errors.New("community entry not found")

type CommunityRepository struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewCommunityRepository(client *mongo.Client, db *mongo.Database) *CommunityRepository {
	return &CommunityRepository{client: client, col: db.Collection("community_feed")}
}

// Upsert merges the entry into the feed by id. Vote state is never touched
// here: counts and user votes belong to RecordVote, and created_at survives
// re-seeding.
func (r *CommunityRepository) Upsert(ctx context.Context, e *models.CommunityEntry) error {
	now := time.Now()

	filter := bson.M{"_id": e.ID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at":    now,
			"support_count": 0,
			"dispute_count": 0,
		},
		"$set": bson.M{
			"headline":          e.Headline,
			"summary":           e.Summary,
			"timestamp":         e.Timestamp,
			"credibility_score": e.CredibilityScore,
			"ai_verdict":        e.AIVerdict,
			"ai_detection":      e.AIDetection,
			"updated_at":        now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

// List returns the newest entries first, bounded by limit.
func (r *CommunityRepository) List(ctx context.Context, limit int) ([]models.CommunityEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.CommunityEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RecordVote applies one user's vote inside a transaction: the previous vote
// is read, the next state derived (same direction toggles off, the opposite
// switches) and the counts adjusted, all atomically. Concurrent votes on the
// same entry retry through the driver's transient-error handling.
func (r *CommunityRepository) RecordVote(ctx context.Context, entryID, userID string, requested votes.Direction) (*models.CommunityEntry, error) {
	sess, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer sess.EndSession(ctx)

	result, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var e models.CommunityEntry
		if err := r.col.FindOne(sc, bson.M{"_id": entryID}).Decode(&e); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrEntryNotFound
			}
			return nil, err
		}

		prev, _ := votes.Parse(e.UserVotes[userID])
		next := votes.Next(prev, requested)
		support, dispute := votes.AdjustCounts(prev, next, e.SupportCount, e.DisputeCount)

		set := bson.M{
			"support_count": support,
			"dispute_count": dispute,
			"updated_at":    time.Now(),
		}
		update := bson.M{"$set": set}
		if next == votes.None {
			update["$unset"] = bson.M{"user_votes." + userID: ""}
		} else {
			set["user_votes."+userID] = string(next)
		}

		if _, err := r.col.UpdateOne(sc, bson.M{"_id": entryID}, update); err != nil {
			return nil, err
		}

		e.SupportCount = support
		e.DisputeCount = dispute
		if e.UserVotes == nil {
			e.UserVotes = map[string]string{}
		}
		if next == votes.None {
			delete(e.UserVotes, userID)
		} else {
			e.UserVotes[userID] = string(next)
		}
		return &e, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.CommunityEntry), nil
}

// Watch opens a change stream over the feed collection. Callers receive a
// signal per change batch and re-list; falling back to polling is up to the
// caller when the deployment has no oplog.
func (r *CommunityRepository) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	return r.col.Watch(ctx, mongo.Pipeline{}, options.ChangeStream())
}
