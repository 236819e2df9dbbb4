package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/domeball/core/internal/models"
)

// WriteEventLog persists a completed match's full event stream plus final
// stats and returns the Mongo document id to store as the game's
// event_log_ref, kept separate from the relational games table so a
// 40-minute match's hundreds of events never bloat a MySQL row.
func (g *Gateway) WriteEventLog(ctx context.Context, gameID string, seed int64, events []models.MatchEvent, final *models.FinalStats) (string, error) {
	doc := models.MatchEventLogDocument{GameID: gameID, Seed: seed, Events: events, Final: final}
	res, err := g.mongo.Collection("match_event_logs").InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return gameID, nil
	}
	return id.Hex(), nil
}

// ReadEventLog loads a persisted match event log by its Mongo document id,
// used to serve replay requests for completed matches (spec §4.2).
func (g *Gateway) ReadEventLog(ctx context.Context, ref string) (models.MatchEventLogDocument, error) {
	oid, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return models.MatchEventLogDocument{}, err
	}
	var doc models.MatchEventLogDocument
	err = g.mongo.Collection("match_event_logs").FindOne(ctx, map[string]interface{}{"_id": oid}).Decode(&doc)
	return doc, err
}
