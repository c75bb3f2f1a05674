package game

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type archivedGame struct {
	GameID     string    `bson:"game_id"`
	FEN        string    `bson:"fen"`
	Winner     string    `bson:"winner"`
	HumanSide  string    `bson:"human_side"`
	Plies      int       `bson:"plies"`
	StartedAt  time.Time `bson:"started_at"`
	FinishedAt time.Time `bson:"finished_at"`
}

// MongoArchive 每盘结束的棋写一条文档到 games 集合
type MongoArchive struct {
	collection *mongo.Collection
}

func NewMongoArchive(db *mongo.Database) *MongoArchive {
	return &MongoArchive{collection: db.Collection("games")}
}

func (a *MongoArchive) Record(ctx context.Context, g *GameState) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := a.collection.InsertOne(ctx, archivedGame{
		GameID:     g.ID,
		FEN:        g.Pos.Encode(),
		Winner:     g.Pos.Winner.String(),
		HumanSide:  g.HumanSide.String(),
		Plies:      g.Plies,
		StartedAt:  g.CreatedAt,
		FinishedAt: g.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert archived game %s: %w", g.ID, err)
	}
	return nil
}
