package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"xiangqi/internal/xiangqi"
)

const redisKeyPrefix = "xiangqi:game:"

// 存进 redis 的快照：局面用 FEN，终局和胜者在解码时由将帅是否还在推出来
type redisSnapshot struct {
	ID        string    `json:"id"`
	FEN       string    `json:"fen"`
	HumanSide string    `json:"human_side"`
	Plies     int       `json:"plies"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, g *GameState) error {
	data, err := json.Marshal(snapshotOf(g))
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	return s.client.Set(ctx, redisKeyPrefix+g.ID, data, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) (*GameState, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	var snap redisSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal game %s: %w", id, err)
	}
	return stateFromSnapshot(snap)
}

func snapshotOf(g *GameState) redisSnapshot {
	return redisSnapshot{
		ID:        g.ID,
		FEN:       g.Pos.Encode(),
		HumanSide: g.HumanSide.String(),
		Plies:     g.Plies,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func stateFromSnapshot(snap redisSnapshot) (*GameState, error) {
	pos, err := xiangqi.DecodePosition(snap.FEN)
	if err != nil {
		return nil, fmt.Errorf("decode game %s: %w", snap.ID, err)
	}
	human, ok := xiangqi.ParseSide(snap.HumanSide)
	if !ok {
		return nil, fmt.Errorf("decode game %s: bad human side %q", snap.ID, snap.HumanSide)
	}
	return &GameState{
		ID:        snap.ID,
		Pos:       pos,
		HumanSide: human,
		Plies:     snap.Plies,
		CreatedAt: snap.CreatedAt,
		UpdatedAt: snap.UpdatedAt,
	}, nil
}
