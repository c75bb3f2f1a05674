package game

import (
	"context"
	"sync"
	"time"
)

type Store interface {
	Save(ctx context.Context, g *GameState) error
	Load(ctx context.Context, id string) (*GameState, error)
}

type memoryEntry struct {
	game      *GameState
	expiresAt time.Time // 零值表示不过期
}

// MemoryStore 进程内存里的对局表，本地单机用足够了。
// ttl > 0 时和 RedisStore 一样，最后一次保存后 ttl 内没有再保存的对局会被丢弃。
type MemoryStore struct {
	mu    sync.Mutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, g *GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	entry := memoryEntry{game: g.clone()}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}
	s.games[g.ID] = entry
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	if entry.expired(s.now()) {
		delete(s.games, id)
		return nil, ErrGameNotFound
	}
	return entry.game.clone(), nil
}

// Len 当前保留的对局数（含尚未清理的过期对局）
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// sweep 在保存时顺带清掉过期对局
func (s *MemoryStore) sweep(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, entry := range s.games {
		if entry.expired(now) {
			delete(s.games, id)
		}
	}
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Archive 记录已经结束的对局
type Archive interface {
	Record(ctx context.Context, g *GameState) error
}

type NopArchive struct{}

func (NopArchive) Record(context.Context, *GameState) error { return nil }
