package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// Manager 管理所有对局：人类一方走子要轮到自己，电脑一方由 engine 代走。
// 所有操作串行执行，engine 的随机源不能并发使用。
type Manager struct {
	mu      sync.Mutex
	store   Store
	archive Archive
	engine  *engine.Engine
	log     *zap.SugaredLogger
}

func NewManager(store Store, archive Archive, eng *engine.Engine, log *zap.SugaredLogger) *Manager {
	if archive == nil {
		archive = NopArchive{}
	}
	return &Manager{
		store:   store,
		archive: archive,
		engine:  eng,
		log:     log,
	}
}

// NewGame 从开局开始。人类执黑时电脑先替红方走一步。
func (m *Manager) NewGame(ctx context.Context, human xiangqi.Side) (*GameState, error) {
	return m.newGame(ctx, xiangqi.NewInitialPosition(), human)
}

// NewGameFromFEN 从给定局面开始，轮到谁走以 FEN 为准
func (m *Manager) NewGameFromFEN(ctx context.Context, fen string, human xiangqi.Side) (*GameState, error) {
	pos, err := xiangqi.DecodePosition(fen)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return m.newGame(ctx, pos, human)
}

func (m *Manager) newGame(ctx context.Context, pos *xiangqi.Position, human xiangqi.Side) (*GameState, error) {
	if human != xiangqi.Red && human != xiangqi.Black {
		return nil, fmt.Errorf("new game: invalid human side %v", human)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Pos:       pos,
		HumanSide: human,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if !pos.Over && pos.SideToMove == g.EngineSide() {
		if res, ok := m.engine.Play(pos, g.EngineSide()); ok {
			g.Plies++
			m.log.Debugw("engine opening move", "game_id", g.ID, "move", res.Move, "score", res.Score)
		}
	}

	if err := m.store.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save game %s: %w", g.ID, err)
	}
	m.log.Infow("new game", "game_id", g.ID, "human_side", human.String(), "fen", pos.Encode())
	return g, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*GameState, error) {
	return m.store.Load(ctx, id)
}

// Play 人类走一步
func (m *Manager) Play(ctx context.Context, id string, mv xiangqi.Move) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Pos.Over {
		return nil, ErrGameOver
	}
	if g.Pos.SideToMove != g.HumanSide {
		return nil, ErrNotYourTurn
	}
	// 只能走自己的子
	if mv.From.OnBoard() {
		if pc := g.Pos.Board.At(mv.From); pc != 0 && pc.Side() != g.HumanSide {
			return nil, ErrNotYourPiece
		}
	}
	if reason := g.Pos.CheckMove(mv); reason != xiangqi.ReasonOK {
		return nil, &IllegalMoveError{Reason: reason}
	}
	g.Pos.Apply(mv)
	g.Plies++

	if err := m.commit(ctx, g); err != nil {
		return nil, err
	}
	m.log.Debugw("human move", "game_id", id, "move", mv, "status", g.Status())
	return g, nil
}

// OpponentMove 电脑替非人类一方走一步
func (m *Manager) OpponentMove(ctx context.Context, id string) (*GameState, engine.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, engine.Result{}, err
	}
	if g.Pos.Over {
		return nil, engine.Result{}, ErrGameOver
	}
	side := g.EngineSide()
	if g.Pos.SideToMove != side {
		return nil, engine.Result{}, ErrNotYourTurn
	}
	res, ok := m.engine.Play(g.Pos, side)
	if !ok {
		return g, engine.Result{}, ErrNoMoves
	}
	g.Plies++

	if err := m.commit(ctx, g); err != nil {
		return nil, engine.Result{}, err
	}
	m.log.Debugw("engine move", "game_id", id, "move", res.Move, "score", res.Score, "candidates", res.Candidates)
	return g, res, nil
}

// LegalTargets 给界面高亮用
func (m *Manager) LegalTargets(ctx context.Context, id string, from xiangqi.Coord) ([]xiangqi.Coord, error) {
	g, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.Pos.LegalTargets(from), nil
}

func (m *Manager) commit(ctx context.Context, g *GameState) error {
	g.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, g); err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	if g.Pos.Over {
		m.log.Infow("game over", "game_id", g.ID, "status", g.Status(), "plies", g.Plies)
		if err := m.archive.Record(ctx, g); err != nil {
			// 归档失败不影响对局本身
			m.log.Errorw("archive game", "game_id", g.ID, "error", err)
		}
	}
	return nil
}
