package game

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

type recordingArchive struct {
	ids []string
}

func (a *recordingArchive) Record(_ context.Context, g *GameState) error {
	a.ids = append(a.ids, g.ID)
	return nil
}

func newTestManager() (*Manager, *recordingArchive) {
	archive := &recordingArchive{}
	return NewManager(NewMemoryStore(0), archive, engine.NewSeeded(1), zap.NewNop().Sugar()), archive
}

func move(fr, fc, tr, tc int) xiangqi.Move {
	return xiangqi.Move{From: xiangqi.Coord{Row: fr, Col: fc}, To: xiangqi.Coord{Row: tr, Col: tc}}
}

func TestNewGameHumanRed(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	g, err := m.NewGame(ctx, xiangqi.Red)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if g.ID == "" || g.Plies != 0 || g.Pos.SideToMove != xiangqi.Red {
		t.Fatalf("unexpected new game: id=%q plies=%d side=%v", g.ID, g.Plies, g.Pos.SideToMove)
	}
	if g.Status() != StatusOngoing {
		t.Fatalf("status: %s", g.Status())
	}

	loaded, err := m.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Pos.Encode() != g.Pos.Encode() || loaded.HumanSide != xiangqi.Red {
		t.Fatalf("loaded game differs")
	}
}

func TestNewGameHumanBlackEngineOpens(t *testing.T) {
	m, _ := newTestManager()
	g, err := m.NewGame(context.Background(), xiangqi.Black)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if g.Plies != 1 || g.Pos.SideToMove != xiangqi.Black {
		t.Fatalf("engine should have opened for red: plies=%d side=%v", g.Plies, g.Pos.SideToMove)
	}
	if _, err := m.NewGame(context.Background(), xiangqi.NoSide); err == nil {
		t.Fatalf("want error for NoSide")
	}
}

func TestPlayAndOpponentAlternate(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	g, _ := m.NewGame(ctx, xiangqi.Red)

	g, err := m.Play(ctx, g.ID, move(7, 7, 7, 4))
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if g.Pos.SideToMove != xiangqi.Black || g.Plies != 1 {
		t.Fatalf("after human move: side=%v plies=%d", g.Pos.SideToMove, g.Plies)
	}

	if _, err := m.Play(ctx, g.ID, move(9, 0, 8, 0)); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("second human move: want ErrNotYourTurn, got %v", err)
	}

	g, res, err := m.OpponentMove(ctx, g.ID)
	if err != nil {
		t.Fatalf("opponent: %v", err)
	}
	if g.Pos.SideToMove != xiangqi.Red || g.Plies != 2 {
		t.Fatalf("after engine move: side=%v plies=%d", g.Pos.SideToMove, g.Plies)
	}
	if pc := g.Pos.Board.At(res.Move.To); pc.Side() != xiangqi.Black {
		t.Fatalf("engine should have moved a black piece, got %v at %v", pc, res.Move.To)
	}

	if _, _, err := m.OpponentMove(ctx, g.ID); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("engine twice: want ErrNotYourTurn, got %v", err)
	}
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	g, _ := m.NewGame(ctx, xiangqi.Red)
	before := g.Pos.Encode()

	_, err := m.Play(ctx, g.ID, move(9, 0, 5, 0))
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("want ErrIllegalMove, got %v", err)
	}
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Reason != xiangqi.ReasonGeometry {
		t.Fatalf("want geometry reason, got %v", err)
	}

	if _, err := m.Play(ctx, g.ID, move(0, 0, 2, 0)); !errors.Is(err, ErrNotYourPiece) {
		t.Fatalf("moving engine piece: want ErrNotYourPiece, got %v", err)
	}

	loaded, _ := m.Get(ctx, g.ID)
	if loaded.Pos.Encode() != before || loaded.Plies != 0 {
		t.Fatalf("rejected move changed the game")
	}
}

func TestUnknownGame(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	if _, err := m.Get(ctx, "nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("get: %v", err)
	}
	if _, err := m.Play(ctx, "nope", move(9, 0, 8, 0)); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("play: %v", err)
	}
	if _, _, err := m.OpponentMove(ctx, "nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("opponent: %v", err)
	}
}

func TestGeneralCaptureEndsAndArchives(t *testing.T) {
	m, archive := newTestManager()
	ctx := context.Background()

	g, err := m.NewGameFromFEN(ctx, "3k5/9/9/9/9/9/9/9/9/3RK4 w", xiangqi.Red)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	g, err = m.Play(ctx, g.ID, move(9, 3, 0, 3))
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !g.Pos.Over || g.Status() != StatusRedWins {
		t.Fatalf("want red win, got over=%v status=%s", g.Pos.Over, g.Status())
	}
	if len(archive.ids) != 1 || archive.ids[0] != g.ID {
		t.Fatalf("archive should record the finished game once, got %v", archive.ids)
	}

	if _, err := m.Play(ctx, g.ID, move(0, 3, 1, 3)); !errors.Is(err, ErrGameOver) {
		t.Fatalf("play after over: %v", err)
	}
	if _, _, err := m.OpponentMove(ctx, g.ID); !errors.Is(err, ErrGameOver) {
		t.Fatalf("opponent after over: %v", err)
	}
}

func TestNoMovesStatus(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	g, err := m.NewGameFromFEN(ctx, "9/9/9/9/9/9/9/9/9/ppppppppp b", xiangqi.Red)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if g.Plies != 0 || g.Status() != StatusNoMoves || g.Pos.Over {
		t.Fatalf("want stuck engine side, got plies=%d status=%s over=%v", g.Plies, g.Status(), g.Pos.Over)
	}
	if _, _, err := m.OpponentMove(ctx, g.ID); !errors.Is(err, ErrNoMoves) {
		t.Fatalf("want ErrNoMoves, got %v", err)
	}
	if _, err := m.NewGameFromFEN(ctx, "bad", xiangqi.Red); !errors.Is(err, xiangqi.ErrInvalidFEN) {
		t.Fatalf("want ErrInvalidFEN, got %v", err)
	}
}

func TestLegalTargets(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	g, _ := m.NewGame(ctx, xiangqi.Red)

	targets, err := m.LegalTargets(ctx, g.ID, xiangqi.Coord{Row: 9, Col: 1})
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("horse should have 2 targets, got %v", targets)
	}
}
