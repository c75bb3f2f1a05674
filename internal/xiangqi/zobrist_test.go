package xiangqi

import (
	"testing"
)

func TestHashInitializedFromInitialAndFEN(t *testing.T) {
	pos := NewInitialPosition()
	if pos.Hash != pos.CalculateHash() {
		t.Fatalf("initial hash mismatch: got=%d want=%d", pos.Hash, pos.CalculateHash())
	}

	decoded, err := DecodePosition(pos.Encode())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Hash != pos.Hash {
		t.Fatalf("decoded hash mismatch: got=%d want=%d", decoded.Hash, pos.Hash)
	}
}

func TestApplyHashIncrementalMatchesFullRecompute(t *testing.T) {
	pos := NewInitialPosition()
	for ply := 0; ply < 24; ply++ {
		moves := pos.LegalMoves(pos.SideToMove)
		if len(moves) == 0 {
			return
		}
		m := moves[len(moves)/2]
		if !pos.Apply(m) {
			t.Fatalf("apply failed at ply %d: %+v", ply, m)
		}
		if got, want := pos.Hash, pos.CalculateHash(); got != want {
			t.Fatalf("hash mismatch at ply %d: got=%d want=%d move=%+v", ply, got, want, m)
		}
		if pos.Over {
			return
		}
	}
}
