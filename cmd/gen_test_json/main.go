package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"xiangqi/internal/xiangqi"
)

// TestCase 一个局面和它的全部合法着法，供其他实现（网页端等）对拍
type TestCase struct {
	FEN    string         `json:"fen"`
	ToMove string         `json:"to_move"`
	Board  []int8         `json:"board"` // 90 格，行优先，>0 红 <0 黑
	Moves  []xiangqi.Move `json:"moves"`
	Mask   []int8         `json:"mask"` // 90x90，from*90+to 为 1 表示合法
}

func encodeBoard(pos *xiangqi.Position) []int8 {
	board := make([]int8, xiangqi.NumSquares)
	for sq, pc := range pos.Board.Squares {
		board[sq] = int8(pc)
	}
	return board
}

func encodeMask(moves []xiangqi.Move) []int8 {
	mask := make([]int8, xiangqi.NumSquares*xiangqi.NumSquares)
	for _, m := range moves {
		from := m.From.Row*xiangqi.Cols + m.From.Col
		to := m.To.Row*xiangqi.Cols + m.To.Col
		mask[from*xiangqi.NumSquares+to] = 1
	}
	return mask
}

func main() {
	out := flag.String("out", "test_data.json", "output file")
	format := flag.String("format", "json", "json | parquet")
	numGames := flag.Int("games", 10, "random games to sample")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game")
	seed := flag.Int64("seed", 0, "random seed, 0 = time based")
	flag.Parse()

	if *format != "json" && *format != "parquet" {
		fmt.Fprintln(os.Stderr, "unknown format:", *format)
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	var testCases []TestCase
	var records []PositionRecord
	for g := 0; g < *numGames; g++ {
		pos := xiangqi.NewInitialPosition()
		for ply := 0; ply < *maxMoves && !pos.Over; ply++ {
			legalMoves := pos.LegalMoves(pos.SideToMove)
			if len(legalMoves) == 0 {
				break
			}

			if *format == "parquet" {
				records = append(records, PositionRecord{
					Game:      int32(g),
					Ply:       int32(ply),
					FEN:       pos.Encode(),
					ToMove:    pos.SideToMove.String(),
					MoveCount: int32(len(legalMoves)),
					Moves:     encodeMoves(legalMoves),
				})
			} else {
				testCases = append(testCases, TestCase{
					FEN:    pos.Encode(),
					ToMove: pos.SideToMove.String(),
					Board:  encodeBoard(pos),
					Moves:  legalMoves,
					Mask:   encodeMask(legalMoves),
				})
			}

			pos.Apply(legalMoves[rng.Intn(len(legalMoves))])
		}
	}

	if *format == "parquet" {
		if err := writeParquet(*out, records, 4); err != nil {
			fmt.Fprintln(os.Stderr, "write parquet:", err)
			os.Exit(1)
		}
		fmt.Printf("Generated %d records (seed %d) to %s\n", len(records), *seed, *out)
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create:", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(testCases); err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d test cases (seed %d) to %s\n", len(testCases), *seed, *out)
}
