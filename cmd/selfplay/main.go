package main

import (
	"flag"
	"fmt"
	"log"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// 两个贪心电脑对下，打印每一步和最后的棋盘。
// -games N 时改为贪心对随机的 N 局对局统计。
func main() {
	seed := flag.Int64("seed", 0, "random seed, 0 = time based")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game")
	fen := flag.String("fen", "", "start position, default is the opening")
	games := flag.Int("games", 0, "play N greedy vs random games instead")
	flag.Parse()

	if *games > 0 {
		runMatch(*games, *seed, *maxMoves)
		return
	}

	pos := xiangqi.NewInitialPosition()
	if *fen != "" {
		var err error
		if pos, err = xiangqi.DecodePosition(*fen); err != nil {
			log.Fatalf("bad fen: %v", err)
		}
	}

	e := engine.NewSeeded(*seed)
	for i := 0; i < *maxMoves && !pos.Over; i++ {
		side := pos.SideToMove
		res, ok := e.Play(pos, side)
		if !ok {
			log.Printf("%v has no legal moves", side)
			break
		}
		fmt.Printf("%3d %-5v (%d,%d) -> (%d,%d) score=%d candidates=%d/%d\n",
			i+1, side, res.Move.From.Row, res.Move.From.Col, res.Move.To.Row, res.Move.To.Col,
			res.Score, res.Candidates, res.Legal)
	}

	fmt.Print(pos.String())
	fmt.Println("FEN:", pos.Encode())
	fmt.Println("Material:", engine.Material(pos))
	if pos.Over {
		fmt.Println("Winner:", pos.Winner)
	}
}
