package main

import (
	"fmt"
	"math/rand"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// player 每步返回要走的棋，ok=false 表示无子可动
type player struct {
	Name string
	Move func(pos *xiangqi.Position) (xiangqi.Move, bool)
}

func greedyPlayer(seed int64) player {
	e := engine.NewSeeded(seed)
	return player{
		Name: "Greedy",
		Move: func(pos *xiangqi.Position) (xiangqi.Move, bool) {
			res, ok := e.ChooseMove(pos, pos.SideToMove)
			return res.Move, ok
		},
	}
}

func randomPlayer(seed int64) player {
	rng := rand.New(rand.NewSource(seed))
	return player{
		Name: "Random",
		Move: func(pos *xiangqi.Position) (xiangqi.Move, bool) {
			moves := pos.LegalMoves(pos.SideToMove)
			if len(moves) == 0 {
				return xiangqi.Move{}, false
			}
			return moves[rng.Intn(len(moves))], true
		},
	}
}

// runMatch 贪心对随机，轮流执红
func runMatch(games int, seed int64, maxMoves int) {
	greedy := greedyPlayer(seed)
	random := randomPlayer(seed + 1)

	greedyWins, randomWins, draws := 0, 0, 0
	for g := 0; g < games; g++ {
		red, black := greedy, random
		if g%2 == 1 {
			red, black = random, greedy
		}

		fmt.Printf("\n=== Game %d: Red [%s] vs Black [%s] ===\n", g+1, red.Name, black.Name)
		winner, plies := playGame(red, black, maxMoves)

		switch {
		case winner == xiangqi.NoSide:
			draws++
			fmt.Printf("Result: Draw after %d plies\n", plies)
		case (winner == xiangqi.Red) == (red.Name == greedy.Name):
			greedyWins++
			fmt.Printf("Result: %s wins in %d plies\n", greedy.Name, plies)
		default:
			randomWins++
			fmt.Printf("Result: %s wins in %d plies\n", random.Name, plies)
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", greedy.Name, greedyWins)
	fmt.Printf("%s: %d\n", random.Name, randomWins)
	fmt.Printf("Draws: %d\n", draws)
}

// playGame 返回胜方（NoSide 为和）与总步数
func playGame(red, black player, maxMoves int) (xiangqi.Side, int) {
	pos := xiangqi.NewInitialPosition()

	for i := 0; i < maxMoves; i++ {
		current := red
		if pos.SideToMove == xiangqi.Black {
			current = black
		}

		mv, ok := current.Move(pos)
		if !ok {
			// 无子可动，当前方输
			return pos.SideToMove.Opposite(), i
		}
		if !pos.Apply(mv) {
			fmt.Printf("Error: invalid move %v -> %v\n", mv.From, mv.To)
			return xiangqi.NoSide, i
		}
		if pos.Over {
			return pos.Winner, i + 1
		}
	}
	return xiangqi.NoSide, maxMoves
}
