package main

import (
	"flag"
	"fmt"
	"os"

	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", "", "position to inspect, default is the opening")
	flag.Parse()

	pos := xiangqi.NewInitialPosition()
	if *fen != "" {
		var err error
		if pos, err = xiangqi.DecodePosition(*fen); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fmt.Print(pos.String())
	fmt.Println("FEN:", pos.Encode())
	fmt.Printf("Hash: %016x\n", pos.EnsureHash())
	fmt.Println("Red legal moves:", len(pos.LegalMoves(xiangqi.Red)))
	fmt.Println("Black legal moves:", len(pos.LegalMoves(xiangqi.Black)))
}
