package engine

import (
	"math/rand"
	"time"

	"xiangqi/internal/xiangqi"
)

// Engine 一步贪心：只看这一步能吃到多大的子，同分随机。
// rng 由外面注入，测试里可以固定种子。
type Engine struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// NewSeeded seed 为 0 时按当前时间播种
func NewSeeded(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(rand.New(rand.NewSource(seed)))
}

// 选子结果
type Result struct {
	Move       xiangqi.Move
	Score      int // 吃掉的子力价值，不吃子为 0
	Candidates int // 与最高分并列的走法数
	Legal      int // 合法走法总数
}

// ChooseMove 枚举 side 的全部合法走法，按吃子价值打分，在最高分里均匀随机选一个。
// 终局或无棋可走时返回 false。
func (e *Engine) ChooseMove(pos *xiangqi.Position, side xiangqi.Side) (Result, bool) {
	if pos.Over {
		return Result{}, false
	}
	moves := pos.LegalMoves(side)
	if len(moves) == 0 {
		return Result{}, false
	}

	best := make([]xiangqi.Move, 0, len(moves))
	maxScore := -1
	for _, mv := range moves {
		score := captureValue(pos.Board.At(mv.To))
		if score > maxScore {
			maxScore = score
			best = best[:0]
			best = append(best, mv)
		} else if score == maxScore {
			best = append(best, mv)
		}
	}

	return Result{
		Move:       best[e.rng.Intn(len(best))],
		Score:      maxScore,
		Candidates: len(best),
		Legal:      len(moves),
	}, true
}

// Play 让 side 走一步。终局或无子可动时什么也不做，返回 false。
func (e *Engine) Play(pos *xiangqi.Position, side xiangqi.Side) (Result, bool) {
	res, ok := e.ChooseMove(pos, side)
	if !ok {
		return Result{}, false
	}
	if !pos.Apply(res.Move) {
		return Result{}, false
	}
	return res, true
}
