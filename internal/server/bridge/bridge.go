package main

/*
#include <stdbool.h>
#include <stdint.h>
*/
import "C"
import (
	"unsafe"

	"xiangqi/internal/xiangqi"
)

// 棋盘在 C 侧是 90 个 int8，行优先，>0 红 <0 黑，abs 为 PieceType。
// side: 0 红，1 黑。

func cBoard(ptr *C.int8_t) []int8 {
	return unsafe.Slice((*int8)(unsafe.Pointer(ptr)), xiangqi.NumSquares)
}

//export XiangqiIsLegal
func XiangqiIsLegal(boardPtr *C.int8_t, side C.int8_t, fromSq, toSq C.short) C.bool {
	pos, ok := positionFromCells(cBoard(boardPtr), int8(side))
	if !ok {
		return C.bool(false)
	}
	return C.bool(isLegalSq(pos, int(fromSq), int(toSq)))
}

// XiangqiLegalMask 把 fromSq 的全部合法落点写进 maskOut（90 格），返回个数。
// fromSq < 0 时标记所有能走的起点。
//
//export XiangqiLegalMask
func XiangqiLegalMask(boardPtr *C.int8_t, side C.int8_t, fromSq C.short, maskOut *C.int8_t) C.int {
	mask := unsafe.Slice((*int8)(unsafe.Pointer(maskOut)), xiangqi.NumSquares)
	pos, ok := positionFromCells(cBoard(boardPtr), int8(side))
	if !ok {
		clear(mask)
		return 0
	}
	return C.int(fillMask(pos, int(fromSq), mask))
}

// XiangqiWinner: 0 红胜，1 黑胜，2 对局继续，3 当前方无子可动
//
//export XiangqiWinner
func XiangqiWinner(boardPtr *C.int8_t, side C.int8_t) C.int8_t {
	pos, ok := positionFromCells(cBoard(boardPtr), int8(side))
	if !ok {
		return C.int8_t(resultOngoing)
	}
	return C.int8_t(winner(pos))
}
