package main

import (
	"fmt"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"xiangqi/internal/xiangqi"
)

// PositionRecord 训练/对拍数据的一行，着法压成 "r,c-r,c;..." 字符串
type PositionRecord struct {
	Game      int32  `parquet:"name=game, type=INT32"`
	Ply       int32  `parquet:"name=ply, type=INT32"`
	FEN       string `parquet:"name=fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	ToMove    string `parquet:"name=to_move, type=BYTE_ARRAY, convertedtype=UTF8"`
	MoveCount int32  `parquet:"name=move_count, type=INT32"`
	Moves     string `parquet:"name=moves, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func encodeMoves(moves []xiangqi.Move) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteByte(';')
		}
		fmt.Fprintf(&sb, "%d,%d-%d,%d", m.From.Row, m.From.Col, m.To.Row, m.To.Col)
	}
	return sb.String()
}

func writeParquet(path string, records []PositionRecord, parallel int64) error {
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(PositionRecord), parallel)
	if err != nil {
		fileWriter.Close()
		return err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, record := range records {
		if err := parquetWriter.Write(record); err != nil {
			fileWriter.Close()
			return err
		}
	}
	if err := parquetWriter.WriteStop(); err != nil {
		fileWriter.Close()
		return err
	}
	return fileWriter.Close()
}
