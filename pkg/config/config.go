package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// デフォルト値の定義
const (
	DefaultWorkers   = 4
	DefaultOutputDir = "output"
	DefaultSheetMode = "full"
	DefaultLogLevel  = "info"
)

// Config は Go Storyboard Kit の各コンポーネントを動作させるための基本設定です。
type Config struct {
	// --- Storage Settings ---
	// StorePath は SQLite のファイルパスです。空ならプロセス内のメモリに保持します。
	StorePath string

	// --- Pipeline Settings ---
	Workers int // プロンプト組み立ての並列数

	// --- Export Settings ---
	OutputDir string
	SheetMode string // full / compact
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		Workers:   DefaultWorkers,
		OutputDir: DefaultOutputDir,
		SheetMode: DefaultSheetMode,
	}
}

// ParseLogLevel は debug / info / warn / error を slog.Level に変換します。
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("不明なログレベルです: '%s' (debug, info, warn, error のいずれか)", s)
	}
}
