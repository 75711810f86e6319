package config

import (
	"log/slog"
	"strconv"

	kitcfg "github.com/shouni/go-storyboard-kit/pkg/config"

	"github.com/shouni/go-utils/envutil"
)

// Config はアプリケーション全体の環境設定を保持する構造体なのだ。
type Config struct {
	StorePath string
	OutputDir string
	SheetMode string
	LogLevel  string
	Workers   int

	Options Options
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		StorePath: envutil.GetEnv("STORYBOARD_STORE", ""),
		OutputDir: envutil.GetEnv("STORYBOARD_OUTPUT_DIR", kitcfg.DefaultOutputDir),
		SheetMode: envutil.GetEnv("STORYBOARD_SHEET_MODE", kitcfg.DefaultSheetMode),
		LogLevel:  envutil.GetEnv("LOG_LEVEL", kitcfg.DefaultLogLevel),
		Workers:   kitcfg.DefaultWorkers,
	}

	if raw := envutil.GetEnv("STORYBOARD_WORKERS", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			slog.Warn("STORYBOARD_WORKERS が不正なためデフォルト値を使います", "value", raw)
		} else {
			cfg.Workers = n
		}
	}
	return cfg
}

// KitConfig はライブラリ側の設定に変換するのだ。CLI フラグで指定された値が優先されるよ。
func (c *Config) KitConfig() kitcfg.Config {
	out := kitcfg.Config{
		StorePath: c.StorePath,
		Workers:   c.Workers,
		OutputDir: c.OutputDir,
		SheetMode: c.SheetMode,
	}
	if c.Options.StorePath != "" {
		out.StorePath = c.Options.StorePath
	}
	if c.Options.OutputDir != "" {
		out.OutputDir = c.Options.OutputDir
	}
	if c.Options.SheetMode != "" {
		out.SheetMode = c.Options.SheetMode
	}
	if c.Options.Workers > 0 {
		out.Workers = c.Options.Workers
	}
	return out
}

// Options は CLI フラグから渡される実行時のパラメータなのだ。
type Options struct {
	// ソース入力関連
	ProjectFile string // --file: プロジェクトファイル（'-' で標準入力）
	Scene       string // --scene

	// 保存先
	StorePath string // --store
	OutputDir string // --output-dir
	SheetMode string // --sheet-mode

	// 実行制御
	Workers  int    // --workers
	LogLevel string // --log-level
}
