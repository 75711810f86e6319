package config

import (
	"os"
	"testing"

	kitcfg "github.com/shouni/go-storyboard-kit/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("環境変数がなければデフォルト値なのだ", func(t *testing.T) {
		unsetEnv(t, "STORYBOARD_STORE", "STORYBOARD_OUTPUT_DIR", "STORYBOARD_WORKERS")

		cfg := LoadConfig()
		if cfg.StorePath != "" || cfg.OutputDir != kitcfg.DefaultOutputDir || cfg.Workers != kitcfg.DefaultWorkers {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("環境変数を読むのだ", func(t *testing.T) {
		t.Setenv("STORYBOARD_STORE", "/tmp/board.db")
		t.Setenv("STORYBOARD_OUTPUT_DIR", "dist")
		t.Setenv("STORYBOARD_WORKERS", "8")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := LoadConfig()
		if cfg.StorePath != "/tmp/board.db" || cfg.OutputDir != "dist" || cfg.Workers != 8 || cfg.LogLevel != "debug" {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("不正な並列数は無視するのだ", func(t *testing.T) {
		t.Setenv("STORYBOARD_WORKERS", "many")
		if got := LoadConfig().Workers; got != kitcfg.DefaultWorkers {
			t.Errorf("got %d", got)
		}
	})
}

func TestConfig_KitConfig(t *testing.T) {
	cfg := &Config{StorePath: "env.db", OutputDir: "env-out", SheetMode: "full", Workers: 2}
	got := cfg.KitConfig()
	if got.StorePath != "env.db" || got.OutputDir != "env-out" || got.Workers != 2 {
		t.Errorf("環境変数の値がそのまま使われるのだ: %+v", got)
	}

	cfg.Options = Options{OutputDir: "flag-out", SheetMode: "compact", Workers: 6}
	got = cfg.KitConfig()
	if got.StorePath != "env.db" || got.OutputDir != "flag-out" || got.SheetMode != "compact" || got.Workers != 6 {
		t.Errorf("フラグの値が優先されるのだ: %+v", got)
	}
}

// unsetEnv は t.Setenv で後始末を登録してから環境変数を消すのだ。
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
