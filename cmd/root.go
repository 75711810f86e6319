package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-storyboard-kit/internal/builder"
	"github.com/shouni/go-storyboard-kit/internal/config"
	kitcfg "github.com/shouni/go-storyboard-kit/pkg/config"

	"github.com/spf13/cobra"
)

const appName = "storyboard"

var (
	opts   config.Options
	appCtx *builder.AppContext
)

// rootCmd はすべてのサブコマンドの親なのだ。
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "ストーリーボードのプロンプトを組み立て、編集状態を管理するのだ。",
	Long: `プロジェクト文書（JSON / YAML / Markdown アウトライン）を読み込み、
ライブラリのベースブロックとショットごとの上書きから画像生成用のプロンプトを組み立てるのだ。
編集中の画像 URL やプロンプトはストアに保存され、export でまとめて書き出せるのだよ。`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunAppE,
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		promptCmd,
		fieldsCmd,
		libraryCmd,
		cacheCmd,
		exportCmd,
	)
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&opts.StorePath, "store", "", "編集状態を保存する SQLite ファイルのパスなのだ（省略時は STORYBOARD_STORE、空ならメモリ）。")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "ログレベル（debug, info, warn, error）なのだ。")
	rootCmd.PersistentFlags().IntVarP(&opts.Workers, "workers", "w", 0, "プロンプト組み立ての並列数なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ProjectFile, "file", "f", "", "プロジェクトファイルのパス（'-'で標準入力なのだ）。省略時は保存済みのプロジェクトを使うよ。")
}

// preRunAppE は、コマンド実行前にロガーと共通コンテキストを準備するのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	cfg.Options = opts

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	lvl, err := kitcfg.ParseLogLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	app, err := builder.NewAppContext(cfg, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗したのだ: %w", err)
	}
	appCtx = app
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	err := rootCmd.Execute()
	if appCtx != nil {
		if cerr := appCtx.Close(); cerr != nil {
			slog.Error("ストアのクローズに失敗しました", "error", cerr)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}
