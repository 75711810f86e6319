package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// exportCmd は、キャッシュをマージしたプロジェクト JSON とプロンプトシートを書き出すのだ。
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "編集結果をプロジェクト JSON とプロンプトシートに書き出しますなのだ。",
	Long: `キャッシュされた画像・動画 URL とプロンプトを各フレームに書き戻し、
<タイトル>_<日時>.json と prompts.md を出力ディレクトリに保存するのだ。`,
	RunE: exportCommand,
}

func init() {
	exportCmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "出力ディレクトリなのだ（省略時は STORYBOARD_OUTPUT_DIR）。")
	exportCmd.Flags().StringVar(&opts.SheetMode, "sheet-mode", "", "プロンプトシートの形式（full, compact）なのだ。")
}

func exportCommand(cmd *cobra.Command, args []string) error {
	runner, err := appCtx.Workflow.BuildPublishRunner()
	if err != nil {
		return err
	}
	res, err := runner.Run(cmd.Context(), opts.ProjectFile, opts.OutputDir)
	if err != nil {
		return fmt.Errorf("エクスポート中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての書き出しが完了したのだ！", "frames", res.MergedFrames)
	fmt.Fprintln(cmd.OutOrStdout(), res.ProjectPath)
	fmt.Fprintln(cmd.OutOrStdout(), res.SheetPath)
	return nil
}
