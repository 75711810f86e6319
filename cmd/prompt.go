package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// promptCmd は、各フレームのプロンプトを組み立てて標準出力に書き出すのだ。
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "各フレームの画像生成プロンプトを表示しますなのだ。",
	Long: `プロジェクトの全シーン、または --scene で指定した1シーンのプロンプトを、
シーン順・start → middle → end の順で表示するのだ。編集済みのプロンプトがあればそちらを使うよ。`,
	RunE: promptCommand,
}

func init() {
	promptCmd.Flags().StringVarP(&opts.Scene, "scene", "s", "", "対象のシーンキー（sceneId / id / scene_<番号>）なのだ。")
}

func promptCommand(cmd *cobra.Command, args []string) error {
	runner, err := appCtx.Workflow.BuildPromptRunner()
	if err != nil {
		return err
	}
	shots, err := runner.Run(cmd.Context(), opts.ProjectFile, opts.Scene)
	if err != nil {
		return fmt.Errorf("プロンプトの組み立てに失敗したのだ: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, sp := range shots {
		fmt.Fprintf(out, "[%s/%s] (%s)\n%s\n\n", sp.SceneKey, sp.FrameType, sp.Source, sp.Prompt)
	}
	return nil
}
