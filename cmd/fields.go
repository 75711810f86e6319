package cmd

import (
	"fmt"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"

	"github.com/spf13/cobra"
)

// fieldsCmd は、フィールドカタログを表示ラベル付きで一覧するのだ。
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "ライブラリで使えるフィールドと表示ラベルを一覧しますなのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, g := range domain.FieldGroups() {
			fmt.Fprintf(out, "## %s\n", g.Name)
			for _, f := range g.Fields {
				fmt.Fprintf(out, "%-20s %s\n", f, prompts.FormatSemanticKey(f))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}
