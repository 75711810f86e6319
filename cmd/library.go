package cmd

import (
	"fmt"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/editor"

	"github.com/spf13/cobra"
)

// libraryCmd は、プロジェクトのライブラリ（キャラクター・場所・小物）を編集するのだ。
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "ライブラリのエントリを一覧・追加・編集しますなのだ。",
}

var libraryListCmd = &cobra.Command{
	Use:   "list [character|location|prop]",
	Short: "ライブラリのエントリを一覧するのだ。",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := loadProject(cmd)
		if err != nil {
			return err
		}
		kinds := []domain.EntryKind{domain.EntryKindCharacter, domain.EntryKindLocation, domain.EntryKindProp}
		if len(args) == 1 {
			kind, err := domain.ParseEntryKind(args[0])
			if err != nil {
				return err
			}
			kinds = []domain.EntryKind{kind}
		}

		out := cmd.OutOrStdout()
		lib := project.Library()
		for _, kind := range kinds {
			entries := lib.Entries(kind)
			for _, id := range entries.SortedIDs() {
				set := entries[id]
				fmt.Fprintf(out, "%s\t%s\t%s\t(%d fields)\n", kind, id, set.Name, len(set.Blocks))
			}
		}
		return nil
	},
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <character|location|prop> <name>",
	Short: "新しい ID でエントリを追加するのだ。",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseEntryKind(args[0])
		if err != nil {
			return err
		}
		return editLibrary(cmd, func(lib *domain.Library) error {
			id, err := editor.AddEntry(lib, kind, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		})
	},
}

var librarySetCmd = &cobra.Command{
	Use:   "set <character|location|prop> <id> <field> [value]",
	Short: "エントリのフィールドを書き換えるのだ。value を省略するとフィールドを消すよ。",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseEntryKind(args[0])
		if err != nil {
			return err
		}
		value := ""
		if len(args) == 4 {
			value = args[3]
		}
		return editLibrary(cmd, func(lib *domain.Library) error {
			return editor.UpdateEntryField(lib, kind, args[1], args[2], value)
		})
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <character|location|prop> <id>",
	Short: "エントリを削除するのだ。",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseEntryKind(args[0])
		if err != nil {
			return err
		}
		return editLibrary(cmd, func(lib *domain.Library) error {
			return editor.RemoveEntry(lib, kind, args[1])
		})
	},
}

var libraryLocationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "シーンの舞台設定から抽出した場所のコンセプトを一覧するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := loadProject(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, loc := range editor.ConceptLocations(project) {
			fmt.Fprintf(out, "%s\tscene %d\t%s\n", loc.ID, loc.Scene, loc.FullText())
		}
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryListCmd, libraryAddCmd, librarySetCmd, libraryRemoveCmd, libraryLocationsCmd)
}

// loadProject は --file、なければ保存済みのプロジェクトを読み込むのだ。
func loadProject(cmd *cobra.Command) (*domain.ProjectData, error) {
	return appCtx.Workflow.Loader().Load(cmd.Context(), opts.ProjectFile)
}

// editLibrary はライブラリを書き換えて、現在のプロジェクトとして保存し直すのだ。
func editLibrary(cmd *cobra.Command, edit func(lib *domain.Library) error) error {
	project, err := loadProject(cmd)
	if err != nil {
		return err
	}
	if err := edit(&project.Definitions.Library); err != nil {
		return err
	}
	return appCtx.Workflow.Session().SaveProject(cmd.Context(), project)
}
