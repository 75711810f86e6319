package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/editor"
	"github.com/shouni/go-storyboard-kit/pkg/store"

	"github.com/spf13/cobra"
)

// clearMode は cache clear で消す範囲なのだ。
const (
	clearModeProject = "project"
	clearModeFull    = "full"
	clearModeVisual  = "visual"
)

// cacheCmd は、フレームごとの画像・動画 URL と編集済みプロンプトのキャッシュを操作するのだ。
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "フレームのキャッシュ（画像・動画 URL、プロンプト）を操作しますなのだ。",
}

var cacheSetCmd = &cobra.Command{
	Use:   "set <image|video|prompt> <scene-key> <start|middle|end> <value>",
	Short: "フレームのキャッシュを保存するのだ。空白だけの値は保存しないよ。",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := domain.ParseFrameType(args[2])
		if err != nil {
			return err
		}
		s := appCtx.Workflow.Session()
		set, err := frameSetter(s, args[0])
		if err != nil {
			return err
		}
		saved, err := set(cmd.Context(), args[1], t, args[3])
		if err != nil {
			return err
		}
		if !saved {
			fmt.Fprintln(cmd.ErrOrStderr(), "空の値なので保存しなかったのだ")
		}
		return nil
	},
}

var cacheGetCmd = &cobra.Command{
	Use:   "get <image|video|prompt> <scene-key> <start|middle|end>",
	Short: "フレームの値を表示するのだ。キャッシュがなければプロジェクトの値を使うよ。",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := domain.ParseFrameType(args[2])
		if err != nil {
			return err
		}
		s := appCtx.Workflow.Session()

		project, err := s.LoadProject(ctx)
		if err != nil && !errors.Is(err, editor.ErrNoProject) {
			return err
		}
		frame := findFrame(project, args[1], t)

		var value string
		switch args[0] {
		case "image":
			value, err = s.FrameImageURL(ctx, args[1], t, frame)
		case "video":
			value, err = s.FrameVideoURL(ctx, args[1], t, frame)
		case "prompt":
			value, err = s.FramePrompt(ctx, project.Library(), args[1], t, frame)
		default:
			return fmt.Errorf("不明なキャッシュ種別です: '%s' (image, video, prompt のいずれか)", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [project|full|visual]",
	Short: "キャッシュを削除するのだ。",
	Long: `project: フレームの画像・プロンプトのキャッシュと現在のプロジェクトを削除するのだ（既定）。
full:    project に加えて、キャラクターのコンセプト画像も削除するのだ。
visual:  キャラクターのコンセプト画像を削除し、保存済みプロジェクトのキャラクター一覧を空にするのだ。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := clearModeProject
		if len(args) == 1 {
			mode = args[0]
		}
		s := appCtx.Workflow.Session()

		var (
			n   int
			err error
		)
		switch mode {
		case clearModeProject:
			n, err = s.ClearProject(cmd.Context())
		case clearModeFull:
			n, err = s.FullReset(cmd.Context())
		case clearModeVisual:
			n, err = s.ClearVisualConcept(cmd.Context())
		default:
			return fmt.Errorf("不明なクリアモードです: '%s' (project, full, visual のいずれか)", mode)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d 件のキーを削除したのだ\n", n)
		return nil
	},
}

var cacheConceptCmd = &cobra.Command{
	Use:   "concept <character|keyprop|location> <id> [url]",
	Short: "コンセプト画像の URL を表示、または保存するのだ。",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := store.ParseConceptKind(args[0])
		if err != nil {
			return err
		}
		s := appCtx.Workflow.Session()
		if len(args) == 3 {
			_, err := s.SetConceptImage(cmd.Context(), kind, args[1], args[2])
			return err
		}
		url, ok, err := s.ConceptImage(cmd.Context(), kind, args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("コンセプト画像が見つからないのだ: %s %s", kind, args[1])
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheSetCmd, cacheGetCmd, cacheClearCmd, cacheConceptCmd)
}

type frameSetFunc func(ctx context.Context, sceneKey string, t domain.FrameType, value string) (bool, error)

func frameSetter(s *editor.Session, kind string) (frameSetFunc, error) {
	switch kind {
	case "image":
		return s.SetFrameImageURL, nil
	case "video":
		return s.SetFrameVideoURL, nil
	case "prompt":
		return s.SetFramePrompt, nil
	default:
		return nil, fmt.Errorf("不明なキャッシュ種別です: '%s' (image, video, prompt のいずれか)", kind)
	}
}

// findFrame は保存済みプロジェクトからシーンキーとフレーム種別に合うフレームを探すのだ。
func findFrame(project *domain.ProjectData, sceneKey string, t domain.FrameType) domain.Frame {
	if project == nil {
		return domain.Frame{}
	}
	for i, sc := range project.Scenes {
		if sc.Key(i) != sceneKey {
			continue
		}
		if fs, ok := sc.FrameSet(); ok {
			return fs.Get(t)
		}
	}
	return domain.Frame{}
}
