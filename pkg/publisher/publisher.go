package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-storyboard-kit/internal/prompt"
	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/director"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
)

const defaultSheetTitle = "Storyboard"

// MediaSource はキャッシュ済みの画像・動画 URL とプロンプトを引くためのインターフェースです。
// editor.Session がこれを満たします。
type MediaSource interface {
	FrameImageURL(ctx context.Context, sceneKey string, t domain.FrameType, f domain.Frame) (string, error)
	FrameVideoURL(ctx context.Context, sceneKey string, t domain.FrameType, f domain.Frame) (string, error)
	CachedPrompt(ctx context.Context, sceneKey string, t domain.FrameType) (string, bool, error)
}

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	// Now はファイル名に使う時刻です。ゼロ値なら現在時刻を使います。
	Now time.Time
	// SheetMode はプロンプトシートの形式 (full / compact) です。空なら full なのだ。
	SheetMode string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	ProjectPath  string // 書き出したプロジェクト JSON のパス
	SheetPath    string // 書き出したプロンプトシートのパス
	MergedFrames int    // キャッシュの値を書き戻したフレーム数
}

type shotKey struct {
	scene string
	frame domain.FrameType
}

// StoryboardPublisher は編集結果の書き出しを担います。
type StoryboardPublisher struct {
	writer   OutputWriter
	media    MediaSource
	timeline *director.TimelineManager
}

// NewStoryboardPublisher は StoryboardPublisher を生成します。media は nil でもよく、その場合はキャッシュを書き戻しません。
func NewStoryboardPublisher(writer OutputWriter, media MediaSource) *StoryboardPublisher {
	if writer == nil {
		writer = LocalWriter{}
	}
	return &StoryboardPublisher{
		writer:   writer,
		media:    media,
		timeline: director.NewTimelineManager(),
	}
}

// Publish はキャッシュのマージ、プロジェクト JSON とプロンプトシートの書き出しを一括して実行するのだ！
// 引数の project は書き換えません。
func (p *StoryboardPublisher) Publish(ctx context.Context, project *domain.ProjectData, shots []pipeline.ShotPrompt, opts Options) (PublishResult, error) {
	result := PublishResult{}
	if project == nil {
		return result, fmt.Errorf("publisher: project data is nil なのだ")
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	mode := opts.SheetMode
	if mode == "" {
		mode = prompt.ModeFull
	}
	sheetTmpl, err := prompt.GetSheetByMode(mode)
	if err != nil {
		return result, err
	}
	sheet, err := NewSheetBuilder(sheetTmpl)
	if err != nil {
		return result, err
	}

	// 1. 出力パスの解決
	projectPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.ExportFileName(project.Project.Title, now))
	if err != nil {
		return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	sheetPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultSheetName)
	if err != nil {
		return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	// 2. キャッシュの書き戻し
	byKey := make(map[shotKey]pipeline.ShotPrompt, len(shots))
	for _, sp := range shots {
		byKey[shotKey{scene: sp.SceneKey, frame: sp.FrameType}] = sp
	}
	merged, count, err := p.merge(ctx, project, byKey)
	if err != nil {
		return result, err
	}
	result.MergedFrames = count

	// 3. プロジェクト JSON の書き出し
	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return result, fmt.Errorf("プロジェクトのシリアライズに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, projectPath, bytes.NewReader(data), "application/json; charset=utf-8"); err != nil {
		return result, fmt.Errorf("プロジェクトファイルの書き込みに失敗しました: %w", err)
	}
	result.ProjectPath = projectPath

	// 4. プロンプトシートの書き出し
	tl := p.timeline.Build(merged)
	if tl.Mismatch() {
		slog.Warn("シーンの尺の合計が totalDuration と一致しません",
			"declared", tl.Declared,
			"runtime", tl.Total,
		)
	}
	content, err := sheet.Build(newSheetData(merged, byKey, tl))
	if err != nil {
		return result, err
	}
	if err := p.writer.Write(ctx, sheetPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("プロンプトシートの書き込みに失敗しました: %w", err)
	}
	result.SheetPath = sheetPath

	slog.Info("エクスポートが完了しました",
		"project", result.ProjectPath,
		"sheet", result.SheetPath,
		"merged_frames", result.MergedFrames,
	)
	return result, nil
}

// merge はプロジェクトのコピーを作り、キャッシュの画像・動画 URL とプロンプトを各フレームに書き戻す。
// キャッシュにもフレームにもプロンプトがなければ、組み立て済みのプロンプトを入れるのだ。
func (p *StoryboardPublisher) merge(ctx context.Context, project *domain.ProjectData, shots map[shotKey]pipeline.ShotPrompt) (*domain.ProjectData, int, error) {
	clone := project.Clone()
	count := 0

	for i, sc := range clone.Scenes {
		fs, ok := sc.FrameSet()
		if !ok {
			continue
		}
		key := sc.Key(i)

		for _, t := range domain.FrameTypes() {
			f := fs.Get(t)
			if f.IsZero() {
				continue
			}

			var image, video, text string
			if p.media != nil {
				var err error
				if image, err = p.media.FrameImageURL(ctx, key, t, f); err != nil {
					return nil, 0, err
				}
				if video, err = p.media.FrameVideoURL(ctx, key, t, f); err != nil {
					return nil, 0, err
				}
				cached, ok, err := p.media.CachedPrompt(ctx, key, t)
				if err != nil {
					return nil, 0, err
				}
				if ok {
					text = cached
				}
			}
			if text == "" && f.Prompt() == "" {
				text = shots[shotKey{scene: key, frame: t}].Prompt
			}

			if image != f.ImageURL() || video != f.VideoURL() || (text != "" && text != f.Prompt()) {
				count++
			}
			f.SetMedia(image, video, text)
		}
	}
	return clone, count, nil
}
