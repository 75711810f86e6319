package publisher

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/go-storyboard-kit/pkg/director"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
)

// SheetData はプロンプトシートのテンプレートに渡すデータです。
type SheetData struct {
	Title         string
	Style         string
	AspectRatio   string
	TotalDuration string
	Runtime       float64 // シーンの尺の合計（秒）
	Scenes        []SheetScene
}

// SheetScene はシート上の1シーンです。
type SheetScene struct {
	Number   int
	Key      string
	Title    string
	Location string
	Start    float64
	End      float64
	Frames   []SheetFrame
}

// SheetFrame はシート上の1フレームです。
type SheetFrame struct {
	Type     domain.FrameType
	ShotType string
	Source   pipeline.Source
	Prompt   string
	ImageURL string
	VideoURL string
	Motion   string
	Start    float64
	End      float64
}

// SheetBuilder はテンプレートからプロンプトシートの Markdown を組み立てます。
type SheetBuilder struct {
	tmpl *template.Template
}

// NewSheetBuilder はテンプレート文字列を解析して SheetBuilder を生成します。
func NewSheetBuilder(templateStr string) (*SheetBuilder, error) {
	tmpl, err := template.New("sheet").Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("プロンプトシートのテンプレート解析に失敗しました: %w", err)
	}
	return &SheetBuilder{tmpl: tmpl}, nil
}

// Build は SheetData を Markdown に変換します。
func (b *SheetBuilder) Build(data SheetData) (string, error) {
	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトシートの生成に失敗しました: %w", err)
	}
	return sb.String(), nil
}

// newSheetData はマージ済みのプロジェクトとプロンプトからシートのデータを作ります。
func newSheetData(project *domain.ProjectData, shots map[shotKey]pipeline.ShotPrompt, tl director.Timeline) SheetData {
	data := SheetData{
		Title:         project.DisplayTitle(defaultSheetTitle),
		Style:         project.Project.Style,
		AspectRatio:   string(project.Project.AspectRatio),
		TotalDuration: string(project.Project.TotalDuration),
		Runtime:       tl.Total,
	}

	for i, sc := range project.Scenes {
		fs, ok := sc.FrameSet()
		if !ok {
			continue
		}
		scene := SheetScene{Number: sc.Number(i), Key: sc.Key(i), Title: sc.Title}
		if sc.Setting != nil {
			scene.Location = sc.Setting.Location
		}
		span, _ := tl.Scene(scene.Key)
		scene.Start, scene.End = span.Start, span.End
		frameSpans := make(map[domain.FrameType]director.FrameSpan, len(span.Frames))
		for _, fsp := range span.Frames {
			frameSpans[fsp.Type] = fsp
		}

		for _, t := range domain.FrameTypes() {
			f := fs.Get(t)
			if f.IsZero() {
				continue
			}
			frame := SheetFrame{
				Type:     t,
				ShotType: f.ShotType(),
				Prompt:   f.Prompt(),
				ImageURL: f.ImageURL(),
				VideoURL: f.VideoURL(),
				Motion:   motionText(f),
				Start:    frameSpans[t].Start,
				End:      frameSpans[t].End,
			}
			if sp, ok := shots[shotKey{scene: scene.Key, frame: t}]; ok {
				frame.Source, frame.Prompt = sp.Source, sp.Prompt
			}
			scene.Frames = append(scene.Frames, frame)
		}
		data.Scenes = append(data.Scenes, scene)
	}
	return data
}

func motionText(f domain.Frame) string {
	var m *domain.Motion
	if sf, ok := f.Block(); ok {
		m = sf.Motion
	} else if lf, ok := f.Legacy(); ok {
		m = lf.Motion
	}
	if m == nil {
		return ""
	}
	text := m.En
	if text == "" {
		text = m.Ko
	}
	if m.Speed != "" && text != "" {
		text += " (" + m.Speed + ")"
	}
	return text
}
