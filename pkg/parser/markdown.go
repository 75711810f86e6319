package parser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

const (
	fieldKeyStyle         = "style"
	fieldKeyAspectRatio   = "aspect_ratio"
	fieldKeyTotalDuration = "total_duration"
	fieldKeyDescription   = "description"
	fieldKeyTitle         = "title"
	fieldKeyLocation      = "location"
	fieldKeyTimeOfDay     = "time_of_day"
	fieldKeyAtmosphere    = "atmosphere"
	fieldKeyDuration      = "duration"
	fieldKeyParameters    = "parameters"
	imageKeySuffix        = "_image"
	videoKeySuffix        = "_video"
)

// MarkdownParser は Markdown 形式の絵コンテのアウトラインを解析し、ProjectData に変換する構造体です。
//
//	# タイトル
//	- style: anime
//	## Scene s1: Opening
//	- location: castle gate
//	- start: a girl standing at the gate
//	- start_image: frames/s1_start.png
//
// フレームはすべて旧形式（prompt を直接持つ形式）として生成されるのだ。
type MarkdownParser struct{}

// NewMarkdownParser は MarkdownParser を初期化するのだ。
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// sceneDraft は組み立て途中のシーンです。
type sceneDraft struct {
	scene      domain.Scene
	frames     map[domain.FrameType]*domain.LegacyFrame
	parameters string
}

// Parse は outlineURL を基に画像の参照パスを解決しつつ、Markdown テキストを domain.ProjectData に変換します。
func (p *MarkdownParser) Parse(outlineURL string, input string) (*domain.ProjectData, error) {
	baseURL := resolveBaseURL(outlineURL)

	project := &domain.ProjectData{}
	var current *sceneDraft

	addPreviousScene := func() {
		if current != nil && hasContent(current) {
			project.Scenes = append(project.Scenes, current.build())
		}
	}

	for _, line := range strings.Split(input, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" {
			continue
		}

		if m := SceneRegex.FindStringSubmatch(trimmedLine); m != nil {
			addPreviousScene()
			current = &sceneDraft{
				scene: domain.Scene{
					Scene:   len(project.Scenes) + 1,
					SceneID: strings.TrimSpace(m[1]),
					Title:   strings.TrimSpace(m[2]),
				},
				frames: make(map[domain.FrameType]*domain.LegacyFrame),
			}
			continue
		}

		if m := TitleRegex.FindStringSubmatch(trimmedLine); m != nil {
			project.Project.Title = strings.TrimSpace(m[1])
			continue
		}

		m := FieldRegex.FindStringSubmatch(trimmedLine)
		if m == nil {
			continue
		}
		key, val := strings.ToLower(m[1]), strings.TrimSpace(m[2])

		if current == nil {
			applyProjectField(&project.Project, key, val)
			continue
		}
		current.apply(key, val, baseURL)
	}

	addPreviousScene()

	if len(project.Scenes) == 0 {
		return nil, fmt.Errorf("有効なシーン情報が見つかりませんでした")
	}
	return project, nil
}

func applyProjectField(p *domain.Project, key, val string) {
	switch key {
	case fieldKeyStyle:
		p.Style = val
	case fieldKeyAspectRatio:
		p.AspectRatio = domain.FlexString(val)
	case fieldKeyTotalDuration:
		p.TotalDuration = domain.FlexString(val)
	case fieldKeyDescription:
		p.Description = val
	default:
		slog.Debug("Markdown内に未知のプロジェクトフィールドが見つかりました", "key", key)
	}
}

func (d *sceneDraft) apply(key, val, baseURL string) {
	switch key {
	case fieldKeyTitle:
		d.scene.Title = val
	case fieldKeyDescription:
		d.scene.Description = val
	case fieldKeyLocation:
		d.setting().Location = val
	case fieldKeyTimeOfDay:
		d.setting().TimeOfDay = val
	case fieldKeyAtmosphere:
		d.setting().Atmosphere = val
	case fieldKeyDuration:
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			d.scene.Duration = v
		} else {
			slog.Warn("duration を数値として解釈できませんでした", "value", val)
		}
	case fieldKeyParameters:
		d.parameters = val
	default:
		if t, ok := frameTypeFromKey(key, ""); ok {
			d.frame(t).Prompt = val
			return
		}
		if t, ok := frameTypeFromKey(key, imageKeySuffix); ok {
			d.frame(t).ImageURL = resolveFullPath(baseURL, val)
			return
		}
		if t, ok := frameTypeFromKey(key, videoKeySuffix); ok {
			d.frame(t).VideoURL = resolveFullPath(baseURL, val)
			return
		}
		slog.Debug("Markdown内に未知のフィールドキーが見つかりました", "key", key)
	}
}

func (d *sceneDraft) setting() *domain.Setting {
	if d.scene.Setting == nil {
		d.scene.Setting = &domain.Setting{}
	}
	return d.scene.Setting
}

func (d *sceneDraft) frame(t domain.FrameType) *domain.LegacyFrame {
	f, ok := d.frames[t]
	if !ok {
		f = &domain.LegacyFrame{}
		d.frames[t] = f
	}
	return f
}

// build はシーンを確定させます。parameters はフレームが1つでもある場合に全フレームへ配るのだ。
func (d *sceneDraft) build() domain.Scene {
	s := d.scene
	if len(d.frames) == 0 {
		return s
	}
	var fs domain.FrameSet
	for _, t := range domain.FrameTypes() {
		f, ok := d.frames[t]
		if !ok {
			continue
		}
		f.Parameters = d.parameters
		fs.Set(t, domain.NewLegacyFrame(*f))
	}
	s.Frames = &fs
	return s
}

func frameTypeFromKey(key, suffix string) (domain.FrameType, bool) {
	name, ok := strings.CutSuffix(key, suffix)
	if !ok {
		return "", false
	}
	t, err := domain.ParseFrameType(name)
	if err != nil {
		return "", false
	}
	return t, true
}

// hasContent はシーンに有効な情報が含まれているか判定します。
func hasContent(d *sceneDraft) bool {
	return d.scene.SceneID != "" || d.scene.Title != "" || d.scene.Description != "" ||
		d.scene.Setting != nil || len(d.frames) > 0
}
