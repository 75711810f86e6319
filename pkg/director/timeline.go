package director

import (
	"math"
	"strconv"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// durationTolerance は宣言された総尺と実際の合計を比べるときの許容誤差（秒）です。
const durationTolerance = 0.05

// FrameSpan はシーン内のフレームの再生区間です。
type FrameSpan struct {
	Type  domain.FrameType
	Start float64
	End   float64
}

// SceneSpan はプロジェクト全体の中でのシーンの再生区間です。
type SceneSpan struct {
	Key    string
	Start  float64
	End    float64
	Frames []FrameSpan
}

// Timeline はシーンを先頭から並べたタイムラインです。
type Timeline struct {
	Scenes []SceneSpan
	Total  float64
	// Declared は project.totalDuration を数値として解釈できたときの値です。
	Declared    float64
	HasDeclared bool
}

// Scene はシーンキーに対応する区間を返します。
func (t Timeline) Scene(key string) (SceneSpan, bool) {
	for _, s := range t.Scenes {
		if s.Key == key {
			return s, true
		}
	}
	return SceneSpan{}, false
}

// Mismatch は宣言された総尺とシーンの合計がずれているかどうかを返します。
func (t Timeline) Mismatch() bool {
	return t.HasDeclared && math.Abs(t.Declared-t.Total) > durationTolerance
}

// TimelineManager はシーンとフレームの尺から再生区間を割り出します。
type TimelineManager struct{}

func NewTimelineManager() *TimelineManager {
	return &TimelineManager{}
}

// Build はシーンを文書の順に連結したタイムラインを返します。
// シーンの duration が 0 ならフレームの duration の合計を使い、トランジションは尺に含めません。
func (m *TimelineManager) Build(p *domain.ProjectData) Timeline {
	var tl Timeline
	if p == nil {
		return tl
	}
	if v, err := strconv.ParseFloat(string(p.Project.TotalDuration), 64); err == nil {
		tl.Declared, tl.HasDeclared = v, true
	}

	cursor := 0.0
	for i, sc := range p.Scenes {
		span := SceneSpan{Key: sc.Key(i), Start: cursor}

		frameCursor := cursor
		if fs, ok := sc.FrameSet(); ok {
			for _, t := range domain.FrameTypes() {
				f := fs.Get(t)
				if f.IsZero() {
					continue
				}
				d := math.Max(f.Duration(), 0)
				span.Frames = append(span.Frames, FrameSpan{Type: t, Start: frameCursor, End: frameCursor + d})
				frameCursor += d
			}
		}

		length := math.Max(sc.Duration, 0)
		if length == 0 {
			length = frameCursor - cursor
		}
		span.End = cursor + length
		cursor = span.End
		tl.Scenes = append(tl.Scenes, span)
	}
	tl.Total = cursor
	return tl
}
