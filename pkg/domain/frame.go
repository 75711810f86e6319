package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// FrameType はシーン内のフレーム位置（開始・中間・終了）です。
type FrameType string

const (
	FrameStart  FrameType = "start"
	FrameMiddle FrameType = "middle"
	FrameEnd    FrameType = "end"
)

// FrameTypes はフレーム位置を表示順で返します。
func FrameTypes() []FrameType {
	return []FrameType{FrameStart, FrameMiddle, FrameEnd}
}

// ParseFrameType は文字列を FrameType に変換します。
func ParseFrameType(s string) (FrameType, error) {
	switch FrameType(s) {
	case FrameStart, FrameMiddle, FrameEnd:
		return FrameType(s), nil
	default:
		return "", fmt.Errorf("不明なフレーム種別です: '%s' (start, middle, end のいずれかを指定してほしいのだ)", s)
	}
}

// Motion はカメラの動きの指示です。
type Motion struct {
	Ko    string `json:"ko"`
	En    string `json:"en"`
	Speed string `json:"speed,omitempty"`
}

// ShotFrame はブロック方式（promptBlock を持つ）のフレームです。
type ShotFrame struct {
	ShotType    string      `json:"shotType"`
	Duration    float64     `json:"duration,omitempty"`
	Description string      `json:"description,omitempty"`
	PromptBlock PromptBlock `json:"promptBlock"`
	Motion      *Motion     `json:"motion,omitempty"`

	// 以下はエクスポート時にキャッシュ内容を書き戻すためのフィールドです。
	Prompt   string `json:"prompt,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// LegacyFrame は promptStructure / prompt を直接持つ旧形式のフレームです。
type LegacyFrame struct {
	ShotType        string         `json:"shotType,omitempty"`
	Duration        float64        `json:"duration,omitempty"`
	Description     string         `json:"description,omitempty"`
	PromptStructure map[string]any `json:"promptStructure,omitempty"`
	Prompt          string         `json:"prompt,omitempty"`
	Parameters      string         `json:"parameters,omitempty"`
	ImageURL        string         `json:"imageUrl,omitempty"`
	VideoURL        string         `json:"videoUrl,omitempty"`
	Motion          *Motion        `json:"motion,omitempty"`
}

// FrameKind は Frame の判別子です。
type FrameKind int

const (
	FrameKindNone FrameKind = iota
	FrameKindLegacy
	FrameKindBlock
)

func (k FrameKind) String() string {
	switch k {
	case FrameKindLegacy:
		return "legacy"
	case FrameKindBlock:
		return "block"
	default:
		return "none"
	}
}

// Frame は旧形式とブロック方式のどちらか一方を保持するタグ付きの値です。
// JSON に promptBlock が存在すればブロック方式として扱います。
type Frame struct {
	block  *ShotFrame
	legacy *LegacyFrame
}

// NewBlockFrame はブロック方式のフレームを生成します。
func NewBlockFrame(f ShotFrame) Frame {
	return Frame{block: &f}
}

// NewLegacyFrame は旧形式のフレームを生成します。
func NewLegacyFrame(f LegacyFrame) Frame {
	return Frame{legacy: &f}
}

// Kind はフレームの判別子を返します。
func (f Frame) Kind() FrameKind {
	switch {
	case f.block != nil:
		return FrameKindBlock
	case f.legacy != nil:
		return FrameKindLegacy
	default:
		return FrameKindNone
	}
}

// Block はブロック方式のフレームを返します。
func (f Frame) Block() (*ShotFrame, bool) {
	return f.block, f.block != nil
}

// Legacy は旧形式のフレームを返します。
func (f Frame) Legacy() (*LegacyFrame, bool) {
	return f.legacy, f.legacy != nil
}

// IsZero はフレームが存在しないかを判定します。
func (f Frame) IsZero() bool {
	return f.Kind() == FrameKindNone
}

// Clone はフレームのディープコピーを返すのだ。
func (f Frame) Clone() Frame {
	switch {
	case f.block != nil:
		c := *f.block
		c.PromptBlock.Override = f.block.PromptBlock.Override.Clone()
		if f.block.Motion != nil {
			m := *f.block.Motion
			c.Motion = &m
		}
		return Frame{block: &c}
	case f.legacy != nil:
		c := *f.legacy
		if f.legacy.PromptStructure != nil {
			c.PromptStructure = make(map[string]any, len(f.legacy.PromptStructure))
			for k, v := range f.legacy.PromptStructure {
				c.PromptStructure[k] = v
			}
		}
		if f.legacy.Motion != nil {
			m := *f.legacy.Motion
			c.Motion = &m
		}
		return Frame{legacy: &c}
	default:
		return Frame{}
	}
}

// Equal は形式と中身が同じかを判定します。go-cmp もこのメソッドで比較するのだ。
func (f Frame) Equal(o Frame) bool {
	if f.Kind() != o.Kind() {
		return false
	}
	switch {
	case f.block != nil:
		return reflect.DeepEqual(f.block, o.block)
	case f.legacy != nil:
		return reflect.DeepEqual(f.legacy, o.legacy)
	}
	return true
}

// ShotType はショット種別を返します。
func (f Frame) ShotType() string {
	switch {
	case f.block != nil:
		return f.block.ShotType
	case f.legacy != nil:
		return f.legacy.ShotType
	}
	return ""
}

// Duration はフレームの秒数を返します。
func (f Frame) Duration() float64 {
	switch {
	case f.block != nil:
		return f.block.Duration
	case f.legacy != nil:
		return f.legacy.Duration
	}
	return 0
}

// Description はフレームの説明文を返します。
func (f Frame) Description() string {
	switch {
	case f.block != nil:
		return f.block.Description
	case f.legacy != nil:
		return f.legacy.Description
	}
	return ""
}

// ImageURL はフレーム自身が持つ画像 URL を返します。
func (f Frame) ImageURL() string {
	switch {
	case f.block != nil:
		return f.block.ImageURL
	case f.legacy != nil:
		return f.legacy.ImageURL
	}
	return ""
}

// VideoURL はフレーム自身が持つ動画 URL を返します。
func (f Frame) VideoURL() string {
	switch {
	case f.block != nil:
		return f.block.VideoURL
	case f.legacy != nil:
		return f.legacy.VideoURL
	}
	return ""
}

// Prompt はフレーム自身が持つプロンプト文字列を返します。
func (f Frame) Prompt() string {
	switch {
	case f.block != nil:
		return f.block.Prompt
	case f.legacy != nil:
		return f.legacy.Prompt
	}
	return ""
}

// SetMedia は画像・動画 URL とプロンプトを書き込みます。空文字の引数は既存値を保持します。
func (f Frame) SetMedia(imageURL, videoURL, prompt string) {
	switch {
	case f.block != nil:
		setIfPresent(&f.block.ImageURL, imageURL)
		setIfPresent(&f.block.VideoURL, videoURL)
		setIfPresent(&f.block.Prompt, prompt)
	case f.legacy != nil:
		setIfPresent(&f.legacy.ImageURL, imageURL)
		setIfPresent(&f.legacy.VideoURL, videoURL)
		setIfPresent(&f.legacy.Prompt, prompt)
	}
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// UnmarshalJSON は promptBlock の有無で形式を判別してデコードします。
func (f *Frame) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Frame{}
		return nil
	}

	var probe struct {
		PromptBlock json.RawMessage `json:"promptBlock"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("フレームのデコードに失敗しました: %w", err)
	}

	raw := bytes.TrimSpace(probe.PromptBlock)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var sf ShotFrame
		if err := json.Unmarshal(data, &sf); err != nil {
			return fmt.Errorf("ブロック方式フレームのデコードに失敗しました: %w", err)
		}
		*f = Frame{block: &sf}
		return nil
	}

	var lf LegacyFrame
	if err := json.Unmarshal(data, &lf); err != nil {
		return fmt.Errorf("旧形式フレームのデコードに失敗しました: %w", err)
	}
	*f = Frame{legacy: &lf}
	return nil
}

// MarshalJSON は保持している形式のまま書き出します。
func (f Frame) MarshalJSON() ([]byte, error) {
	switch {
	case f.block != nil:
		return json.Marshal(f.block)
	case f.legacy != nil:
		return json.Marshal(f.legacy)
	default:
		return []byte("null"), nil
	}
}

// FrameSet は開始・中間・終了の3フレームです。
type FrameSet struct {
	Start  Frame `json:"start"`
	Middle Frame `json:"middle"`
	End    Frame `json:"end"`
}

// Get は位置 t のフレームを返します。
func (s FrameSet) Get(t FrameType) Frame {
	switch t {
	case FrameStart:
		return s.Start
	case FrameMiddle:
		return s.Middle
	case FrameEnd:
		return s.End
	default:
		return Frame{}
	}
}

// Set は位置 t のフレームを置き換えます。
func (s *FrameSet) Set(t FrameType, f Frame) {
	switch t {
	case FrameStart:
		s.Start = f
	case FrameMiddle:
		s.Middle = f
	case FrameEnd:
		s.End = f
	}
}

// Clone は3フレームすべてをディープコピーします。
func (s FrameSet) Clone() FrameSet {
	return FrameSet{Start: s.Start.Clone(), Middle: s.Middle.Clone(), End: s.End.Clone()}
}
