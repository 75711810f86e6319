package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFrame_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind FrameKind
	}{
		{
			name:     "promptBlock があればブロック方式",
			input:    `{"shotType":"wide","promptBlock":{"base_character_id":"c1","override":{"char_desc":"x"}}}`,
			wantKind: FrameKindBlock,
		},
		{
			name:     "空の promptBlock でもブロック方式",
			input:    `{"promptBlock":{}}`,
			wantKind: FrameKindBlock,
		},
		{
			name:     "promptBlock がなければ旧形式",
			input:    `{"shotType":"close","prompt":"a cat","parameters":"--ar 16:9"}`,
			wantKind: FrameKindLegacy,
		},
		{
			name:     "promptBlock が null なら旧形式",
			input:    `{"promptBlock":null,"prompt":"a cat"}`,
			wantKind: FrameKindLegacy,
		},
		{
			name:     "null はフレームなし",
			input:    `null`,
			wantKind: FrameKindNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Frame
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if f.Kind() != tt.wantKind {
				t.Errorf("期待値 %s, 実際の値 %s", tt.wantKind, f.Kind())
			}
		})
	}
}

func TestFrame_UnmarshalJSON_Error(t *testing.T) {
	var f Frame
	if err := json.Unmarshal([]byte(`{"promptBlock":"oops"}`), &f); err == nil {
		t.Error("promptBlock が文字列ならエラーになるべきなのだ")
	}
}

func TestFrame_RoundTrip(t *testing.T) {
	inputs := []string{
		`{"shotType":"wide","duration":2.5,"promptBlock":{"base_character_id":"c1","base_location_id":"l1","override":{"char_desc":"a girl"}},"motion":{"ko":"패닝","en":"pan","speed":"slow"}}`,
		`{"shotType":"close","promptStructure":{"subject":"cat"},"prompt":"a cat","parameters":"--v 6"}`,
	}
	for _, input := range inputs {
		var first Frame
		if err := json.Unmarshal([]byte(input), &first); err != nil {
			t.Fatalf("デコード失敗: %v", err)
		}
		encoded, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("エンコード失敗: %v", err)
		}
		var second Frame
		if err := json.Unmarshal(encoded, &second); err != nil {
			t.Fatalf("再デコード失敗: %v", err)
		}
		if first.Kind() != second.Kind() {
			t.Errorf("形式が変わってしまったのだ: %s → %s", first.Kind(), second.Kind())
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("往復で内容が変わったのだ (-first +second):\n%s", diff)
		}
	}
}

func TestFrame_Accessors(t *testing.T) {
	block := NewBlockFrame(ShotFrame{ShotType: "wide", Description: "d", ImageURL: "img", Prompt: "p"})
	if sf, ok := block.Block(); !ok || sf.ShotType != "wide" {
		t.Errorf("Block() が期待どおりでないのだ: %v %v", sf, ok)
	}
	if _, ok := block.Legacy(); ok {
		t.Error("ブロック方式なのに Legacy() が true を返したのだ")
	}
	if block.ShotType() != "wide" || block.Description() != "d" || block.ImageURL() != "img" || block.Prompt() != "p" {
		t.Error("ブロック方式のゲッターが期待どおりでないのだ")
	}

	legacy := NewLegacyFrame(LegacyFrame{ShotType: "close", VideoURL: "vid"})
	if _, ok := legacy.Block(); ok {
		t.Error("旧形式なのに Block() が true を返したのだ")
	}
	if legacy.ShotType() != "close" || legacy.VideoURL() != "vid" {
		t.Error("旧形式のゲッターが期待どおりでないのだ")
	}

	var zero Frame
	if !zero.IsZero() || zero.ShotType() != "" || zero.Prompt() != "" {
		t.Error("ゼロ値のフレームが空として振る舞っていないのだ")
	}
	out, err := json.Marshal(zero)
	if err != nil || string(out) != "null" {
		t.Errorf("ゼロ値は null になるべきなのだ: %s %v", out, err)
	}
}

func TestFrame_SetMedia(t *testing.T) {
	f := NewBlockFrame(ShotFrame{ImageURL: "old-image", VideoURL: "old-video"})
	f.SetMedia("new-image", "", "new-prompt")

	if f.ImageURL() != "new-image" {
		t.Errorf("画像 URL が更新されていないのだ: %q", f.ImageURL())
	}
	if f.VideoURL() != "old-video" {
		t.Errorf("空文字で既存の動画 URL が消えてしまったのだ: %q", f.VideoURL())
	}
	if f.Prompt() != "new-prompt" {
		t.Errorf("プロンプトが更新されていないのだ: %q", f.Prompt())
	}

	encoded, _ := json.Marshal(f)
	if !strings.Contains(string(encoded), `"imageUrl":"new-image"`) {
		t.Errorf("書き戻した値が JSON に出ていないのだ: %s", encoded)
	}
}

func TestFrame_Clone(t *testing.T) {
	orig := NewBlockFrame(ShotFrame{
		PromptBlock: PromptBlock{Override: SemanticBlocks{FieldCharDesc: "a girl"}},
		Motion:      &Motion{En: "pan"},
	})
	c := orig.Clone()

	sf, _ := c.Block()
	sf.PromptBlock.Override[FieldCharDesc] = "changed"
	sf.Motion.En = "tilt"
	c.SetMedia("img", "", "")

	o, _ := orig.Block()
	if o.PromptBlock.Override[FieldCharDesc] != "a girl" || o.Motion.En != "pan" || o.ImageURL != "" {
		t.Errorf("クローンへの変更が元に漏れているのだ: %+v", o)
	}
}

func TestParseFrameType(t *testing.T) {
	for _, ft := range FrameTypes() {
		got, err := ParseFrameType(string(ft))
		if err != nil || got != ft {
			t.Errorf("ParseFrameType(%q) = %q, %v", ft, got, err)
		}
	}
	if _, err := ParseFrameType("begin"); err == nil {
		t.Error("不明な種別はエラーになるべきなのだ")
	}
}

func TestFrameSet_GetSet(t *testing.T) {
	var fs FrameSet
	fs.Set(FrameMiddle, NewLegacyFrame(LegacyFrame{Prompt: "mid"}))

	if fs.Get(FrameMiddle).Prompt() != "mid" {
		t.Error("Set した中間フレームが取り出せないのだ")
	}
	if !fs.Get(FrameStart).IsZero() || !fs.Get(FrameType("x")).IsZero() {
		t.Error("未設定の位置はゼロ値であるべきなのだ")
	}
}
