package prompts

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

func sampleLibrary() domain.Library {
	return domain.Library{
		Characters: domain.BlockSetMap{
			"c1": {Name: "C1", Blocks: domain.SemanticBlocks{
				domain.FieldStyleMain: "anime",
				domain.FieldCharDesc:  "a girl",
			}},
		},
		Locations: domain.BlockSetMap{
			"l1": {Name: "L1", Blocks: domain.SemanticBlocks{
				domain.FieldLocMain: "a forest",
			}},
		},
		Props: domain.BlockSetMap{},
	}
}

func TestBuildBlockPrompt_FullExample(t *testing.T) {
	block := domain.PromptBlock{
		BaseCharacterID: "c1",
		BaseLocationID:  "l1",
		Override:        domain.SemanticBlocks{domain.FieldCharDesc: "a brave girl"},
	}

	got := BuildBlockPrompt(sampleLibrary(), block)
	want := "anime. a brave girl. a forest"
	if got != want {
		t.Errorf("期待値 %q, 実際の値 %q", want, got)
	}
}

func TestBuildBlockPrompt(t *testing.T) {
	tests := []struct {
		name    string
		library domain.Library
		block   domain.PromptBlock
		want    string
	}{
		{
			name:    "何もなければ空文字",
			library: domain.Library{},
			block:   domain.PromptBlock{},
			want:    "",
		},
		{
			name:    "パラメータだけなら先頭にピリオドを付けない",
			library: domain.Library{},
			block: domain.PromptBlock{Override: domain.SemanticBlocks{
				domain.FieldQualityTags: "8k",
				domain.FieldModelParams: "--ar 16:9",
			}},
			want: "8k --ar 16:9",
		},
		{
			name: "説明チャンクの後ろにパラメータをピリオド区切りで付ける",
			library: domain.Library{Characters: domain.BlockSetMap{"c": {Blocks: domain.SemanticBlocks{
				domain.FieldStyleMain:   "cinematic",
				domain.FieldQualityTags: "masterpiece",
				domain.FieldModelParams: "--v 7",
			}}}},
			block: domain.PromptBlock{BaseCharacterID: "c"},
			want:  "cinematic. masterpiece --v 7",
		},
		{
			name: "カメラは構図を場所から、視線をキャラクターから引く",
			library: domain.Library{
				Characters: domain.BlockSetMap{"c": {Blocks: domain.SemanticBlocks{
					domain.FieldCameraShot: "char side shot",
					domain.FieldCameraGaze: "looking at viewer",
				}}},
				Locations: domain.BlockSetMap{"l": {Blocks: domain.SemanticBlocks{
					domain.FieldCameraShot: "wide shot",
					domain.FieldCameraGaze: "loc side gaze",
				}}},
			},
			block: domain.PromptBlock{BaseCharacterID: "c", BaseLocationID: "l"},
			want:  "wide shot, looking at viewer",
		},
		{
			name: "被写体チャンクはカタログ順ではなく出力順で並ぶ",
			library: domain.Library{Characters: domain.BlockSetMap{"c": {Blocks: domain.SemanticBlocks{
				domain.FieldCharLightingSide: "rim light",
				domain.FieldCharOutfit:       "red coat",
				domain.FieldCharBody:         "slim",
				domain.FieldActionPose:       "running",
				domain.FieldCharDesc:         "a knight",
			}}}},
			block: domain.PromptBlock{BaseCharacterID: "c"},
			want:  "a knight, running, slim, red coat, rim light",
		},
		{
			name: "背景チャンクの並び",
			library: domain.Library{Locations: domain.BlockSetMap{"l": {Blocks: domain.SemanticBlocks{
				domain.FieldLocBG:        "mountains",
				domain.FieldLocLightMood: "golden hour",
				domain.FieldAtmosphere:   "calm",
				domain.FieldLocWeather:   "light rain",
				domain.FieldLocMain:      "a village square",
				domain.FieldLocFG:        "puddles",
			}}}},
			block: domain.PromptBlock{BaseLocationID: "l"},
			want:  "a village square, light rain, calm, golden hour, puddles, mountains",
		},
		{
			name:    "Override はベースがなくても使われる",
			library: domain.Library{},
			block: domain.PromptBlock{
				BaseCharacterID: "missing",
				BaseLocationID:  "missing",
				Override:        domain.SemanticBlocks{domain.FieldLocMain: "a cave"},
			},
			want: "a cave",
		},
		{
			name: "空文字の Override はベースを消さない",
			library: domain.Library{Characters: domain.BlockSetMap{"c": {Blocks: domain.SemanticBlocks{
				domain.FieldCharDesc: "a girl",
			}}}},
			block: domain.PromptBlock{
				BaseCharacterID: "c",
				Override:        domain.SemanticBlocks{domain.FieldCharDesc: ""},
			},
			want: "a girl",
		},
		{
			name:    "余分な空白とカンマ前の空白を詰める",
			library: domain.Library{},
			block: domain.PromptBlock{Override: domain.SemanticBlocks{
				domain.FieldStyleMain: "anime  style ",
				domain.FieldGenre:     "fantasy",
			}},
			want: "anime style, fantasy",
		},
		{
			name: "キャラクター側に置かれた場所フィールドは無視される",
			library: domain.Library{Characters: domain.BlockSetMap{"c": {Blocks: domain.SemanticBlocks{
				domain.FieldLocMain:  "should not appear",
				domain.FieldCharDesc: "a cat",
			}}}},
			block: domain.PromptBlock{BaseCharacterID: "c"},
			want:  "a cat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildBlockPrompt(tt.library, tt.block)
			if got != tt.want {
				t.Errorf("期待値 %q, 実際の値 %q", tt.want, got)
			}
		})
	}
}

func TestBuildBlockPrompt_OverridePrecedence(t *testing.T) {
	lib := domain.Library{Characters: domain.BlockSetMap{"c": {Blocks: domain.SemanticBlocks{
		domain.FieldCharOutfit: "red coat",
		domain.FieldCharHair:   "black hair",
	}}}}
	block := domain.PromptBlock{
		BaseCharacterID: "c",
		Override:        domain.SemanticBlocks{domain.FieldCharOutfit: "blue coat"},
	}

	got := BuildBlockPrompt(lib, block)
	if !strings.Contains(got, "blue coat") {
		t.Errorf("Override の値が含まれていないのだ: %q", got)
	}
	if strings.Contains(got, "red coat") {
		t.Errorf("ベースの値が残っているのだ: %q", got)
	}
	if !strings.Contains(got, "black hair") {
		t.Errorf("上書きしていないフィールドが消えているのだ: %q", got)
	}
}

func TestBuildBlockPrompt_MissingReferencesEqualEmptyBase(t *testing.T) {
	override := domain.SemanticBlocks{
		domain.FieldCharDesc:    "a robot",
		domain.FieldLocMain:     "a lab",
		domain.FieldQualityTags: "4k",
	}
	withMissing := BuildBlockPrompt(sampleLibrary(), domain.PromptBlock{
		BaseCharacterID: "nobody",
		BaseLocationID:  "nowhere",
		Override:        override,
	})
	withEmpty := BuildBlockPrompt(domain.Library{}, domain.PromptBlock{Override: override})

	if withMissing != withEmpty {
		t.Errorf("存在しない参照は空のベースと同じ結果になるべきなのだ: %q != %q", withMissing, withEmpty)
	}
}

func TestBuildBlockPrompt_ChunkOrdering(t *testing.T) {
	got := BuildBlockPrompt(domain.Library{}, domain.PromptBlock{Override: domain.SemanticBlocks{
		domain.FieldLocMain:   "C",
		domain.FieldCharDesc:  "B",
		domain.FieldStyleMain: "A",
	}})

	a, b, c := strings.Index(got, "A"), strings.Index(got, "B"), strings.Index(got, "C")
	if a < 0 || b < 0 || c < 0 || !(a < b && b < c) {
		t.Errorf("Style → Subject → Background の順になっていないのだ: %q", got)
	}
}

func TestBuildBlockPrompt_NoSeparatorArtifacts(t *testing.T) {
	// 間のフィールドを飛ばし飛ばしに埋めて、区切りの残骸が出ないことを確認するのだ
	lib := domain.Library{
		Characters: domain.BlockSetMap{"c": {Blocks: domain.SemanticBlocks{
			domain.FieldStyleMain:   "anime",
			domain.FieldGenre:       "",
			domain.FieldCharDesc:    "a girl",
			domain.FieldCharSkin:    "",
			domain.FieldCharOutfit:  "dress",
			domain.FieldModelParams: "--ar 2:3",
		}}},
		Locations: domain.BlockSetMap{"l": {Blocks: domain.SemanticBlocks{
			domain.FieldLocMain: "",
			domain.FieldLocBG:   "sea",
		}}},
	}
	got := BuildBlockPrompt(lib, domain.PromptBlock{BaseCharacterID: "c", BaseLocationID: "l"})

	for _, artifact := range []string{", ,", ". .", ",,", "..", " ,", "  "} {
		if strings.Contains(got, artifact) {
			t.Errorf("区切りの残骸 %q が含まれているのだ: %q", artifact, got)
		}
	}
	if want := "anime. a girl, dress. sea. --ar 2:3"; got != want {
		t.Errorf("期待値 %q, 実際の値 %q", want, got)
	}
}

func TestBuildBlockPrompt_DoesNotMutateInputs(t *testing.T) {
	lib := sampleLibrary()
	before := lib.Clone()
	block := domain.PromptBlock{
		BaseCharacterID: "c1",
		BaseLocationID:  "l1",
		Override:        domain.SemanticBlocks{domain.FieldCharDesc: "a brave girl"},
	}
	overrideBefore := block.Override.Clone()

	_ = BuildBlockPrompt(lib, block)

	if diff := cmp.Diff(before, lib); diff != "" {
		t.Errorf("ライブラリが変更されているのだ (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(overrideBefore, block.Override); diff != "" {
		t.Errorf("Override が変更されているのだ (-before +after):\n%s", diff)
	}
}

func TestBuildBlockPrompt_DeterministicAndConcurrent(t *testing.T) {
	lib := sampleLibrary()
	block := domain.PromptBlock{BaseCharacterID: "c1", BaseLocationID: "l1"}
	want := BuildBlockPrompt(lib, block)

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = BuildBlockPrompt(lib, block)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Errorf("呼び出し %d の結果が異なるのだ: %q != %q", i, got, want)
		}
	}
}

func TestBlockPromptBuilder_Build(t *testing.T) {
	pb := NewBlockPromptBuilder(sampleLibrary())
	got := pb.Build(domain.PromptBlock{BaseCharacterID: "c1"})
	if want := "anime. a girl"; got != want {
		t.Errorf("期待値 %q, 実際の値 %q", want, got)
	}
}

func TestPromptFields_AreKnown(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range PromptFields() {
		if !domain.IsKnownField(f) {
			t.Errorf("カタログにないフィールドがプロンプトで使われているのだ: %s", f)
		}
		if seen[f] {
			t.Errorf("フィールドが重複しているのだ: %s", f)
		}
		seen[f] = true
	}
	if len(seen) != 31 {
		t.Errorf("プロンプトに使われるフィールド数が想定外なのだ: %d", len(seen))
	}
}
