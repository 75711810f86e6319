package prompts

import (
	"regexp"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

var multiSpaceRegex = regexp.MustCompile(` {2,}`)

// BlockPromptBuilder は、ライブラリのベースブロックとショットごとの上書きを統合してプロンプトを構築します。
type BlockPromptBuilder struct {
	library domain.Library
}

// NewBlockPromptBuilder は新しい BlockPromptBuilder を生成します。
// library は参照するだけで、変更することはありません。
func NewBlockPromptBuilder(library domain.Library) *BlockPromptBuilder {
	return &BlockPromptBuilder{library: library}
}

// Build は PromptBlock を1本のプロンプト文字列に組み立てます。
func (pb *BlockPromptBuilder) Build(block domain.PromptBlock) string {
	return BuildBlockPrompt(pb.library, block)
}

// BuildBlockPrompt は Base と Override をマージして最終的なプロンプトを生成します。
// 入力を変更せず、失敗することもない純粋関数です。解決できない参照や空のフィールドは単に省略されます。
func BuildBlockPrompt(library domain.Library, block domain.PromptBlock) string {
	r := blockResolver{
		override:  block.Override,
		character: library.CharacterBlocks(block.BaseCharacterID),
		location:  library.LocationBlocks(block.BaseLocationID),
	}

	parts := make([]string, 0, len(descriptiveChunks))
	for _, c := range descriptiveChunks {
		if text := r.render(c); text != "" {
			parts = append(parts, text)
		}
	}
	prompt := strings.Join(parts, chunkSeparator)

	if params := r.render(parameterChunk); params != "" {
		if prompt == "" {
			prompt = params
		} else {
			prompt = prompt + chunkSeparator + params
		}
	}

	return normalizePrompt(prompt)
}

// blockResolver はフィールド単位で Override → ベースの順に値を解決します。
type blockResolver struct {
	override  domain.SemanticBlocks
	character domain.SemanticBlocks
	location  domain.SemanticBlocks
}

func (r blockResolver) value(cf chunkField) string {
	if v := r.override.Get(cf.field); v != "" {
		return v
	}
	if cf.from == fromLocation {
		return r.location.Get(cf.field)
	}
	return r.character.Get(cf.field)
}

func (r blockResolver) render(c chunk) string {
	values := make([]string, 0, len(c.fields))
	for _, cf := range c.fields {
		if v := r.value(cf); v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, c.separator)
}

// normalizePrompt は不要な空白と重複した区切りを取り除きます。置換の順序にも意味があるのだ。
func normalizePrompt(s string) string {
	s = strings.ReplaceAll(s, " ,", ",")
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, ". .", ".")
	return strings.TrimSpace(s)
}
