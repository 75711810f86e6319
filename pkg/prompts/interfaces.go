package prompts

import "github.com/shouni/go-storyboard-kit/pkg/domain"

// ImagePrompt は、ショット単位の画像・動画生成プロンプトを構築する契約です。
type ImagePrompt interface {
	// Build は、PromptBlock から外部の生成ツールに渡すプロンプト文字列を組み立てます。
	Build(block domain.PromptBlock) string
}

var _ ImagePrompt = (*BlockPromptBuilder)(nil)
