package pipeline

import (
	"context"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// PromptCache は利用者が編集して保存したプロンプトを引くためのインターフェースです。
// editor.Session がこれを満たします。
type PromptCache interface {
	CachedPrompt(ctx context.Context, sceneKey string, t domain.FrameType) (string, bool, error)
}

// BlockAssembler は PromptBlock とライブラリからプロンプトを組み立てる関数です。
type BlockAssembler func(lib domain.Library, block domain.PromptBlock) string
