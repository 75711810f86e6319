package workflow

import (
	"context"

	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
	"github.com/shouni/go-storyboard-kit/pkg/publisher"
)

// Workflow は、ストーリーボード編集の各工程を担当する Runner を構築するためのインターフェースを定義します。
type Workflow interface {
	BuildPromptRunner() (PromptRunner, error)
	BuildPublishRunner() (PublishRunner, error)
}

// PromptRunner は、プロジェクトの各フレームのプロンプトを組み立てる責務を持ちます。
type PromptRunner interface {
	Run(ctx context.Context, path, sceneKey string) ([]pipeline.ShotPrompt, error)
}

// PublishRunner は、キャッシュを書き戻したプロジェクトとプロンプトシートを出力する責務を持ちます。
type PublishRunner interface {
	Run(ctx context.Context, path, outputDir string) (publisher.PublishResult, error)
}
