package runner

import (
	"context"

	"github.com/shouni/go-storyboard-kit/pkg/config"
	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
	"github.com/shouni/go-storyboard-kit/pkg/publisher"
)

// DefaultPublisherRunner は pkg/publisher を利用した標準実装なのだ。
type DefaultPublisherRunner struct {
	cfg       config.Config
	loader    *ProjectLoader
	pipeline  *pipeline.PromptPipeline
	publisher *publisher.StoryboardPublisher
}

func NewDefaultPublisherRunner(cfg config.Config, loader *ProjectLoader, pl *pipeline.PromptPipeline, pub *publisher.StoryboardPublisher) *DefaultPublisherRunner {
	return &DefaultPublisherRunner{
		cfg:       cfg,
		loader:    loader,
		pipeline:  pl,
		publisher: pub,
	}
}

// Run はプロジェクトを読み込み、キャッシュをマージしたプロジェクト JSON とプロンプトシートを書き出します。
// outputDir が空なら設定の OutputDir を使います。
func (pr *DefaultPublisherRunner) Run(ctx context.Context, path, outputDir string) (publisher.PublishResult, error) {
	project, err := pr.loader.Load(ctx, path)
	if err != nil {
		return publisher.PublishResult{}, err
	}

	shots, err := pr.pipeline.Execute(ctx, project)
	if err != nil {
		return publisher.PublishResult{}, err
	}

	if outputDir == "" {
		outputDir = pr.cfg.OutputDir
	}
	opts := publisher.Options{
		OutputDir: outputDir,
		SheetMode: pr.cfg.SheetMode,
	}
	return pr.publisher.Publish(ctx, project, shots, opts)
}
