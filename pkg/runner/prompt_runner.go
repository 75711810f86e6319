package runner

import (
	"context"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
)

// StoryboardPromptRunner はプロジェクトの全フレーム、または1シーン分のプロンプトを組み立てるのだ。
type StoryboardPromptRunner struct {
	loader   *ProjectLoader
	pipeline *pipeline.PromptPipeline
}

func NewStoryboardPromptRunner(loader *ProjectLoader, pl *pipeline.PromptPipeline) *StoryboardPromptRunner {
	return &StoryboardPromptRunner{loader: loader, pipeline: pl}
}

// Run は path のプロジェクト（空なら保存済みのもの）のプロンプトを返します。sceneKey を指定するとそのシーンだけなのだ。
func (pr *StoryboardPromptRunner) Run(ctx context.Context, path, sceneKey string) ([]pipeline.ShotPrompt, error) {
	project, err := pr.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "PromptRunner: プロンプトを組み立てます", "scenes", len(project.Scenes), "scene", sceneKey)
	if sceneKey != "" {
		return pr.pipeline.ExecuteScene(ctx, project, sceneKey)
	}
	return pr.pipeline.Execute(ctx, project)
}
