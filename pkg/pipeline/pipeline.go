package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"golang.org/x/sync/errgroup"
)

// Source はプロンプトの出どころです。
type Source string

const (
	SourceBlock  Source = "block"
	SourceLegacy Source = "legacy"
	SourceCache  Source = "cache"
)

// ShotPrompt は1フレーム分のプロンプトです。
type ShotPrompt struct {
	SceneIndex int
	SceneKey   string
	FrameType  domain.FrameType
	ShotType   string
	Source     Source
	Prompt     string
}

// PromptPipeline は、プロジェクトの全シーン・全フレームのプロンプトを並列で組み立てる。
type PromptPipeline struct {
	workers  int
	cache    PromptCache
	assemble BlockAssembler
}

// NewPromptPipeline は新しい PromptPipeline を作成するのだ。
// workers が 0 以下なら並列数を制限しない。cache は nil でもよい。
func NewPromptPipeline(workers int, cache PromptCache) *PromptPipeline {
	return &PromptPipeline{
		workers:  workers,
		cache:    cache,
		assemble: prompts.BuildBlockPrompt,
	}
}

type job struct {
	sceneIndex int
	sceneKey   string
	frameType  domain.FrameType
	frame      domain.Frame
}

// Execute は全シーンのプロンプトを組み立て、シーン順、start → middle → end の順で返す。
func (pl *PromptPipeline) Execute(ctx context.Context, project *domain.ProjectData) ([]ShotPrompt, error) {
	return pl.run(ctx, project, "")
}

// ExecuteScene は sceneKey に一致するシーンだけを対象にする。
func (pl *PromptPipeline) ExecuteScene(ctx context.Context, project *domain.ProjectData, sceneKey string) ([]ShotPrompt, error) {
	if sceneKey == "" {
		return nil, fmt.Errorf("prompt_pipeline: シーンキーが空なのだ")
	}
	return pl.run(ctx, project, sceneKey)
}

func (pl *PromptPipeline) run(ctx context.Context, project *domain.ProjectData, only string) ([]ShotPrompt, error) {
	if project == nil {
		return nil, fmt.Errorf("prompt_pipeline: project data is nil なのだ")
	}

	jobs := collectJobs(project, only)
	if only != "" && len(jobs) == 0 {
		return nil, fmt.Errorf("prompt_pipeline: シーン '%s' にフレームが見つからないのだ", only)
	}

	lib := project.Library()
	results := make([]ShotPrompt, len(jobs))

	eg, egCtx := errgroup.WithContext(ctx)
	if pl.workers > 0 {
		eg.SetLimit(pl.workers)
	}

	for i, j := range jobs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			sp, err := pl.render(egCtx, lib, j)
			if err != nil {
				return fmt.Errorf("scene %s (%s) failed: %w", j.sceneKey, j.frameType, err)
			}
			results[i] = sp
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("プロンプトの組み立てが完了しました", "shots", len(results))
	return results, nil
}

func collectJobs(project *domain.ProjectData, only string) []job {
	var jobs []job
	for i, sc := range project.Scenes {
		key := sc.Key(i)
		if only != "" && key != only {
			continue
		}
		fs, ok := sc.FrameSet()
		if !ok {
			continue
		}
		for _, t := range domain.FrameTypes() {
			f := fs.Get(t)
			if f.IsZero() {
				continue
			}
			jobs = append(jobs, job{sceneIndex: i, sceneKey: key, frameType: t, frame: f})
		}
	}
	return jobs
}

func (pl *PromptPipeline) render(ctx context.Context, lib domain.Library, j job) (ShotPrompt, error) {
	sp := ShotPrompt{
		SceneIndex: j.sceneIndex,
		SceneKey:   j.sceneKey,
		FrameType:  j.frameType,
		ShotType:   j.frame.ShotType(),
	}

	if pl.cache != nil {
		cached, ok, err := pl.cache.CachedPrompt(ctx, j.sceneKey, j.frameType)
		if err != nil {
			return sp, err
		}
		if ok {
			sp.Source, sp.Prompt = SourceCache, cached
			return sp, nil
		}
	}

	if block, ok := j.frame.Block(); ok {
		sp.Source = SourceBlock
		sp.Prompt = pl.safeAssemble(lib, *block, j)
		return sp, nil
	}

	legacy, _ := j.frame.Legacy()
	sp.Source = SourceLegacy
	sp.Prompt = prompts.BuildLegacyPrompt(*legacy)
	return sp, nil
}

// safeAssemble は組み立て中の panic を捕まえ、フレーム自身の prompt（なければ空文字）に切り替える。
func (pl *PromptPipeline) safeAssemble(lib domain.Library, block domain.ShotFrame, j job) (out string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("プロンプトの組み立てに失敗したため保存済みのプロンプトを使います",
				"scene", j.sceneKey,
				"frame", j.frameType,
				"panic", r,
			)
			out = block.Prompt
		}
	}()
	return pl.assemble(lib, block.PromptBlock)
}
