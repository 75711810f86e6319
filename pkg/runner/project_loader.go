package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/editor"
	"github.com/shouni/go-storyboard-kit/pkg/parser"
)

// ProjectLoader はファイルまたは保存済みのセッションからプロジェクトを取り出します。
type ProjectLoader struct {
	parser  parser.Parser
	session *editor.Session
}

// NewProjectLoader は ProjectLoader を生成します。
func NewProjectLoader(p parser.Parser, session *editor.Session) *ProjectLoader {
	return &ProjectLoader{parser: p, session: session}
}

// Load は path が指定されていればそれを読み込んで現在のプロジェクトとして保存し、
// 空なら保存済みのプロジェクトを返すのだ。
func (l *ProjectLoader) Load(ctx context.Context, path string) (*domain.ProjectData, error) {
	if path == "" {
		project, err := l.session.LoadProject(ctx)
		if err != nil {
			return nil, fmt.Errorf("プロジェクトファイルを指定してください: %w", err)
		}
		return project, nil
	}

	project, err := l.parser.ParseFromPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := l.session.SaveProject(ctx, project); err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "現在のプロジェクトを保存しました", "scenes", len(project.Scenes))
	return project, nil
}
