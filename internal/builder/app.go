package builder

import (
	"fmt"
	"io"

	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/pkg/workflow"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各コマンドに渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config   *config.Config    // Configは、環境変数から読み込まれたグローバルな設定です。
	Options  config.Options    // Optionsは、コマンドラインから渡された実行時の設定です。
	Workflow *workflow.Manager // Workflowは、セッションと各 Runner を束ねるマネージャーです。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
// stdin はプロジェクトのパスに "-" が指定されたときの入力元です。
func NewAppContext(cfg *config.Config, stdin io.Reader) (*AppContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config は必須です")
	}
	m, err := workflow.New(workflow.ManagerArgs{
		Config: cfg.KitConfig(),
		Stdin:  stdin,
	})
	if err != nil {
		return nil, fmt.Errorf("ワークフローの初期化に失敗しました: %w", err)
	}
	return &AppContext{
		Config:   cfg,
		Options:  cfg.Options,
		Workflow: m,
	}, nil
}

// Close はアプリケーションが開いたストアを閉じます。
func (a *AppContext) Close() error {
	return a.Workflow.Close()
}
