package workflow

import (
	"fmt"
	"io"

	"github.com/shouni/go-storyboard-kit/pkg/config"
	"github.com/shouni/go-storyboard-kit/pkg/editor"
	"github.com/shouni/go-storyboard-kit/pkg/parser"
	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
	"github.com/shouni/go-storyboard-kit/pkg/publisher"
	"github.com/shouni/go-storyboard-kit/pkg/runner"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// ManagerArgs は Manager の初期化に必要な依存関係です。
type ManagerArgs struct {
	Config config.Config
	// Repository が nil の場合は Config.StorePath からストアを開き、Close で閉じます。
	Repository store.Repository
	// Stdin はプロジェクトのパスに "-" が指定されたときの入力元です。nil なら os.Stdin なのだ。
	Stdin io.Reader
	// Writer はエクスポートの出力先です。nil ならローカルファイルに書き出します。
	Writer publisher.OutputWriter
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
type Manager struct {
	cfg       config.Config
	repo      store.Repository
	owned     io.Closer
	session   *editor.Session
	parser    parser.Parser
	pipeline  *pipeline.PromptPipeline
	publisher *publisher.StoryboardPublisher
}

var _ Workflow = (*Manager)(nil)

// New は、設定とリポジトリを基に新しい Manager を初期化します。
func New(args ManagerArgs) (*Manager, error) {
	if args.Config.Workers < 0 {
		return nil, fmt.Errorf("Workers は 0 以上である必要があります: %d", args.Config.Workers)
	}

	m := &Manager{cfg: args.Config, repo: args.Repository}
	if m.repo == nil {
		s, err := store.Open(args.Config.StorePath)
		if err != nil {
			return nil, err
		}
		m.repo, m.owned = s, s
	}

	m.session = editor.NewSession(m.repo)
	m.parser = parser.NewProjectParser(args.Stdin)
	m.pipeline = pipeline.NewPromptPipeline(args.Config.Workers, m.session)
	m.publisher = publisher.NewStoryboardPublisher(args.Writer, m.session)
	return m, nil
}

// Session は編集セッションを返します。キャッシュの読み書きやクリアに使うのだ。
func (m *Manager) Session() *editor.Session {
	return m.session
}

// Config は Manager の設定を返します。
func (m *Manager) Config() config.Config {
	return m.cfg
}

// BuildPromptRunner は、プロンプトの組み立てを担当する Runner を作成します。
func (m *Manager) BuildPromptRunner() (PromptRunner, error) {
	return runner.NewStoryboardPromptRunner(m.Loader(), m.pipeline), nil
}

// BuildPublishRunner は、成果物のパブリッシュを担当する Runner を作成します。
func (m *Manager) BuildPublishRunner() (PublishRunner, error) {
	return runner.NewDefaultPublisherRunner(m.cfg, m.Loader(), m.pipeline, m.publisher), nil
}

// Close は Manager が開いたストアを閉じます。外から渡された Repository は閉じません。
func (m *Manager) Close() error {
	if m.owned == nil {
		return nil
	}
	return m.owned.Close()
}

// Loader はファイルまたは保存済みのセッションからプロジェクトを取り出す ProjectLoader を返します。
func (m *Manager) Loader() *runner.ProjectLoader {
	return runner.NewProjectLoader(m.parser, m.session)
}
