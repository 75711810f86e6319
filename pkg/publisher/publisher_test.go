package publisher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/editor"
	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

func testProject() *domain.ProjectData {
	return &domain.ProjectData{
		Project: domain.Project{Title: "Forest Walk", Style: "anime", AspectRatio: "16:9"},
		Definitions: domain.Definitions{Library: domain.Library{
			Characters: domain.BlockSetMap{"c1": {Name: "Mina", Blocks: domain.SemanticBlocks{
				domain.FieldStyleMain: "anime",
				domain.FieldCharDesc:  "a girl",
			}}},
		}},
		Scenes: []domain.Scene{
			{SceneID: "s1", Title: "Opening", Duration: 4, Setting: &domain.Setting{Location: "forest"}, Shots: &domain.FrameSet{
				Start: domain.NewBlockFrame(domain.ShotFrame{ShotType: "wide", PromptBlock: domain.PromptBlock{BaseCharacterID: "c1"}}),
				End:   domain.NewBlockFrame(domain.ShotFrame{ShotType: "close", PromptBlock: domain.PromptBlock{BaseCharacterID: "c1"}, ImageURL: "https://example.com/end.png"}),
			}},
			{Frames: &domain.FrameSet{
				Middle: domain.NewLegacyFrame(domain.LegacyFrame{Prompt: "a lantern", Motion: &domain.Motion{En: "slow pan", Speed: "slow"}}),
			}},
		},
	}
}

func newSession(t *testing.T) *editor.Session {
	t.Helper()
	repo := store.NewMemoryStore()
	t.Cleanup(func() { repo.Close() })
	return editor.NewSession(repo)
}

func TestStoryboardPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	session := newSession(t)
	if _, err := session.SetFrameImageURL(ctx, "s1", domain.FrameStart, "https://example.com/start.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := session.SetFramePrompt(ctx, "scene_1", domain.FrameMiddle, "a paper lantern"); err != nil {
		t.Fatal(err)
	}

	project := testProject()
	shots, err := pipeline.NewPromptPipeline(2, session).Execute(ctx, project)
	if err != nil {
		t.Fatal(err)
	}

	pub := NewStoryboardPublisher(LocalWriter{}, session)
	res, err := pub.Publish(ctx, project, shots, Options{OutputDir: dir, Now: now})
	if err != nil {
		t.Fatalf("Publish に失敗したのだ: %v", err)
	}

	wantPath := filepath.Join(dir, "Forest Walk_2026-01-02T03-04-05.json")
	if res.ProjectPath != wantPath {
		t.Errorf("ProjectPath: got %q, want %q", res.ProjectPath, wantPath)
	}
	if res.SheetPath != filepath.Join(dir, "prompts.md") {
		t.Errorf("SheetPath: got %q", res.SheetPath)
	}
	// start: 画像 + 組み立てたプロンプト, end: 組み立てたプロンプト, middle: キャッシュのプロンプト
	if res.MergedFrames != 3 {
		t.Errorf("MergedFrames: got %d, want 3", res.MergedFrames)
	}

	data, err := os.ReadFile(res.ProjectPath)
	if err != nil {
		t.Fatal(err)
	}
	exported, err := domain.GetProject(data)
	if err != nil {
		t.Fatalf("書き出した JSON が読めないのだ: %v", err)
	}

	fs, _ := exported.Scenes[0].FrameSet()
	if got := fs.Start.ImageURL(); got != "https://example.com/start.png" {
		t.Errorf("キャッシュの画像 URL が書き戻されていないのだ: %q", got)
	}
	if got := fs.Start.Prompt(); got != "anime. a girl" {
		t.Errorf("組み立てたプロンプトが入っていないのだ: %q", got)
	}
	if got := fs.End.ImageURL(); got != "https://example.com/end.png" {
		t.Errorf("フレーム自身の画像 URL は保持されるのだ: %q", got)
	}
	if fs.Start.Kind() != domain.FrameKindBlock {
		t.Errorf("フレームの種別が変わってしまったのだ: %v", fs.Start.Kind())
	}
	legacy, _ := exported.Scenes[1].FrameSet()
	if got := legacy.Middle.Prompt(); got != "a paper lantern" {
		t.Errorf("キャッシュのプロンプトが優先されるのだ: %q", got)
	}

	// 引数のプロジェクトは変更されない
	orig, _ := project.Scenes[0].FrameSet()
	if orig.Start.ImageURL() != "" || orig.Start.Prompt() != "" {
		t.Errorf("入力のプロジェクトが書き換えられているのだ: %+v", orig.Start)
	}

	sheet, err := os.ReadFile(res.SheetPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# Forest Walk",
		"## Scene 1: Opening",
		"- location: forest",
		"- runtime: 4.0s",
		"- time: 0.0s - 4.0s",
		"### start (wide)",
		"- source: block",
		"- image: https://example.com/start.png",
		"- source: cache",
		"a paper lantern",
		"- motion: slow pan (slow)",
	} {
		if !strings.Contains(string(sheet), want) {
			t.Errorf("プロンプトシートに %q が含まれていないのだ:\n%s", want, sheet)
		}
	}
}

func TestStoryboardPublisher_CompactSheet(t *testing.T) {
	dir := t.TempDir()
	project := testProject()
	shots, err := pipeline.NewPromptPipeline(0, nil).Execute(context.Background(), project)
	if err != nil {
		t.Fatal(err)
	}

	res, err := NewStoryboardPublisher(nil, nil).Publish(context.Background(), project, shots, Options{
		OutputDir: dir,
		SheetMode: "compact",
	})
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := os.ReadFile(res.SheetPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sheet), "- **1-start**: anime. a girl") {
		t.Errorf("compact 形式の行が見つからないのだ:\n%s", sheet)
	}
	if !strings.Contains(string(sheet), "- **2-middle**: a lantern") {
		t.Errorf("旧形式フレームの行が見つからないのだ:\n%s", sheet)
	}
}

func TestStoryboardPublisher_Errors(t *testing.T) {
	ctx := context.Background()
	pub := NewStoryboardPublisher(nil, nil)

	if _, err := pub.Publish(ctx, nil, nil, Options{OutputDir: t.TempDir()}); err == nil {
		t.Error("nil のプロジェクトはエラーになるべきなのだ")
	}
	if _, err := pub.Publish(ctx, testProject(), nil, Options{OutputDir: t.TempDir(), SheetMode: "poster"}); err == nil {
		t.Error("未知のシート形式はエラーになるべきなのだ")
	}

	boom := errors.New("disk full")
	failing := NewStoryboardPublisher(writerFunc(func(context.Context, string, io.Reader, string) error { return boom }), nil)
	if _, err := failing.Publish(ctx, testProject(), nil, Options{OutputDir: t.TempDir()}); !errors.Is(err, boom) {
		t.Errorf("書き込みエラーが伝播していないのだ: %v", err)
	}
}

func TestStoryboardPublisher_UntitledProject(t *testing.T) {
	dir := t.TempDir()
	project := testProject()
	project.Project.Title = ""
	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	res, err := NewStoryboardPublisher(nil, nil).Publish(context.Background(), project, nil, Options{OutputDir: dir, Now: now})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(res.ProjectPath) != "project_2026-05-06T07-08-09.json" {
		t.Errorf("タイトルのないプロジェクトのファイル名: %q", res.ProjectPath)
	}
	sheet, _ := os.ReadFile(res.SheetPath)
	if !bytes.HasPrefix(sheet, []byte("# Storyboard")) {
		t.Errorf("タイトルのないシートの見出し: %q", sheet)
	}
}

func TestLocalWriter(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	if err := (LocalWriter{}).Write(ctx, path, strings.NewReader("hello"), "text/plain"); err != nil {
		t.Fatalf("書き込みに失敗したのだ: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "hello" {
		t.Errorf("got %q, err %v", got, err)
	}

	if err := (LocalWriter{}).Write(ctx, "gs://bucket/out.txt", strings.NewReader("x"), ""); err == nil {
		t.Error("リモートのパスはエラーになるべきなのだ")
	}
}

type writerFunc func(ctx context.Context, path string, r io.Reader, contentType string) error

func (f writerFunc) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	return f(ctx, path, r, contentType)
}
