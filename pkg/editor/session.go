package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// ErrNoProject は保存済みのプロジェクトが存在しないときに返されます。
var ErrNoProject = errors.New("保存されたプロジェクトがありません")

// Session は編集中のプロジェクトとフレームごとのキャッシュを Repository 上で管理します。
type Session struct {
	repo store.Repository
}

// NewSession は Repository を受け取り Session を生成します。
func NewSession(repo store.Repository) *Session {
	return &Session{repo: repo}
}

// SaveProject は現在のプロジェクトを JSON で保存します。
func (s *Session) SaveProject(ctx context.Context, p *domain.ProjectData) error {
	if p == nil {
		return fmt.Errorf("保存するプロジェクトが nil です")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("プロジェクトのシリアライズに失敗しました: %w", err)
	}
	if err := s.repo.Set(ctx, store.KeyCurrentProject, string(data)); err != nil {
		return fmt.Errorf("プロジェクトの保存に失敗しました: %w", err)
	}
	return nil
}

// LoadProject は保存済みのプロジェクトを読み込みます。
// 壊れた文書が保存されていた場合はそれを削除し、ErrNoProject を返すのだ。
func (s *Session) LoadProject(ctx context.Context) (*domain.ProjectData, error) {
	raw, ok, err := s.repo.Get(ctx, store.KeyCurrentProject)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの読み込みに失敗しました: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ErrNoProject
	}

	p, err := domain.GetProject([]byte(raw))
	if err != nil {
		slog.Warn("保存されたプロジェクトが壊れているため削除します", "error", err)
		if rmErr := s.repo.Remove(ctx, store.KeyCurrentProject); rmErr != nil {
			return nil, fmt.Errorf("壊れたプロジェクトの削除に失敗しました: %w", rmErr)
		}
		return nil, ErrNoProject
	}
	return p, nil
}

// FrameImageURL はフレームの画像 URL を返します。キャッシュがあればそちらを優先します。
func (s *Session) FrameImageURL(ctx context.Context, sceneKey string, t domain.FrameType, f domain.Frame) (string, error) {
	return s.cachedOr(ctx, store.FrameImageKey(sceneKey, t), f.ImageURL())
}

// FrameVideoURL はフレームの動画 URL を返します。キャッシュがあればそちらを優先します。
func (s *Session) FrameVideoURL(ctx context.Context, sceneKey string, t domain.FrameType, f domain.Frame) (string, error) {
	return s.cachedOr(ctx, store.FrameVideoKey(sceneKey, t), f.VideoURL())
}

// CachedPrompt は利用者が編集して保存したプロンプトだけを返します。
func (s *Session) CachedPrompt(ctx context.Context, sceneKey string, t domain.FrameType) (string, bool, error) {
	v, ok, err := s.repo.Get(ctx, store.FramePromptKey(sceneKey, t))
	if err != nil {
		return "", false, fmt.Errorf("プロンプトキャッシュの読み込みに失敗しました: %w", err)
	}
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// FramePrompt はフレームのプロンプトを返します。
// 優先順位はキャッシュ、フレーム自身の prompt、ライブラリから組み立てたプロンプトの順です。
func (s *Session) FramePrompt(ctx context.Context, lib domain.Library, sceneKey string, t domain.FrameType, f domain.Frame) (string, error) {
	cached, ok, err := s.CachedPrompt(ctx, sceneKey, t)
	if err != nil {
		return "", err
	}
	if ok {
		return cached, nil
	}
	if p := f.Prompt(); p != "" {
		return p, nil
	}
	if sf, ok := f.Block(); ok {
		return prompts.BuildBlockPrompt(lib, sf.PromptBlock), nil
	}
	if lf, ok := f.Legacy(); ok {
		return prompts.BuildLegacyPrompt(*lf), nil
	}
	return "", nil
}

// SetFrameImageURL は画像 URL をキャッシュします。空白だけの値は保存せず false を返します。
func (s *Session) SetFrameImageURL(ctx context.Context, sceneKey string, t domain.FrameType, url string) (bool, error) {
	return s.setIfPresent(ctx, store.FrameImageKey(sceneKey, t), url)
}

// SetFrameVideoURL は動画 URL をキャッシュします。空白だけの値は保存せず false を返します。
func (s *Session) SetFrameVideoURL(ctx context.Context, sceneKey string, t domain.FrameType, url string) (bool, error) {
	return s.setIfPresent(ctx, store.FrameVideoKey(sceneKey, t), url)
}

// SetFramePrompt は編集されたプロンプトをキャッシュします。空白だけの値は保存せず false を返します。
func (s *Session) SetFramePrompt(ctx context.Context, sceneKey string, t domain.FrameType, prompt string) (bool, error) {
	return s.setIfPresent(ctx, store.FramePromptKey(sceneKey, t), prompt)
}

// ClearProject はフレームの画像・プロンプトのキャッシュと現在のプロジェクトを削除します。
func (s *Session) ClearProject(ctx context.Context) (int, error) {
	return store.RemoveByPrefix(ctx, s.repo,
		store.PrefixFrameImage,
		store.PrefixFramePrompt,
		store.KeyCurrentProject,
	)
}

// FullReset は ClearProject の対象に加えて、キャラクターのコンセプト画像も削除します。
func (s *Session) FullReset(ctx context.Context) (int, error) {
	return store.RemoveByPrefix(ctx, s.repo,
		store.PrefixFrameImage,
		store.PrefixFramePrompt,
		store.PrefixCharacterImage,
		store.KeyCurrentProject,
	)
}

// ClearVisualConcept はキャラクターのコンセプト画像を削除し、保存済みプロジェクトのキャラクター一覧を空にします。
func (s *Session) ClearVisualConcept(ctx context.Context) (int, error) {
	n, err := store.RemoveByPrefix(ctx, s.repo, store.PrefixCharacterImage)
	if err != nil {
		return n, err
	}

	p, err := s.LoadProject(ctx)
	if errors.Is(err, ErrNoProject) {
		return n, nil
	}
	if err != nil {
		return n, err
	}
	p.Characters = []domain.Character{}
	return n, s.SaveProject(ctx, p)
}

func (s *Session) cachedOr(ctx context.Context, key, fallback string) (string, error) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("キャッシュの読み込みに失敗しました (%s): %w", key, err)
	}
	if ok && v != "" {
		return v, nil
	}
	return fallback, nil
}

func (s *Session) setIfPresent(ctx context.Context, key, value string) (bool, error) {
	if strings.TrimSpace(value) == "" {
		return false, nil
	}
	if err := s.repo.Set(ctx, key, value); err != nil {
		return false, fmt.Errorf("キャッシュの保存に失敗しました (%s): %w", key, err)
	}
	return true, nil
}
