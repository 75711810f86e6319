package editor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// SetConceptImage はキャラクター・小道具・場所のコンセプト画像 URL を保存します。
func (s *Session) SetConceptImage(ctx context.Context, kind store.ConceptKind, id, url string) (bool, error) {
	key, err := store.ConceptImageKey(kind, id)
	if err != nil {
		return false, err
	}
	return s.setIfPresent(ctx, key, url)
}

// ConceptImage は保存済みのコンセプト画像 URL を返します。
func (s *Session) ConceptImage(ctx context.Context, kind store.ConceptKind, id string) (string, bool, error) {
	key, err := store.ConceptImageKey(kind, id)
	if err != nil {
		return "", false, err
	}
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("コンセプト画像の読み込みに失敗しました: %w", err)
	}
	return v, ok && v != "", nil
}

// RemoveConceptImage はコンセプト画像 URL を削除します。
func (s *Session) RemoveConceptImage(ctx context.Context, kind store.ConceptKind, id string) error {
	key, err := store.ConceptImageKey(kind, id)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, key); err != nil {
		return fmt.Errorf("コンセプト画像の削除に失敗しました: %w", err)
	}
	return nil
}

// ConceptLocation はシーンの舞台設定から抽出した場所のコンセプトです。
type ConceptLocation struct {
	ID         string
	Scene      int
	Title      string
	Location   string
	TimeOfDay  string
	Atmosphere string
}

// ConceptLocations はシーンの setting.location から場所を抽出します。
// 同じ location 文字列は最初に現れたシーンのものだけを残すのだ。
func ConceptLocations(p *domain.ProjectData) []ConceptLocation {
	if p == nil {
		return nil
	}
	var out []ConceptLocation
	seen := make(map[string]bool)
	for _, sc := range p.Scenes {
		if sc.Setting == nil || sc.Setting.Location == "" || seen[sc.Setting.Location] {
			continue
		}
		seen[sc.Setting.Location] = true

		number := sc.Scene
		if number == 0 {
			number = sc.SceneNumber
		}
		out = append(out, ConceptLocation{
			ID:         "loc_" + conceptSceneSeed(sc),
			Scene:      number,
			Title:      sc.Title,
			Location:   sc.Setting.Location,
			TimeOfDay:  sc.Setting.TimeOfDay,
			Atmosphere: sc.Setting.Atmosphere,
		})
	}
	return out
}

// FullText は location に時間帯と雰囲気を繋げた説明文を返します。
func (l ConceptLocation) FullText() string {
	parts := []string{l.Location}
	if l.TimeOfDay != "" {
		parts = append(parts, l.TimeOfDay)
	}
	if l.Atmosphere != "" {
		parts = append(parts, l.Atmosphere)
	}
	return strings.Join(parts, ", ")
}

func conceptSceneSeed(sc domain.Scene) string {
	switch {
	case sc.SceneID != "":
		return sc.SceneID
	case sc.ID != "":
		return sc.ID
	case sc.Scene != 0:
		return strconv.Itoa(sc.Scene)
	case sc.SceneNumber != 0:
		return strconv.Itoa(sc.SceneNumber)
	default:
		return "undefined"
	}
}
