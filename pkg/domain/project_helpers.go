package domain

import (
	"fmt"
	"strings"
)

// Key はキャッシュキーに使うシード ID を返します。
// sceneId、id の順に探し、どちらもなければ "scene_<index>" を使います。
func (s Scene) Key(index int) string {
	if s.SceneID != "" {
		return s.SceneID
	}
	if s.ID != "" {
		return s.ID
	}
	return fmt.Sprintf("scene_%d", index)
}

// Number は表示用のシーン番号を返します。番号がなければ index+1 なのだ。
func (s Scene) Number(index int) int {
	if s.Scene > 0 {
		return s.Scene
	}
	if s.SceneNumber > 0 {
		return s.SceneNumber
	}
	return index + 1
}

// FrameSet は新形式の shots を優先し、なければ旧形式の frames を返します。
func (s Scene) FrameSet() (FrameSet, bool) {
	if s.Shots != nil {
		return *s.Shots, true
	}
	if s.Frames != nil {
		return *s.Frames, true
	}
	return FrameSet{}, false
}

// Library はプロジェクトのライブラリを返します。
func (p *ProjectData) Library() Library {
	if p == nil {
		return Library{}
	}
	return p.Definitions.Library
}

// DisplayTitle はタイトルが空のときに既定値を返すのだ。
func (p *ProjectData) DisplayTitle(fallback string) string {
	if p == nil {
		return fallback
	}
	if t := strings.TrimSpace(p.Project.Title); t != "" {
		return t
	}
	return fallback
}

// Clone はプロジェクトのディープコピーを返します。エクスポート時に入力を汚さないために使います。
func (p *ProjectData) Clone() *ProjectData {
	if p == nil {
		return nil
	}
	c := *p
	if p.Scenario != nil {
		sc := *p.Scenario
		c.Scenario = &sc
	}
	c.Definitions.Library = p.Definitions.Library.Clone()

	c.Scenes = make([]Scene, len(p.Scenes))
	for i, s := range p.Scenes {
		cs := s
		if s.Setting != nil {
			st := *s.Setting
			cs.Setting = &st
		}
		if s.Transition != nil {
			tr := *s.Transition
			cs.Transition = &tr
		}
		if s.CharactersInScene != nil {
			cs.CharactersInScene = append([]string(nil), s.CharactersInScene...)
		}
		if s.Shots != nil {
			fs := s.Shots.Clone()
			cs.Shots = &fs
		}
		if s.Frames != nil {
			fs := s.Frames.Clone()
			cs.Frames = &fs
		}
		c.Scenes[i] = cs
	}

	if p.Characters != nil {
		c.Characters = append([]Character(nil), p.Characters...)
	}
	if p.KeyProps != nil {
		c.KeyProps = append([]KeyProp(nil), p.KeyProps...)
	}
	return &c
}
