package store

import (
	"fmt"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// キーの書式は既存の保存データと互換なので変更してはいけません。
const (
	KeyCurrentProject = "currentProject"

	PrefixFrameImage     = "frame_image_"
	PrefixFramePrompt    = "frame_prompt_"
	PrefixFrameVideo     = "frame_video_"
	PrefixCharacterImage = "character_image_"
	PrefixKeyPropImage   = "keyprop_image_"
	PrefixLocationImage  = "location_image_"
)

// FrameImageKey はフレーム画像 URL のキーを返します。
func FrameImageKey(sceneKey string, t domain.FrameType) string {
	return frameKey(PrefixFrameImage, sceneKey, t)
}

// FramePromptKey はフレームプロンプトのキーを返します。
func FramePromptKey(sceneKey string, t domain.FrameType) string {
	return frameKey(PrefixFramePrompt, sceneKey, t)
}

// FrameVideoKey はフレーム動画 URL のキーを返します。
func FrameVideoKey(sceneKey string, t domain.FrameType) string {
	return frameKey(PrefixFrameVideo, sceneKey, t)
}

func frameKey(prefix, sceneKey string, t domain.FrameType) string {
	return fmt.Sprintf("%s%s_%s", prefix, sceneKey, t)
}

// ConceptKind はビジュアルコンセプト画像の対象種別です。
type ConceptKind string

const (
	ConceptCharacter ConceptKind = "character"
	ConceptKeyProp   ConceptKind = "keyprop"
	ConceptLocation  ConceptKind = "location"
)

// ParseConceptKind は文字列を ConceptKind に変換します。
func ParseConceptKind(s string) (ConceptKind, error) {
	switch ConceptKind(s) {
	case ConceptCharacter, ConceptKeyProp, ConceptLocation:
		return ConceptKind(s), nil
	default:
		return "", fmt.Errorf("不明なコンセプト種別です: '%s' (character, keyprop, location のいずれかを指定してほしいのだ)", s)
	}
}

// ConceptImageKey はコンセプト画像のキーを返します。
func ConceptImageKey(kind ConceptKind, id string) (string, error) {
	switch kind {
	case ConceptCharacter:
		return PrefixCharacterImage + id, nil
	case ConceptKeyProp:
		return PrefixKeyPropImage + id, nil
	case ConceptLocation:
		return PrefixLocationImage + id, nil
	default:
		return "", fmt.Errorf("不明なコンセプト種別です: '%s'", kind)
	}
}
