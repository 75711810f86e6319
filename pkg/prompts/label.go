package prompts

import "github.com/shouni/go-storyboard-kit/pkg/domain"

// semanticKeyLabels は編集画面で表示するフィールド名です。
var semanticKeyLabels = map[string]string{
	// Style
	domain.FieldStyleMain: "메인 스타일",
	domain.FieldStyleRef:  "참조 스타일",
	domain.FieldMediaType: "미디어 타입",
	domain.FieldGenre:     "장르",

	// Character
	domain.FieldCharDesc:         "캐릭터 설명",
	domain.FieldCharBody:         "체형",
	domain.FieldCharHair:         "헤어",
	domain.FieldCharFaceShape:    "얼굴형",
	domain.FieldCharFeatures:     "특징",
	domain.FieldCharSkin:         "피부",
	domain.FieldCharExpression:   "표정",
	domain.FieldCharOutfit:       "의상",
	domain.FieldCharAcc:          "장신구",
	domain.FieldCharHeldProp:     "소지품",
	domain.FieldActionPose:       "동작/포즈",
	domain.FieldCameraGaze:       "시선",
	domain.FieldCharLightingSide: "캐릭터 조명",

	// Location
	domain.FieldLocMain:         "장소",
	domain.FieldLocScale:        "규모",
	domain.FieldLocStructure:    "구조",
	domain.FieldLocMaterial:     "재질",
	domain.FieldLocObjects:      "오브젝트",
	domain.FieldLocWeather:      "날씨",
	domain.FieldLocLightNatural: "자연광",
	domain.FieldLocLightArt:     "인공광",
	domain.FieldLocLightMood:    "조명 분위기",
	domain.FieldLocFG:           "전경",
	domain.FieldLocMG:           "중경",
	domain.FieldLocBG:           "배경",
	domain.FieldLocLeft:         "좌측",
	domain.FieldLocRight:        "우측",
	domain.FieldLocCeiling:      "천장",
	domain.FieldLocFloor:        "바닥",

	// Props
	domain.FieldPropName:      "소품명",
	domain.FieldPropCondition: "상태",
	domain.FieldPropDetail:    "디테일",
	domain.FieldPropFunction:  "기능",
	domain.FieldPropSpecial:   "특수효과",
	domain.FieldPropGlow:      "발광",
	domain.FieldPropBG:        "소품 배경",

	// Camera & Quality
	domain.FieldCameraShot:  "카메라 샷",
	domain.FieldAtmosphere:  "분위기",
	domain.FieldBGSimple:    "간단 배경",
	domain.FieldQualityTags: "품질 태그",
	domain.FieldModelParams: "모델 파라미터",
}

// FormatSemanticKey はフィールドキーを表示用のラベルに変換します。
// 未知のキーはそのまま返します。
func FormatSemanticKey(key string) string {
	if label, ok := semanticKeyLabels[key]; ok {
		return label
	}
	return key
}
