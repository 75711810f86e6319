package prompts

import "github.com/shouni/go-storyboard-kit/pkg/domain"

// baseSource はフィールドの値をどちらのベースから引くかを表します。
type baseSource int

const (
	fromCharacter baseSource = iota
	fromLocation
)

type chunkField struct {
	field domain.Field
	from  baseSource
}

// chunk はプロンプトの1節（スタイル、カメラ、被写体、背景、パラメータ）です。
type chunk struct {
	name      string
	fields    []chunkField
	separator string
}

const (
	clauseSeparator    = ", "
	parameterSeparator = " "
	chunkSeparator     = ". "
)

func characterFields(fields ...domain.Field) []chunkField {
	out := make([]chunkField, len(fields))
	for i, f := range fields {
		out[i] = chunkField{field: f, from: fromCharacter}
	}
	return out
}

func locationFields(fields ...domain.Field) []chunkField {
	out := make([]chunkField, len(fields))
	for i, f := range fields {
		out[i] = chunkField{field: f, from: fromLocation}
	}
	return out
}

var (
	// styleChunk は映像全体の画風とジャンルです。
	styleChunk = chunk{
		name: "style",
		fields: characterFields(
			domain.FieldStyleMain,
			domain.FieldStyleRef,
			domain.FieldMediaType,
			domain.FieldGenre,
		),
		separator: clauseSeparator,
	}

	// cameraChunk の構図は場所側、視線はキャラクター側から引く。この非対称は意図どおり。
	cameraChunk = chunk{
		name: "camera",
		fields: []chunkField{
			{field: domain.FieldCameraShot, from: fromLocation},
			{field: domain.FieldCameraGaze, from: fromCharacter},
		},
		separator: clauseSeparator,
	}

	// subjectChunk は 誰か → 何をしているか → 外見 → 装備 → 照明 の順です。
	subjectChunk = chunk{
		name: "subject",
		fields: characterFields(
			domain.FieldCharDesc,
			domain.FieldActionPose,
			domain.FieldCharExpression,
			domain.FieldCharBody,
			domain.FieldCharSkin,
			domain.FieldCharHair,
			domain.FieldCharFaceShape,
			domain.FieldCharFeatures,
			domain.FieldCharOutfit,
			domain.FieldCharAcc,
			domain.FieldCharHeldProp,
			domain.FieldCharLightingSide,
		),
		separator: clauseSeparator,
	}

	// backgroundChunk は 場所 → 詳細 → 雰囲気と照明 → 前景/背景 の順です。
	backgroundChunk = chunk{
		name: "background",
		fields: locationFields(
			domain.FieldLocMain,
			domain.FieldLocStructure,
			domain.FieldLocMaterial,
			domain.FieldLocObjects,
			domain.FieldLocWeather,
			domain.FieldAtmosphere,
			domain.FieldLocLightMood,
			domain.FieldLocLightNatural,
			domain.FieldLocLightArt,
			domain.FieldLocFG,
			domain.FieldLocBG,
		),
		separator: clauseSeparator,
	}

	// parameterChunk はツールへの指示なのでカンマではなく空白で連結します。
	parameterChunk = chunk{
		name: "parameters",
		fields: characterFields(
			domain.FieldQualityTags,
			domain.FieldModelParams,
		),
		separator: parameterSeparator,
	}

	descriptiveChunks = []chunk{styleChunk, cameraChunk, subjectChunk, backgroundChunk}
)

// PromptFields はプロンプト生成に実際に使われるフィールドを出力順で返します。
func PromptFields() []domain.Field {
	var fields []domain.Field
	for _, c := range descriptiveChunks {
		for _, cf := range c.fields {
			fields = append(fields, cf.field)
		}
	}
	for _, cf := range parameterChunk.fields {
		fields = append(fields, cf.field)
	}
	return fields
}
