package domain

// Field は SemanticBlocks のキー（意味ブロックのフィールド名）です。
// キーは外部の JSON 文書と共有される契約なので、名前を変えてはいけません。
type Field = string

// Style
const (
	FieldStyleMain = "style_main"
	FieldStyleRef  = "style_ref"
	FieldMediaType = "media_type"
	FieldGenre     = "genre"
)

// Character
const (
	FieldCharDesc         = "char_desc"
	FieldCharBody         = "char_body"
	FieldCharHair         = "char_hair"
	FieldCharFaceShape    = "char_face_shape"
	FieldCharFeatures     = "char_features"
	FieldCharSkin         = "char_skin"
	FieldCharExpression   = "char_expression"
	FieldCharOutfit       = "char_outfit"
	FieldCharAcc          = "char_acc"
	FieldCharHeldProp     = "char_held_prop"
	FieldActionPose       = "action_pose"
	FieldCameraGaze       = "camera_gaze"
	FieldCharLightingSide = "char_lighting_side"
)

// Location
const (
	FieldLocMain         = "loc_main"
	FieldLocScale        = "loc_scale"
	FieldLocStructure    = "loc_structure"
	FieldLocMaterial     = "loc_material"
	FieldLocObjects      = "loc_objects"
	FieldLocWeather      = "loc_weather"
	FieldLocLightNatural = "loc_light_natural"
	FieldLocLightArt     = "loc_light_art"
	FieldLocLightMood    = "loc_light_mood"
	FieldLocFG           = "loc_fg"
	FieldLocMG           = "loc_mg"
	FieldLocBG           = "loc_bg"
	FieldLocLeft         = "loc_left"
	FieldLocRight        = "loc_right"
	FieldLocCeiling      = "loc_ceiling"
	FieldLocFloor        = "loc_floor"
)

// Props
const (
	FieldPropName      = "prop_name"
	FieldPropCondition = "prop_condition"
	FieldPropDetail    = "prop_detail"
	FieldPropFunction  = "prop_function"
	FieldPropSpecial   = "prop_special"
	FieldPropGlow      = "prop_glow"
	FieldPropBG        = "prop_bg"
)

// Camera & Quality
const (
	FieldCameraShot  = "camera_shot"
	FieldAtmosphere  = "atmosphere"
	FieldBGSimple    = "bg_simple"
	FieldQualityTags = "quality_tags"
	FieldModelParams = "model_params"
)

// FieldGroup はフィールドカタログの役割ごとのまとまりです。
type FieldGroup struct {
	Name   string
	Fields []Field
}

// fieldGroups はカタログ本体です。並び順は編集フォームの表示順でもあります。
var fieldGroups = []FieldGroup{
	{
		Name:   "Style",
		Fields: []Field{FieldStyleMain, FieldStyleRef, FieldMediaType, FieldGenre},
	},
	{
		Name: "Character",
		Fields: []Field{
			FieldCharDesc, FieldCharBody, FieldCharHair, FieldCharFaceShape, FieldCharFeatures,
			FieldCharSkin, FieldCharExpression, FieldCharOutfit, FieldCharAcc, FieldCharHeldProp,
			FieldActionPose, FieldCameraGaze, FieldCharLightingSide,
		},
	},
	{
		Name: "Location",
		Fields: []Field{
			FieldLocMain, FieldLocScale, FieldLocStructure, FieldLocMaterial, FieldLocObjects,
			FieldLocWeather, FieldLocLightNatural, FieldLocLightArt, FieldLocLightMood,
			FieldLocFG, FieldLocMG, FieldLocBG, FieldLocLeft, FieldLocRight, FieldLocCeiling, FieldLocFloor,
		},
	},
	{
		Name: "Props",
		Fields: []Field{
			FieldPropName, FieldPropCondition, FieldPropDetail, FieldPropFunction,
			FieldPropSpecial, FieldPropGlow, FieldPropBG,
		},
	},
	{
		Name:   "Camera & Quality",
		Fields: []Field{FieldCameraShot, FieldAtmosphere, FieldBGSimple, FieldQualityTags, FieldModelParams},
	},
}

var knownFields = func() map[Field]struct{} {
	m := make(map[Field]struct{})
	for _, g := range fieldGroups {
		for _, f := range g.Fields {
			m[f] = struct{}{}
		}
	}
	return m
}()

// FieldGroups はカタログをグループ単位で返します。呼び出し元が書き換えても内部には影響しません。
func FieldGroups() []FieldGroup {
	groups := make([]FieldGroup, len(fieldGroups))
	for i, g := range fieldGroups {
		fields := make([]Field, len(g.Fields))
		copy(fields, g.Fields)
		groups[i] = FieldGroup{Name: g.Name, Fields: fields}
	}
	return groups
}

// Fields はカタログの全キーをカタログ順で返します。
func Fields() []Field {
	all := make([]Field, 0, len(knownFields))
	for _, g := range fieldGroups {
		all = append(all, g.Fields...)
	}
	return all
}

// IsKnownField は key がカタログに含まれるかを判定します。
func IsKnownField(key string) bool {
	_, ok := knownFields[key]
	return ok
}
