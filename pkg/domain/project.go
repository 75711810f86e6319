package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ProjectData はアップロードされるプロジェクト文書全体の構造です。
type ProjectData struct {
	Project     Project     `json:"project"`
	Scenario    *Scenario   `json:"scenario,omitempty"`
	Script      string      `json:"script,omitempty"`
	Definitions Definitions `json:"definitions"`
	Scenes      []Scene     `json:"scenes"`
	Characters  []Character `json:"characters,omitempty"`
	KeyProps    []KeyProp   `json:"keyProps,omitempty"`
}

// Project はプロジェクトのメタ情報です。
type Project struct {
	Title         string     `json:"title"`
	Style         string     `json:"style"`
	AspectRatio   FlexString `json:"aspectRatio,omitempty"`
	TotalDuration FlexString `json:"totalDuration,omitempty"`
	Description   string     `json:"description,omitempty"`
}

// Scenario はシナリオの概要です。
type Scenario struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Script  string `json:"script"`
}

// Definitions は再利用可能な定義（ライブラリ）を保持します。
type Definitions struct {
	Library Library `json:"library"`
}

// Setting はシーンの舞台設定です。旧形式の location も受け付けます。
type Setting struct {
	BaseLocationID string `json:"base_location_id,omitempty"`
	Location       string `json:"location,omitempty"`
	TimeOfDay      string `json:"timeOfDay,omitempty"`
	Atmosphere     string `json:"atmosphere,omitempty"`
}

// Transition はシーン間のトランジション設定です。
type Transition struct {
	Type     string  `json:"type,omitempty"`
	Duration float64 `json:"duration"`
}

// Scene は1シーン分の情報です。新形式は shots、旧形式は frames にフレームを持ちます。
type Scene struct {
	Scene             int         `json:"scene,omitempty"`
	SceneNumber       int         `json:"sceneNumber,omitempty"`
	SceneID           string      `json:"sceneId,omitempty"`
	ID                string      `json:"id,omitempty"`
	Title             string      `json:"title,omitempty"`
	Description       string      `json:"description,omitempty"`
	Duration          float64     `json:"duration,omitempty"`
	Setting           *Setting    `json:"setting,omitempty"`
	CharactersInScene []string    `json:"charactersInScene,omitempty"`
	Shots             *FrameSet   `json:"shots,omitempty"`
	Frames            *FrameSet   `json:"frames,omitempty"`
	Transition        *Transition `json:"transition,omitempty"`
}

// Character はビジュアルコンセプト用のキャラクター定義です。
// consistency は文字列とオブジェクトの両方があり得るので生の JSON のまま保持します。
type Character struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Role              string          `json:"role,omitempty"`
	Description       string          `json:"description"`
	VisualDescription string          `json:"visualDescription"`
	Consistency       json.RawMessage `json:"consistency,omitempty"`
	ConsistencyTr     json.RawMessage `json:"consistency_tr,omitempty"`
}

// KeyProp はビジュアルコンセプト用の重要小道具の定義です。
type KeyProp struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	VisualDescription string `json:"visualDescription"`
	Consistency       string `json:"consistency,omitempty"`
	ConsistencyTr     string `json:"consistency_tr,omitempty"`
}

// FlexString は JSON の数値と文字列のどちらも受け付ける文字列です。
// totalDuration や aspectRatio は文書によって型が揺れるのだ。
type FlexString string

// UnmarshalJSON は数値・文字列・null を受け付けます。
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("文字列または数値を期待しました: %w", err)
	}
	*s = FlexString(num.String())
	return nil
}

// MarshalJSON は数値として解釈できる値は数値のまま書き出します。
func (s FlexString) MarshalJSON() ([]byte, error) {
	if isJSONNumber(string(s)) {
		return []byte(s), nil
	}
	return json.Marshal(string(s))
}

func isJSONNumber(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

// LoadProject は指定されたファイルパスから JSON を読み込み、ProjectData を返すのだ。
func LoadProject(path string) (*ProjectData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトファイルの読み込みに失敗したのだ: %w", err)
	}
	return GetProject(data)
}

// GetProject は JSON バイト列から ProjectData をパースして返します。
func GetProject(projectJSON []byte) (*ProjectData, error) {
	var p ProjectData
	if err := json.Unmarshal(projectJSON, &p); err != nil {
		return nil, fmt.Errorf("プロジェクトJSONのパースに失敗しました: %w", err)
	}
	return &p, nil
}
