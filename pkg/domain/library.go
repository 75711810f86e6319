package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// SemanticBlocks はフィールド名から自由記述の値へのマップです。
// キーが存在しない場合と空文字の場合は、どちらも「値なし」として扱います。
type SemanticBlocks map[string]string

// Get は field の値を返します。nil マップでも安全に呼べるのだ。
func (b SemanticBlocks) Get(field Field) string {
	return b[field]
}

// Has は field に空でない値があるかを判定します。
func (b SemanticBlocks) Has(field Field) bool {
	return b[field] != ""
}

// Clone は SemanticBlocks の防御的コピーを返します。
func (b SemanticBlocks) Clone() SemanticBlocks {
	if b == nil {
		return nil
	}
	copied := make(SemanticBlocks, len(b))
	for k, v := range b {
		copied[k] = v
	}
	return copied
}

// BlockSet は名前付きの再利用可能なブロック集合（キャラクターや場所のテンプレート）です。
type BlockSet struct {
	Name   string         `json:"name"`
	Blocks SemanticBlocks `json:"blocks"`
}

// String はブロック集合の名前を返すのだ。
func (s BlockSet) String() string {
	return s.Name
}

// BlockSetMap は ID をキーとした BlockSet の検索用マップなのだ。
type BlockSetMap map[string]BlockSet

// Library はプロジェクト全体で共有されるテンプレートのカタログです。
// プロンプト組み立て側からは読み取り専用として扱います。
type Library struct {
	Characters BlockSetMap `json:"characters"`
	Locations  BlockSetMap `json:"locations"`
	Props      BlockSetMap `json:"props"`
}

// PromptBlock は1ショット分のプロンプト設定です。
// ベースの ID は解決できなくても構いません（ベースなしとして扱います）。
type PromptBlock struct {
	BaseCharacterID string         `json:"base_character_id"`
	BaseLocationID  string         `json:"base_location_id"`
	Override        SemanticBlocks `json:"override"`
}

// EntryKind はライブラリ内のマップの種類です。
type EntryKind string

const (
	EntryKindCharacter EntryKind = "character"
	EntryKindLocation  EntryKind = "location"
	EntryKindProp      EntryKind = "prop"
)

// ParseEntryKind は CLI などから渡された文字列を EntryKind に変換します。
func ParseEntryKind(s string) (EntryKind, error) {
	switch EntryKind(s) {
	case EntryKindCharacter, EntryKindLocation, EntryKindProp:
		return EntryKind(s), nil
	case "characters":
		return EntryKindCharacter, nil
	case "locations":
		return EntryKindLocation, nil
	case "props":
		return EntryKindProp, nil
	default:
		return "", fmt.Errorf("不明なライブラリ種別です: '%s'", s)
	}
}

// LoadLibrary は指定されたファイルパスから JSON を読み込み、Library を返すのだ。
func LoadLibrary(path string) (Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Library{}, fmt.Errorf("ライブラリファイルの読み込みに失敗したのだ: %w", err)
	}
	return GetLibrary(data)
}

// GetLibrary は JSON バイト列から Library をパースして返します。
// この関数はステートレスであり、キャッシュを行いません。
func GetLibrary(libraryJSON []byte) (Library, error) {
	var lib Library
	if err := json.Unmarshal(libraryJSON, &lib); err != nil {
		return Library{}, fmt.Errorf("ライブラリ情報のJSONパースに失敗しました: %w", err)
	}
	return lib, nil
}

// Clone はライブラリのディープコピーを返します。編集系の処理は必ずコピーに対して行うのだ。
func (l Library) Clone() Library {
	return Library{
		Characters: l.Characters.clone(),
		Locations:  l.Locations.clone(),
		Props:      l.Props.clone(),
	}
}

func (m BlockSetMap) clone() BlockSetMap {
	if m == nil {
		return nil
	}
	copied := make(BlockSetMap, len(m))
	for id, set := range m {
		copied[id] = BlockSet{Name: set.Name, Blocks: set.Blocks.Clone()}
	}
	return copied
}

// SortedIDs は ID を昇順で返します。常に同じ結果を得るために使うのだ。
func (m BlockSetMap) SortedIDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
