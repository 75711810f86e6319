package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

var (
	// ErrEntryNotFound はライブラリに指定の ID がないときに返されます。
	ErrEntryNotFound = errors.New("ライブラリのエントリが見つかりません")
	// ErrUnknownField はカタログにないフィールド名が指定されたときに返されます。
	ErrUnknownField = errors.New("不明なフィールドです")
)

var entryPrefixes = map[domain.EntryKind]string{
	domain.EntryKindCharacter: "char",
	domain.EntryKindLocation:  "loc",
	domain.EntryKindProp:      "prop",
}

// NewEntryID は "<prefix>_<uuid>" 形式の新しい ID を返します。
func NewEntryID(kind domain.EntryKind) (string, error) {
	prefix, ok := entryPrefixes[kind]
	if !ok {
		return "", fmt.Errorf("不明なライブラリ種別です: '%s'", kind)
	}
	return prefix + "_" + uuid.NewString(), nil
}

// AddEntry は空のブロックを持つエントリをライブラリに追加し、発行した ID を返します。
func AddEntry(lib *domain.Library, kind domain.EntryKind, name string) (string, error) {
	id, err := NewEntryID(kind)
	if err != nil {
		return "", err
	}
	if !lib.Put(kind, id, domain.BlockSet{Name: name, Blocks: domain.SemanticBlocks{}}) {
		return "", fmt.Errorf("エントリの追加に失敗しました: kind=%s", kind)
	}
	return id, nil
}

// RemoveEntry はライブラリからエントリを削除します。
func RemoveEntry(lib *domain.Library, kind domain.EntryKind, id string) error {
	if !lib.Delete(kind, id) {
		return fmt.Errorf("%w: kind=%s, id=%s", ErrEntryNotFound, kind, id)
	}
	return nil
}

// UpdateEntryField はエントリのフィールド値を書き換えます。空文字を渡すとフィールドを取り除きます。
func UpdateEntryField(lib *domain.Library, kind domain.EntryKind, id string, field domain.Field, value string) error {
	if !domain.IsKnownField(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	set := lib.Entries(kind).Find(id)
	if set == nil {
		return fmt.Errorf("%w: kind=%s, id=%s", ErrEntryNotFound, kind, id)
	}

	blocks := set.Blocks.Clone()
	if blocks == nil {
		blocks = domain.SemanticBlocks{}
	}
	if value == "" {
		delete(blocks, field)
	} else {
		blocks[field] = value
	}
	lib.Put(kind, id, domain.BlockSet{Name: set.Name, Blocks: blocks})
	return nil
}
