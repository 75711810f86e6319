package domain

// Find は ID に一致する BlockSet を返します。見つからなければ nil です。
func (m BlockSetMap) Find(id string) *BlockSet {
	if m == nil {
		return nil
	}
	if set, ok := m[id]; ok {
		res := set
		return &res
	}
	return nil
}

// BlocksOf は ID に対応するブロックを返します。
// 解決できない ID の場合は空の SemanticBlocks を返し、決してエラーにはしません。
func (m BlockSetMap) BlocksOf(id string) SemanticBlocks {
	if set := m.Find(id); set != nil && set.Blocks != nil {
		return set.Blocks
	}
	return SemanticBlocks{}
}

// CharacterBlocks はキャラクターのベースブロックを返します。
func (l Library) CharacterBlocks(id string) SemanticBlocks {
	return l.Characters.BlocksOf(id)
}

// LocationBlocks は場所のベースブロックを返します。
func (l Library) LocationBlocks(id string) SemanticBlocks {
	return l.Locations.BlocksOf(id)
}

// Entries は種別に対応するマップを返すのだ。
func (l Library) Entries(kind EntryKind) BlockSetMap {
	switch kind {
	case EntryKindCharacter:
		return l.Characters
	case EntryKindLocation:
		return l.Locations
	case EntryKindProp:
		return l.Props
	default:
		return nil
	}
}

// entriesRef は種別に対応するマップへのポインタを返します。nil マップはここで初期化するのだ。
func (l *Library) entriesRef(kind EntryKind) *BlockSetMap {
	var ref *BlockSetMap
	switch kind {
	case EntryKindCharacter:
		ref = &l.Characters
	case EntryKindLocation:
		ref = &l.Locations
	case EntryKindProp:
		ref = &l.Props
	default:
		return nil
	}
	if *ref == nil {
		*ref = make(BlockSetMap)
	}
	return ref
}

// Put は種別 kind のマップに BlockSet を登録します。既存の ID は上書きされます。
func (l *Library) Put(kind EntryKind, id string, set BlockSet) bool {
	ref := l.entriesRef(kind)
	if ref == nil || id == "" {
		return false
	}
	(*ref)[id] = set
	return true
}

// Delete は種別 kind のマップから ID を削除し、削除できたかを返します。
func (l *Library) Delete(kind EntryKind, id string) bool {
	m := l.Entries(kind)
	if _, ok := m[id]; !ok {
		return false
	}
	delete(m, id)
	return true
}
