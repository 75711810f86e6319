package prompt

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	ModeFull    = "full"
	ModeCompact = "compact"
)

//go:embed full.md.tmpl
var FullSheet string

//go:embed compact.md.tmpl
var CompactSheet string

// modeTemplates はモードとプロンプトシートのテンプレート文字列を紐づけるマップなのだ。
var modeTemplates = map[string]string{
	ModeFull:    FullSheet,
	ModeCompact: CompactSheet,
}

// GetSheetByMode は、指定されたモードに対応するプロンプトシートのテンプレートを返すのだ。
func GetSheetByMode(mode string) (string, error) {
	content, ok := modeTemplates[mode]
	if !ok {
		supported := slices.Collect(maps.Keys(modeTemplates))
		slices.Sort(supported)

		return "", fmt.Errorf("サポートされていないモード: '%s'。サポートされているモードは [%s] です",
			mode, strings.Join(supported, ", "))
	}

	if content == "" {
		return "", fmt.Errorf("モード '%s' に対応するテンプレートが空なのだ。embed設定を確認してほしいのだ", mode)
	}

	return content, nil
}
