package parser

import "regexp"

var (
	// TitleRegex は "# タイトル" 形式のタイトル行をキャプチャします。
	TitleRegex = regexp.MustCompile(`^#\s+(.+)`)

	// SceneRegex は "## Scene <id>: <title>" 形式のシーン区切り行をキャプチャします。ID とタイトルは省略できます。
	SceneRegex = regexp.MustCompile(`^##\s+Scene(?:\s+([^\s:]+))?\s*(?::\s*(.*))?$`)

	// FieldRegex は "- key: value" 形式のフィールド行をキャプチャします。
	FieldRegex = regexp.MustCompile(`^\s*-\s*([a-zA-Z_]+):\s*(.+)`)
)
