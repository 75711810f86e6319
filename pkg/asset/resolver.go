package asset

import (
	"fmt"
	"strings"
	"time"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultSheetName はプロンプトシートのデフォルト Markdown ファイル名です。
	DefaultSheetName = "prompts.md"
	// DefaultTitle はプロジェクトにタイトルがないときにファイル名に使う名前です。
	DefaultTitle = "project"
	// TimestampLayout はエクスポートファイル名に埋め込む UTC 時刻の書式です。
	TimestampLayout = "2006-01-02T15-04-05"
)

// fileNameReplacer はファイル名に使えない文字を置き換えます。
var fileNameReplacer = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "-", "*", "_", "?", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ExportFileName は "<title>_<YYYY-MM-DDTHH-MM-SS>.json" 形式のファイル名を返します。
// タイトルが空なら DefaultTitle を使い、時刻は UTC に揃えるのだ。
func ExportFileName(title string, now time.Time) string {
	return fmt.Sprintf("%s_%s.json", SanitizeFileName(title), now.UTC().Format(TimestampLayout))
}

// SanitizeFileName はパス区切りなどを取り除いたファイル名を返します。
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(fileNameReplacer.Replace(name))
	if name == "" || name == "." || name == ".." {
		return DefaultTitle
	}
	return name
}
