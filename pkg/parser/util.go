package parser

import (
	"log/slog"
	"net/url"
	"path"
)

// resolveBaseURL はアウトラインの URL から画像参照用のベース URL を導き出すのだ。
// ローカルパスの場合は空文字を返し、相対パスはそのまま残します。
func resolveBaseURL(outlineURL string) string {
	if outlineURL == "" {
		return ""
	}

	u, err := url.Parse(outlineURL)
	if err != nil {
		slog.Warn("アウトラインURLの解析に失敗したのだ",
			"url", outlineURL,
			"error", err,
		)
		return ""
	}

	dir := path.Dir(u.Path)
	if dir == "." || dir == "/" {
		dir = ""
	}

	switch u.Scheme {
	case "gs":
		// GCS は公開 URL 形式に変換するのだ
		baseURL := &url.URL{
			Scheme: "https",
			Host:   "storage.googleapis.com",
			Path:   path.Join(u.Host, dir) + "/",
		}
		return baseURL.String()

	case "http", "https":
		u.Path = dir + "/"
		u.RawQuery = ""
		u.Fragment = ""
		return u.String()

	default:
		slog.Debug("URLスキームがないためベースURLの解決をスキップするのだ", "scheme", u.Scheme)
		return ""
	}
}

// resolveFullPath はベースURLと相対パスから絶対URLを構築するのだ。
func resolveFullPath(baseURL string, refPath string) string {
	if refPath == "" {
		return ""
	}

	// Scheme と Host があれば絶対 URL とみなす
	u, err := url.Parse(refPath)
	if err == nil && u.Scheme != "" && u.Host != "" {
		return refPath
	}

	return baseURL + refPath
}
