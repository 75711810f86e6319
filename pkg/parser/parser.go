package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat は拡張子から文書形式を判定できないときに返されます。
var ErrUnsupportedFormat = errors.New("未対応のファイル形式です")

// StdinPath は標準入力から読み込むことを表すパスです。
const StdinPath = "-"

// Format はプロジェクト文書の形式です。
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Parser はプロジェクト文書を解析するためのインターフェースを定義します。
type Parser interface {
	ParseFromPath(ctx context.Context, path string) (*domain.ProjectData, error)
}

// ProjectParser は JSON / YAML / Markdown 形式のプロジェクト文書を解析する構造体です。
type ProjectParser struct {
	stdin    io.Reader
	markdown *MarkdownParser
}

var _ Parser = (*ProjectParser)(nil)

// NewProjectParser は新しい ProjectParser インスタンスを生成します。
// stdin は StdinPath が指定されたときの入力元で、nil なら os.Stdin を使います。
func NewProjectParser(stdin io.Reader) *ProjectParser {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &ProjectParser{stdin: stdin, markdown: NewMarkdownParser()}
}

// DetectFormat はパスの拡張子から文書形式を判定します。StdinPath は JSON として扱います。
func DetectFormat(path string) (Format, error) {
	if path == StdinPath {
		return FormatJSON, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseFromPath はローカルファイルまたは標準入力から文書を読み込み、domain.ProjectData を返します。
func (p *ProjectParser) ParseFromPath(ctx context.Context, path string) (*domain.ProjectData, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "プロジェクトファイルを読み込んでいます", "path", path, "format", format)

	var r io.Reader
	if path == StdinPath {
		r = p.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("プロジェクトファイルのオープンに失敗しました (%s): %w", path, err)
		}
		defer f.Close()
		r = f
	}

	if format == FormatMarkdown {
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("アウトラインの読み込みに失敗しました (%s): %w", path, err)
		}
		return p.markdown.Parse(path, string(content))
	}
	return Parse(r, format)
}

// Parse は r から format 形式の文書を読み込みます。
// YAML はいったん JSON に正規化してからデコードするので、タグとフレーム形式の判別は JSON と同じになるのだ。
func Parse(r io.Reader, format Format) (*domain.ProjectData, error) {
	switch format {
	case FormatJSON:
		project := &domain.ProjectData{}
		if err := json.NewDecoder(r).Decode(project); err != nil {
			return nil, fmt.Errorf("プロジェクトJSONのパースに失敗しました: %w", err)
		}
		return project, nil

	case FormatYAML:
		var doc any
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("プロジェクトYAMLのパースに失敗しました: %w", err)
		}
		data, err := json.Marshal(normalizeYAML(doc))
		if err != nil {
			return nil, fmt.Errorf("YAMLからJSONへの変換に失敗しました: %w", err)
		}
		return domain.GetProject(data)

	case FormatMarkdown:
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("アウトラインの読み込みに失敗しました: %w", err)
		}
		return NewMarkdownParser().Parse("", string(content))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// LoadFile は path の文書を読み込むショートカットです。
func LoadFile(ctx context.Context, path string) (*domain.ProjectData, error) {
	return NewProjectParser(nil).ParseFromPath(ctx, path)
}

// normalizeYAML は文字列以外のキーを持つマップを JSON で扱える形に変換します。
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalizeYAML(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalizeYAML(child)
		}
		return t
	default:
		return v
	}
}
