package store

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrClosed はクローズ済みのストアを操作したときに返されます。
var ErrClosed = errors.New("ストアは既にクローズされています")

// Repository は文字列キーと文字列値を保持するキーバリューストアの契約です。
// 編集セッションの状態（キャッシュ済みの画像 URL やプロンプト、現在のプロジェクト）はすべてここに置きます。
type Repository interface {
	// Get はキーに対応する値を返します。キーが存在しなければ ok は false です。
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set はキーに値を保存します。既存の値は上書きされます。
	Set(ctx context.Context, key, value string) error
	// Remove はキーを削除します。存在しないキーの削除はエラーにしません。
	Remove(ctx context.Context, key string) error
	// Keys は prefix で始まるキーを昇順で返します。
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Store はクローズ可能な Repository です。
type Store interface {
	Repository
	io.Closer
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// Open は path が空ならメモリ上のストアを、そうでなければ SQLite ファイルのストアを開きます。
func Open(path string) (Store, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}
	s, err := NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("ストアのオープンに失敗しました (%s): %w", path, err)
	}
	return s, nil
}

// RemoveByPrefix は prefixes のいずれかで始まるキーをすべて削除し、削除した件数を返します。
func RemoveByPrefix(ctx context.Context, repo Repository, prefixes ...string) (int, error) {
	removed := 0
	for _, prefix := range prefixes {
		keys, err := repo.Keys(ctx, prefix)
		if err != nil {
			return removed, fmt.Errorf("キー一覧の取得に失敗しました (prefix=%s): %w", prefix, err)
		}
		for _, key := range keys {
			if err := repo.Remove(ctx, key); err != nil {
				return removed, fmt.Errorf("キーの削除に失敗しました (%s): %w", key, err)
			}
			removed++
		}
	}
	return removed, nil
}
