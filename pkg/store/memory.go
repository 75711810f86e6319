package store

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/patrickmn/go-cache"
)

// MemoryStore は go-cache をバックエンドにしたプロセス内のストアです。
// 値は期限切れにならず、プロセス終了とともに消えます。
type MemoryStore struct {
	items  *cache.Cache
	closed atomic.Bool
}

// NewMemoryStore は空の MemoryStore を生成します。
func NewMemoryStore() *MemoryStore {
	// 期限切れがないのでクリーンアップ用のゴルーチンは不要なのだ
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.check(ctx); err != nil {
		return "", false, err
	}
	v, ok := s.items.Get(key)
	if !ok {
		return "", false, nil
	}
	str, ok := v.(string)
	return str, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	s.items.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	s.items.Delete(key)
	return nil
}

func (s *MemoryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var keys []string
	for key := range s.items.Items() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close は保持しているすべての値を破棄します。以降の操作は ErrClosed を返します。
func (s *MemoryStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.items.Flush()
	return nil
}

func (s *MemoryStore) check(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}
