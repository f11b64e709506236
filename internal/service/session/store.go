package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store 会话存储（内存，闲置超时自动清理）
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore 创建会话存储
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Create 新建空会话
func (s *Store) Create() *Session {
	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess
}

// Get 获取会话
func (s *Store) Get(id string) (*Session, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok
}

// Put 写回会话并刷新过期时间
func (s *Store) Put(sess *Session) {
	s.cache.Set(sess.ID, sess, s.ttl)
}

// Delete 删除会话
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count 当前会话数
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
