package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_PutGet(t *testing.T) {
	s := New[[]string](time.Minute)
	k := Key("token-a", "page", "2")

	_, ok := s.Get(k)
	assert.False(t, ok)

	s.Put(k, []string{"w1", "w2"})
	got, ok := s.Get(k)
	assert.True(t, ok)
	assert.Equal(t, []string{"w1", "w2"}, got)

	_, ok = s.Get(Key("token-b", "page", "2"))
	assert.False(t, ok, "another session must not see the entry")
	_, ok = s.Get(Key("token-a", "page", "3"))
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s := New[int](time.Minute)
	s.now = func() time.Time { return now }

	s.Put("a", 1)
	now = now.Add(2 * time.Minute)
	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Put("b", 2)
	assert.Equal(t, 1, s.Len(), "expired entries are dropped on Put")
}

func TestKey_DoesNotContainToken(t *testing.T) {
	k := Key("secret-token")
	assert.NotContains(t, k, "secret-token")
	assert.Len(t, k, 64)
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}
