package cache

import (
	"testing"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{
			name:  "single part",
			parts: []string{"test"},
		},
		{
			name:  "multiple parts",
			parts: []string{"test", "key", "with", "many", "parts"},
		},
		{
			name:  "empty parts",
			parts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed1 := HashKey(tt.parts...)
			hashed2 := HashKey(tt.parts...)

			// Hash should be consistent
			if hashed1 != hashed2 {
				t.Errorf("HashKey() should be consistent, got %s and %s", hashed1, hashed2)
			}

			// Hash should be 32 characters (MD5 hex)
			if len(hashed1) != 32 {
				t.Errorf("HashKey() should return 32 character hex string, got length %d", len(hashed1))
			}
		})
	}
}

func TestCacheNamespaceKey(t *testing.T) {
	c := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "gym:test",
		},
		{
			name:     "key with colon",
			key:      "leaderboard:5",
			expected: "gym:leaderboard:5",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "gym:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLeaderboardKey(t *testing.T) {
	if got := LeaderboardKey(42); got != "leaderboard:42" {
		t.Errorf("LeaderboardKey(42) = %v, want leaderboard:42", got)
	}
}

func TestDisabledCacheOperations(t *testing.T) {
	var c *Cache

	if _, err := c.Get(nil, "key"); err != ErrCacheDisabled {
		t.Errorf("Get on nil cache: got %v, want ErrCacheDisabled", err)
	}
	if err := c.Set(nil, "key", "value", 0); err != ErrCacheDisabled {
		t.Errorf("Set on nil cache: got %v, want ErrCacheDisabled", err)
	}
	if err := c.Delete(nil, "key"); err != ErrCacheDisabled {
		t.Errorf("Delete on nil cache: got %v, want ErrCacheDisabled", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil cache: got %v, want nil", err)
	}
}
