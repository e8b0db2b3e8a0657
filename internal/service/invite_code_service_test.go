package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := randomCode(inviteCodeLength)
		require.NoError(t, err)
		assert.Len(t, code, inviteCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(inviteCodeAlphabet, r), "unexpected char %q", r)
		}
		seen[code] = true
	}
	// 100 次生成撞码概率可以忽略
	assert.Greater(t, len(seen), 95)
}
