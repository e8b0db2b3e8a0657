package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswersMatch(t *testing.T) {
	cases := []struct {
		user    string
		correct string
		want    bool
	}{
		{"A", "A", true},
		{"a", "A", true},
		{" A ", "A", true},
		{"B", "A", false},
		{"AB", "BA", true},
		{"ABD", "ABC", false},
		{"", "A", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, answersMatch(c.user, c.correct), "user=%q correct=%q", c.user, c.correct)
	}
}
