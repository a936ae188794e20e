package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMatcher(t *testing.T) {
	m := NewMatcher("Hey Phoenix")

	tests := []struct {
		text string
		want bool
	}{
		{"hey phoenix", true},
		{"HEY PHOENIX", true},
		{"Okay, hey, Phoenix! what's the weather", true},
		{"hey phoenixes", false},
		{"they phoenix", false},
		{"phoenix hey", false},
		{"hey", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.text))
		})
	}

	assert.Equal(t, "hey phoenix", m.Phrase())
	assert.False(t, NewMatcher("  ").Match("anything"))
}
