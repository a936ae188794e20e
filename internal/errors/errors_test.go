package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "Error: boom", Format(stderrors.New("boom")))
	assert.Equal(t, "Error: goal 7 not found", Formatf("goal %d not found", 7))
}

func TestNotice(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: stderrors.New("goal title is required"), want: "Goal title is required."},
		{
			name: "wrapped keeps outer message",
			err:  fmt.Errorf("failed to synthesize speech: %w", stderrors.New("status 401")),
			want: "Failed to synthesize speech.",
		},
		{name: "multi-line", err: stderrors.New("first line\nsecond"), want: "First line."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Notice(tt.err))
		})
	}
}
