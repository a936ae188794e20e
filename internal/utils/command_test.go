package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandCommand(t *testing.T) {
	got, err := ExpandCommand(
		[]string{"rec", "-q", "-r", "{rate}", "{out}", "trim", "0", "{seconds}", "{missing}"},
		map[string]string{"out": "/tmp/clip.wav", "seconds": "15", "rate": "16000"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"rec", "-q", "-r", "16000", "/tmp/clip.wav", "trim", "0", "15", "{missing}"}, got)

	_, err = ExpandCommand(nil, nil)
	assert.Error(t, err)
	_, err = ExpandCommand([]string{" "}, nil)
	assert.Error(t, err)
}
