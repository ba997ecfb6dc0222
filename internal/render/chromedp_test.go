package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	rgba, err := parseHexColor("#ffffff")
	require.NoError(t, err)
	assert.Equal(t, int64(255), rgba.R)
	assert.Equal(t, int64(255), rgba.G)
	assert.Equal(t, int64(255), rgba.B)
	assert.Equal(t, float64(1), rgba.A)

	rgba, err = parseHexColor("102a3f")
	require.NoError(t, err)
	assert.Equal(t, int64(0x10), rgba.R)
	assert.Equal(t, int64(0x2a), rgba.G)
	assert.Equal(t, int64(0x3f), rgba.B)

	_, err = parseHexColor("#fff")
	assert.Error(t, err)

	_, err = parseHexColor("nothex")
	assert.Error(t, err)
}
