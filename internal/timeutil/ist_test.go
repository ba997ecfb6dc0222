package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "01-04-2025", FormatDisplayDate("2025-04-01"))
	assert.Equal(t, "31-12-2024", FormatDisplayDate("2024-12-31"))
	// Unparseable input passes through untouched.
	assert.Equal(t, "", FormatDisplayDate(""))
	assert.Equal(t, "04/01/2025", FormatDisplayDate("04/01/2025"))
}
