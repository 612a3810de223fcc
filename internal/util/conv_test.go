package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLatest(t *testing.T) {
	assert.True(t, ParseLatest("", false))
	for _, v := range []string{"true", "TRUE", "1", "yes", "Y"} {
		assert.True(t, ParseLatest(v, true), v)
	}
	for _, v := range []string{"false", "0", "no", "", "all"} {
		assert.False(t, ParseLatest(v, true), v)
	}
}

