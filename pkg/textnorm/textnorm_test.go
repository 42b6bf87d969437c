package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jamxon/Korxona/pkg/textnorm"
)

func TestName(t *testing.T) {
	cases := map[string]string{
		"Ko'ylak":         "Ko'ylak",
		"Koʻylak":         "Ko'ylak",
		"Ko’ylak":         "Ko'ylak",
		"Ko`ylak":         "Ko'ylak",
		"  Shim  ":        "Shim",
		"Paxta   mato  A": "Paxta mato A",
	}
	for in, want := range cases {
		assert.Equal(t, want, textnorm.Name(in), in)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, textnorm.Equal("KOʻYLAK", "ko'ylak"))
	assert.True(t, textnorm.Equal(" shim", "Shim"))
	assert.False(t, textnorm.Equal("Shim", "Ko'ylak"))
}
