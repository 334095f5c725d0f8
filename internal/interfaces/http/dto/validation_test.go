package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRIFPattern(t *testing.T) {
	valid := []string{
		"J-12345678-9",
		"V-00012345-0",
		"G-20000000-1",
		"J123456789",
	}
	for _, rif := range valid {
		assert.True(t, rifPattern.MatchString(rif), rif)
	}

	invalid := []string{
		"",
		"X-12345678-9",
		"J-1234567-9",
		"J-123456789-9",
		"12345678-9",
		"J-12345678-A",
	}
	for _, rif := range invalid {
		assert.False(t, rifPattern.MatchString(rif), rif)
	}
}
