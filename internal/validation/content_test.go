package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSlug(t *testing.T) {
	t.Parallel()
	tests := []struct {
		slug    string
		wantErr bool
	}{
		{"tech", false},
		{"web-development", false},
		{"go2", false},
		{"", true},
		{"Tech", true},
		{"-tech", true},
		{"tech-", true},
		{"web--dev", true},
		{"web dev", true},
		{strings.Repeat("a", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTitleAndContent(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateTitle("Hello"))
	assert.Error(t, ValidateTitle("   "))
	assert.Error(t, ValidateTitle(strings.Repeat("x", 201)))
	assert.NoError(t, ValidateTitle(strings.Repeat("é", 200)))

	assert.NoError(t, ValidateContent("body"))
	assert.Error(t, ValidateContent("\n\t"))

	assert.NoError(t, ValidateName("Tech"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateFullName(strings.Repeat("n", 121)))
}
