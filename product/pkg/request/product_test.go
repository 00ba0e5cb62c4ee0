package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	commonErrors "github.com/almahera/storefront/internal/errors"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"mens", "mens"},
		{"men", "mens"},
		{"Man", "mens"},
		{"MALE", "mens"},
		{"womens", "womens"},
		{"women", "womens"},
		{"Female", "womens"},
		{"kids", "kids"},
		{"children", "kids"},
		{"trending", "trending"},
		{" trending ", "trending"},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		assert.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseCategoryRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "toys", "mens ", "electronics", "unisex"} {
		if input == "mens " {
			// surrounding whitespace is trimmed, not rejected
			got, err := ParseCategory(input)
			assert.NoError(t, err)
			assert.Equal(t, "mens", got)
			continue
		}
		_, err := ParseCategory(input)
		assert.ErrorIs(t, err, commonErrors.ErrUnknownCategory, input)
	}
}
