package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "all blank",
			input:    []string{"", "  "},
			expected: nil,
		},
		{
			name:     "trims whitespace",
			input:    []string{"  email  ", "phone  "},
			expected: []string{"email", "phone"},
		},
		{
			name:     "keeps first occurrence after trimming",
			input:    []string{"phone", "email", " phone", "email "},
			expected: []string{"phone", "email"},
		},
		{
			name:     "skips blanks between values",
			input:    []string{"email", "", "  ", "phone"},
			expected: []string{"email", "phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestAppendUnique(t *testing.T) {
	t.Run("appends new value", func(t *testing.T) {
		assert.Equal(t, []string{"ord-1", "ord-2"}, AppendUnique([]string{"ord-1"}, "ord-2"))
	})

	t.Run("skips duplicate and keeps order", func(t *testing.T) {
		assert.Equal(t, []string{"ord-1", "ord-2"}, AppendUnique([]string{"ord-1", "ord-2"}, " ord-1 "))
	})

	t.Run("skips blank", func(t *testing.T) {
		assert.Nil(t, AppendUnique(nil, "  "))
	})

	t.Run("starts from nil", func(t *testing.T) {
		assert.Equal(t, []string{"tk-1"}, AppendUnique(nil, "tk-1"))
	})
}
