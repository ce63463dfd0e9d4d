package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"international with plus", "+966512345678", "966512345678"},
		{"international with 00", "00966512345678", "966512345678"},
		{"domestic with leading zero", "0512345678", "966512345678"},
		{"bare mobile", "512345678", "966512345678"},
		{"formatted", "+966 51 234 5678", "966512345678"},
		{"dashes", "050-123-4567", "966501234567"},
		{"country code with extra digits", "9665123456789", "966512345678"},
		{"short unknown", "1234", "1234"},
		{"empty", "", ""},
		{"letters only", "abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"+966512345678", "0512345678", "512345678", "00966512345678",
		"966512345678", "1234", "", "05 0123 4567", "9665123456789999",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestLast9(t *testing.T) {
	assert.Equal(t, "512345678", Last9("+966512345678"))
	assert.Equal(t, "512345678", Last9("0512345678"))
	assert.Equal(t, "512345678", Last9("512345678"))
	assert.Equal(t, "12345", Last9("12345"))

	// at least 9 digits in, exactly 9 characters out
	for _, in := range []string{"966512345678", "0512345678", "512345678", "+1 (234) 567-8901 ext 23"} {
		got := Last9(in)
		assert.Len(t, got, 9, "input %q", in)
	}
}
