package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailPattern(t *testing.T) {
	valid := []string{
		"laura@example.com",
		"first.last@sub.domain.org",
		"user+tag@mail.co",
	}
	for _, email := range valid {
		assert.True(t, CompiledPatterns.Email.MatchString(email), "should accept %q", email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@tld",
		"@example.com",
		"UPPER@EXAMPLE.COM",
	}
	for _, email := range invalid {
		assert.False(t, CompiledPatterns.Email.MatchString(email), "should reject %q", email)
	}
}
