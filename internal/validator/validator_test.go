package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_StartsValid(t *testing.T) {
	v := New()

	assert.True(t, v.Valid(), "New validator should have no errors")
	assert.Empty(t, v.Errors)
}

func TestValidator_CheckRecordsOnlyFailures(t *testing.T) {
	// Arrange
	v := New()

	// Act
	v.Check(true, "first_name", "First name must be specified.")
	v.Check(false, "family_name", "Family name must be specified.")

	// Assert
	assert.False(t, v.Valid())
	require.Len(t, v.Errors, 1)
	assert.Equal(t, "family_name", v.Errors[0].Field)
	assert.Equal(t, "Family name must be specified.", v.Errors[0].Message)
}

func TestValidator_PreservesCheckOrder(t *testing.T) {
	// Arrange
	v := New()

	// Act
	v.AddError("title", "Title must not be empty")
	v.AddError("summary", "Summary must not be empty")
	v.AddError("isbn", "ISBN must not be empty")

	// Assert
	assert.Equal(t, []string{
		"Title must not be empty",
		"Summary must not be empty",
		"ISBN must not be empty",
	}, v.Messages(), "Messages should come back in the order the rules ran")
}

func TestMatches_Email(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			assert.Equal(t, tc.valid, Matches(tc.email, EmailRX))
		})
	}
}

func TestMatches_Alpha(t *testing.T) {
	assert.True(t, Matches("Rothfuss", AlphaRX))
	assert.False(t, Matches("Rothfuss3", AlphaRX))
	assert.False(t, Matches("", AlphaRX))
	assert.False(t, Matches("two words", AlphaRX))
}

func TestIn(t *testing.T) {
	assert.True(t, In("Loaned", "Available", "Maintenance", "Loaned", "Reserved"))
	assert.False(t, In("Lost", "Available", "Maintenance", "Loaned", "Reserved"))
	assert.False(t, In("loaned", "Loaned"), "In should be case-sensitive")
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate(""), "Empty value is allowed for optional dates")
	assert.True(t, ValidDate("1973-06-06"))
	assert.False(t, ValidDate("06/06/1973"))
	assert.False(t, ValidDate("1973-13-01"))
	assert.False(t, ValidDate("not a date"))
}

func TestParseDate(t *testing.T) {
	assert.Nil(t, ParseDate(""), "Empty value should parse to nil")
	assert.Nil(t, ParseDate("garbage"))

	parsed := ParseDate("1920-01-02")
	require.NotNil(t, parsed)
	assert.Equal(t, 1920, parsed.Year())
	assert.Equal(t, 2, parsed.Day())
}
