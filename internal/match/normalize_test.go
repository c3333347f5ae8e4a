package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"isActive", "isactive"},
		{"is_active", "isactive"},
		{"is-active", "isactive"},
		{"IS_ACTIVE", "isactive"},
		{"XMLParser", "xmlparser"},
		{"getHTTPResponse", "gethttpresponse"},
		{"profile.firstName", "profilefirstname"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"OrderID", []string{"Order", "ID"}},
		{"customerName", []string{"customer", "Name"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"getHTTPResponse", []string{"get", "HTTP", "Response"}},
		{"order_id", []string{"order", "id"}},
		{"first name", []string{"first", "name"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"", nil},
		{"AbC", []string{"Ab", "C"}},
		{"ABcD", []string{"A", "Bc", "D"}},
		{"parseURL", []string{"parse", "URL"}},
		{"__login__", []string{"login"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}
