package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractorPrefixedMobile(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plus prefix", "call me at +919876543210 now", "9876543210"},
		{"country code", "mera number 919876543210 hai", "9876543210"},
		{"trunk zero", "number 09876543210 pe call karo", "9876543210"},
		{"bare", "9876543210 pe paisa bhejo", "9876543210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intel := e.Extract(tt.text)
			require.Len(t, intel.Mobiles, 1)
			assert.Equal(t, tt.want, intel.Mobiles[0])
			assert.Empty(t, intel.Accounts, "mobile must not leak into accounts")
		})
	}
}

func TestExtractorAccountNumber(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("Mera account 50100123456789 hai")
	assert.Equal(t, []string{"50100123456789"}, intel.Accounts)
	assert.Empty(t, intel.Mobiles)
}

func TestExtractorMobileAndAccountTogether(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("account 50100123456789, phone +919876543210")
	assert.Equal(t, []string{"9876543210"}, intel.Mobiles)
	assert.Equal(t, []string{"50100123456789"}, intel.Accounts)
}

func TestExtractorDeduplicatesMobiles(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("9876543210 pe bhejo, haan 9876543210 pe hi")
	assert.Equal(t, []string{"9876543210"}, intel.Mobiles)
}

func TestExtractorIFSCUppercased(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("ifsc sbin0001234 hai")
	assert.Equal(t, "SBIN0001234", intel.IFSC)
}

func TestExtractorUPI(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("paisa ramesh.kumar@paytm pe bhejo")
	assert.Equal(t, "ramesh.kumar@paytm", intel.UPI)
}

func TestExtractorLinksPreserveOrder(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("click https://evil.example/pay then bit.ly/xyz then www.fake.example")
	require.Len(t, intel.Links, 3)
	assert.Equal(t, "https://evil.example/pay", intel.Links[0])
	assert.Contains(t, intel.Links[1], "bit.ly")
	assert.Contains(t, intel.Links[2], "www.fake.example")
}

func TestExtractorName(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("My name is Rajesh Kumar from the bank")
	assert.Equal(t, "Rajesh Kumar", intel.Name)

	intel = e.Extract("I am Officer Sharma calling from CBI")
	assert.Equal(t, "Sharma", intel.Name)
}

func TestExtractorLongDigitRunNotSplit(t *testing.T) {
	e := NewExtractor()

	// 19 digits: too long for an account, and no 10-digit slice of it
	// should be claimed as a mobile.
	intel := e.Extract("ref 1234567890123456789 noted")
	assert.Empty(t, intel.Mobiles)
	assert.Empty(t, intel.Accounts)
}

func TestExtractorLetterAdjacentRunNotAnAccount(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("order ref1234567890123 confirm karo")
	assert.Empty(t, intel.Accounts, "digit runs glued to letters are not account numbers")
	assert.Empty(t, intel.Mobiles)

	// A mobile still counts even when prefixed by letters.
	intel = e.Extract("ref9876543210 pe call karo")
	assert.Equal(t, []string{"9876543210"}, intel.Mobiles)
}

func TestExtractorEmptyInput(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("")
	assert.Empty(t, intel.Mobiles)
	assert.Empty(t, intel.Accounts)
	assert.Empty(t, intel.Links)
	assert.Empty(t, intel.IFSC)
	assert.Empty(t, intel.UPI)
	assert.Empty(t, intel.Name)
}

func TestExtractorPure(t *testing.T) {
	e := NewExtractor()

	const text = "account 50100123456789, IFSC SBIN0001234, call 9876543210"
	first := e.Extract(text)
	second := e.Extract(text)
	assert.Equal(t, first, second)
}
