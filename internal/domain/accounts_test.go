package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedAccount(t *testing.T) {
	assert.True(t, IsSupportedAccount("NPI"))
	assert.True(t, IsSupportedAccount("npi"))
	assert.True(t, IsSupportedAccount("sml"))
	assert.False(t, IsSupportedAccount("ZZZ"))
	assert.False(t, IsSupportedAccount(""))
}

func TestNormalizeAccounts(t *testing.T) {
	valid, invalid := NormalizeAccounts([]string{"npi", "ZZZ", "Lt", "md", "unknown"})

	assert.Equal(t, []string{"NPI", "LT", "MD"}, valid)
	assert.Equal(t, []string{"ZZZ", "unknown"}, invalid)
}

func TestNormalizeAccountsAllInvalid(t *testing.T) {
	valid, invalid := NormalizeAccounts([]string{"foo", "bar"})

	assert.Empty(t, valid)
	assert.Equal(t, []string{"foo", "bar"}, invalid)
}
