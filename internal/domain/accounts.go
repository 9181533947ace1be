package domain

import "strings"

// SupportedAccounts is the closed set of Instagram accounts this service
// exports metrics for.
var SupportedAccounts = []string{"NPI", "LT", "MD", "RE", "SML"}

func IsSupportedAccount(name string) bool {
	upper := strings.ToUpper(name)
	for _, account := range SupportedAccounts {
		if account == upper {
			return true
		}
	}
	return false
}

// NormalizeAccounts uppercases the requested account names and splits them
// into supported and unsupported sets, preserving request order.
func NormalizeAccounts(requested []string) (valid []string, invalid []string) {
	for _, name := range requested {
		if IsSupportedAccount(name) {
			valid = append(valid, strings.ToUpper(name))
		} else {
			invalid = append(invalid, name)
		}
	}
	return valid, invalid
}
