package forms

import "strings"

// ValidEmail applies the same loose shape check the original site used: the
// address must contain both "@" and ".".
func ValidEmail(email string) bool {
	return email != "" && strings.Contains(email, "@") && strings.Contains(email, ".")
}

// ValidLocalPhone checks an Ethiopian-style number: exactly 10 characters,
// digits only, starting with one of the configured prefixes.
func ValidLocalPhone(phone string, prefixes []string) bool {
	if len(phone) != 10 || !digitsOnly(phone) {
		return false
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(phone, prefix) {
			return true
		}
	}

	return false
}

// localPhoneMessage builds the validation message from the configured
// prefixes so the copy stays accurate if the list changes.
func localPhoneMessage(prefixes []string) string {
	list := strings.Join(prefixes, " or ")
	if list == "" {
		list = "a valid prefix"
	}
	return "Phone number must be 10 digits starting with " + list + "."
}

// ValidInternationalPhone requires a leading "+" country code.
func ValidInternationalPhone(phone string) bool {
	return strings.HasPrefix(phone, "+") && len(phone) > 1
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
