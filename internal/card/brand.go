package card

import "strings"

// Brand prefix rules. First match wins, so order matters: jcb's 35 must be
// tested against amex/diners ranges that also start with 3.
var brandRules = []struct {
	brand    string
	prefixes []string
}{
	{"visa", []string{"4"}},
	{"mastercard", []string{"51", "52", "53", "54", "55"}},
	{"amex", []string{"34", "37"}},
	{"discover", []string{"6011", "65"}},
	{"diners", []string{"30", "36", "38", "39"}},
	{"jcb", []string{"35"}},
}

// DetectBrand maps an unmasked card number to its brand. Unknown prefixes
// return "unknown".
func DetectBrand(cardNumber string) string {
	for _, rule := range brandRules {
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(cardNumber, prefix) {
				return rule.brand
			}
		}
	}
	return "unknown"
}

// Last4 returns the trailing four digits of a card number, or the whole
// number when it is shorter than four digits.
func Last4(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
