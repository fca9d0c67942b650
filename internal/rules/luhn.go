package rules

// luhnDoubled maps a digit to its doubled Luhn contribution.
var luhnDoubled = [10]int{0, 2, 4, 6, 8, 1, 3, 5, 7, 9}

// LuhnValid reports whether number passes the Luhn check. Empty input and any
// non-digit byte fail.
func LuhnValid(number string) bool {
	if number == "" {
		return false
	}

	total := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		ch := number[i]
		if ch < '0' || ch > '9' {
			return false
		}
		d := int(ch - '0')
		if double {
			total += luhnDoubled[d]
		} else {
			total += d
		}
		double = !double
	}
	return total%10 == 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
