package rules

const binDigits = 6

// BINOf returns the leading issuer digits of number, at most six.
func BINOf(number string) string {
	if len(number) <= binDigits {
		return number
	}
	return number[:binDigits]
}
