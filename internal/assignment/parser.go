package assignment

import "strings"

// ExtractPrefix returns the uppercased leading alphabetic run of a property
// reference, e.g. "PR1234" -> "PR". Empty input or a reference starting with a
// non-letter yields "".
func ExtractPrefix(reference string) string {
	reference = strings.TrimSpace(reference)
	end := 0
	for _, r := range reference {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return ""
	}
	return strings.ToUpper(reference[:end])
}
