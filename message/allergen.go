package message

import (
	"strings"

	"sodexo-webhook/menu"
)

const (
	peanutKeyword = "pähkinä"
	peanutMarker  = "🥜"
)

// HasPeanuts reports whether a course's additionalDietInfo lists peanuts in
// its allergens string. Any other shape reports false.
func HasPeanuts(dietInfo menu.Value) bool {
	allergens, ok := dietInfo.Get("allergens").String()
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(allergens), peanutKeyword)
}
