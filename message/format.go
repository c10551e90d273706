// Package message turns a menu document into the chat message text.
package message

import (
	"fmt"
	"strings"
	"time"

	"sodexo-webhook/menu"
)

const (
	NothingToday      = "Nothing for today"
	unknownRestaurant = "Unknown restaurant"
	unknownTitle      = "?"
	unknownPrice      = "? €"
)

// Format builds the message for day from doc. It never fails: missing or
// mistyped fields are replaced by placeholders and non-object courses are
// skipped.
func Format(doc menu.Document, day time.Time) string {
	courses, ok := doc.Courses().Entries()
	if !ok {
		return NothingToday
	}

	restaurant := doc.Meta().Get("ref_title").StringOr(unknownRestaurant)

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s Lounas %s**", restaurant, day.Format(menu.DateLayout))
	sb.WriteString("```\n")
	for _, course := range courses {
		item := course.Value
		if !item.IsObject() {
			continue
		}
		marker := ""
		if HasPeanuts(item.Get("additionalDietInfo")) {
			marker = peanutMarker
		}
		fmt.Fprintf(&sb, "%s: %s %s %s\n\n",
			item.Get("title_fi").StringOr(unknownTitle),
			item.Get("price").StringOr(unknownPrice),
			item.Get("dietcodes").StringOr(""),
			marker,
		)
	}
	sb.WriteString("```")
	return sb.String()
}
