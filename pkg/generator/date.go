package generator

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate turns a YYYY-MM-DD form value into MM-DD-YYYY. A blank value
// uses now.
func FormatDate(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Format("01-02-2006"), nil
	}

	parts := strings.Split(value, "-")
	if len(parts) != 3 || !digits(parts[0], 4) || !digits(parts[1], 2) || !digits(parts[2], 2) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parts[1] + "-" + parts[2] + "-" + parts[0], nil
}

func digits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ArchiveName is the zip file name for a formatted date.
func ArchiveName(date string) string {
	return "Rollup_Messages_" + date + ".zip"
}

// DraftName is the .eml file name for a customer and formatted date.
func DraftName(stem, date string) string {
	return stem + "_" + date + ".eml"
}

// Subject is the draft subject line.
func Subject(customer, date string) string {
	return customer + " Weekly Rollup " + date
}
