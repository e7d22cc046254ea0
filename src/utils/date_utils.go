package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// YearFromDate returns the third slash-separated component of a M/D/YYYY date
// as an integer. Month and day are not validated.
func YearFromDate(date string) (int, error) {
	parts := strings.Split(date, "/")
	if len(parts) < 3 {
		return 0, fmt.Errorf("date %q does not have the form M/D/YYYY", date)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return 0, fmt.Errorf("date %q has a non-numeric year: %w", date, err)
	}
	return year, nil
}
