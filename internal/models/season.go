package models

import "strconv"

// FormatSeason turns an 8-digit season identifier encoding a start/end year
// pair into its short display label, e.g. 20232024 -> "23/24". The contract
// is the character slicing of the decimal string (positions 2-4 and 6-8),
// not year arithmetic.
func FormatSeason(seasonID int) string {
	s := strconv.Itoa(seasonID)
	if len(s) != 8 {
		return s
	}
	return s[2:4] + "/" + s[6:8]
}
