package postgres

import "strconv"

const defaultListLimit = 50

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
