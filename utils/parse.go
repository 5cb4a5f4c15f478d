package utils

import "strconv"

func ParseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParsePage returns (page, limit) from raw query values with defaults.
func ParsePage(pageStr, limitStr string) (int, int) {
	page := ParseInt(pageStr)
	if page < 1 {
		page = 1
	}
	limit := ParseInt(limitStr)
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
