package utils

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// TruncateLimit returns how many of total items to keep for a limit where
// zero or a negative limit means "all".
func TruncateLimit(total, limit int) int {
	if limit <= 0 {
		return total
	}
	return Min(total, limit)
}
