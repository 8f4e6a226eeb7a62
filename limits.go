package pagekit

const (
	NoLimit      = -1
	MaxLimit     = 100
	DefaultLimit = 10

	// DefaultPage and DefaultSize are the page-number pagination defaults.
	// DefaultLimit above belongs to the cursor pager, which keeps the smaller
	// historical default.
	DefaultPage = 1
	DefaultSize = 50
)

func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	if limit <= 0 {
		return DefaultLimit, false
	} else if limit > maxLimit {
		return maxLimit, false
	}

	return limit, true
}

func NormalizeLimitMax(limit int, maxLimit int) int {
	ret, _ := IsNormalizedLimitMax(limit, maxLimit)
	return ret
}

func NormalizeLimit(limit int) int {
	return NormalizeLimitMax(limit, MaxLimit)
}
