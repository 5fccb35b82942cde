package utils

// IsValidInterval reports whether interval names a ClickHouse toStartOf* bucket.
func IsValidInterval(interval string) bool {
	switch interval {
	case "Minute", "Hour", "Day", "Week", "Month", "Quarter", "Year":
		return true
	default:
		return false
	}
}

// StringPtr returns nil for the empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NonEmpty returns nil when p is nil or points at an empty string.
func NonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
