package utils

import "strings"

// DeviceInfo is the coarse classification derived from a User-Agent header.
type DeviceInfo struct {
	Device  string
	Browser string
	OS      string
}

type uaRule struct {
	value   string
	needles []string
}

// Rules are evaluated in order and the first match wins. Chrome precedes Safari
// and Edge because their UA strings also contain "Safari" or "Chrome".
var (
	deviceRules = []uaRule{
		{"mobile", []string{"mobile", "android", "iphone", "ipad"}},
		{"tablet", []string{"tablet"}},
	}
	browserRules = []uaRule{
		{"Chrome", []string{"chrome"}},
		{"Firefox", []string{"firefox"}},
		{"Safari", []string{"safari"}},
		{"Edge", []string{"edge"}},
	}
	osRules = []uaRule{
		{"Windows", []string{"windows"}},
		{"macOS", []string{"mac os"}},
		{"Linux", []string{"linux"}},
		{"Android", []string{"android"}},
		{"iOS", []string{"ios", "iphone", "ipad"}},
	}
)

// ParseUserAgent classifies a User-Agent string by case-insensitive substring
// matching. An empty string yields desktop/unknown/unknown.
func ParseUserAgent(ua string) DeviceInfo {
	lower := strings.ToLower(ua)
	return DeviceInfo{
		Device:  matchRule(lower, deviceRules, "desktop"),
		Browser: matchRule(lower, browserRules, "unknown"),
		OS:      matchRule(lower, osRules, "unknown"),
	}
}

func matchRule(ua string, rules []uaRule, fallback string) string {
	for _, r := range rules {
		for _, n := range r.needles {
			if strings.Contains(ua, n) {
				return r.value
			}
		}
	}
	return fallback
}
