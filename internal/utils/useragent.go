package utils

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

// ParseUserAgent extracts device information from a User-Agent string
// for the booking audit trail.
func ParseUserAgent(userAgent string) map[string]string {
	if userAgent == "" {
		return map[string]string{
			"device_type": "unknown",
			"os":          "Unknown",
			"browser":     "Unknown",
		}
	}

	parser := ua.New(userAgent)
	browser, browserVer := parser.Browser()
	if browser == "" {
		browser = "Unknown"
	}

	info := map[string]string{
		"device_type": deviceType(parser),
		"os":          osName(parser),
		"browser":     browser,
	}
	if browserVer != "" {
		info["browser_version"] = browserVer
	}
	if parser.Bot() {
		info["bot"] = "true"
	}
	return info
}

func deviceType(parser *ua.UserAgent) string {
	if !parser.Mobile() {
		return "desktop"
	}
	if isTablet(parser.UA()) {
		return "tablet"
	}
	return "mobile"
}

func isTablet(userAgent string) bool {
	lower := strings.ToLower(userAgent)
	for _, indicator := range []string{"ipad", "tablet", "kindle", "sm-t"} {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

func osName(parser *ua.UserAgent) string {
	info := parser.OSInfo()
	if info.Name == "" {
		return "Unknown"
	}
	if info.Version != "" {
		return info.Name + " " + info.Version
	}
	return info.Name
}
