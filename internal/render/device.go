package render

import "strings"

// mobileTokens are the user-agent platform markers that classify a
// request as mobile.
var mobileTokens = []string{"iphone", "ipod", "ipad", "android"}

// DetectMobile classifies a user-agent string as mobile or not.
// Matching is case-insensitive substring search over a fixed token set.
func DetectMobile(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, token := range mobileTokens {
		if strings.Contains(ua, token) {
			return true
		}
	}
	return false
}
