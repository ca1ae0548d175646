package respond

import "regexp"

var (
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.=]+`)
	// header.payload.signature
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)
	// credentials inside a DSN
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
	// password=... in keyword DSNs and query strings
	passwordParamPattern = regexp.MustCompile(`(?i)(password=)[^\s&]+`)
)

// SanitizeError returns the error message with tokens and passwords masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = passwordParamPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
