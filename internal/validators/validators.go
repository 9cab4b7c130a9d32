// Package validators holds the input rules shared by the REST API and the
// booking dialog. The dialog re-prompts on any rejection, so these must be
// usable offline.
package validators

import (
	"regexp"
	"time"
)

var (
	// Belgian plate, e.g. "1-ABC-123".
	licensePlateRe = regexp.MustCompile(`^\d-[a-zA-Z]{3}-\d{3}$`)

	emailRe = regexp.MustCompile(`^[\w\.-]+@[a-zA-Z\d\.-]+\.[a-zA-Z]{2,}$`)

	// Local and international groupings: "014 58 03 35", "0465 05 32 63",
	// "+32 569 32 65 21", "+1 586 32 65 02".
	phoneRe = regexp.MustCompile(`^(\+?\d{1,3} )?\d{3,4}( \d{2}){2,4}$`)
)

const dateInputLayout = "01/02/2006" // MM/DD/YYYY

func IsLicensePlate(s string) bool {
	return licensePlateRe.MatchString(s)
}

func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

func IsPhoneNumber(s string) bool {
	return phoneRe.MatchString(s)
}

// ParseDate parses user date input (MM/DD/YYYY) and normalizes it to the
// storage form "2006-01-02". ok is false when the input does not parse.
func ParseDate(s string) (string, bool) {
	t, err := time.Parse(dateInputLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
