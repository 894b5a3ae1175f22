// Package validation holds the input-format predicates shared by the API
// server and the CLI client. The formats are part of the external contract,
// so both sides must agree bit-exactly.
package validation

import "regexp"

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z\d_\-]{3,50}$`)
	passwordRe = regexp.MustCompile(`^[A-Za-z\d\-_@$!%*#?&]{4,}$`)
	dateRe     = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])-(0[1-9]|1[0-2])-\d{4}$`)
	amountRe   = regexp.MustCompile(`^[\-\+]\d+(\.\d+)?$`)
	tagsRe     = regexp.MustCompile(`^\s*(#[a-zA-Z\d_\-]+\s+)*(#[a-zA-Z\d_\-]+)?$`)
	tagTokenRe = regexp.MustCompile(`#([^\s]+)`)
)

// ValidUsername reports whether username is 3-50 chars of [A-Za-z0-9_-].
func ValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// ValidPassword reports whether password is at least 4 chars drawn from the
// allowed alphabet.
func ValidPassword(password string) bool {
	return passwordRe.MatchString(password)
}

// ValidDate reports whether date is DD-MM-YYYY with day 01-31 and month 01-12.
func ValidDate(date string) bool {
	return dateRe.MatchString(date)
}

// ValidAmount reports whether amount is a signed decimal. The sign is
// mandatory: it classifies the transaction as income or spending.
func ValidAmount(amount string) bool {
	return amountRe.MatchString(amount)
}

// ValidTags reports whether tags is a (possibly empty) whitespace-separated
// sequence of #tokens.
func ValidTags(tags string) bool {
	return tagsRe.MatchString(tags)
}

// ValidTransaction reports whether date, amount, and tags are all valid.
func ValidTransaction(date, amount, tags string) bool {
	return ValidDate(date) && ValidAmount(amount) && ValidTags(tags)
}

// ParseTags extracts tag names from a tag string, in order of appearance,
// with the leading # stripped. The index in the returned slice is the tag's
// position. An empty or whitespace-only string yields no tags.
func ParseTags(tags string) []string {
	matches := tagTokenRe.FindAllStringSubmatch(tags, -1)
	parsed := make([]string, 0, len(matches))
	for _, m := range matches {
		parsed = append(parsed, m[1])
	}
	return parsed
}
