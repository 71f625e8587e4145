package logger

import (
	"net/url"
	"strings"
)

// MaskURL hides the password of a connection URL.
// Example: postgres://betr:secret@db:5432/betr -> postgres://betr:***@db:5432/betr
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	return strings.Replace(u.String(), u.User.String()+"@", u.User.Username()+":***@", 1)
}
