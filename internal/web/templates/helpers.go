// Package templates holds the templ components of the upload UI.
//
// Run `templ generate` after editing a .templ file; the generated
// *_templ.go files are committed.
package templates

import (
	"net/url"
	"strconv"

	"github.com/JonMunkholm/attendance/internal/attendance"
	"github.com/a-h/templ"
)

func downloadURL(id, format string) templ.SafeURL {
	return templ.SafeURL("/reports/" + url.PathEscape(id) + "/download?format=" + url.QueryEscape(format))
}

func statusClass(s attendance.Status) string {
	if s == attendance.StatusPresent {
		return "present"
	}
	return "absent"
}

func formatBytes(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return strconv.FormatInt(n/mb, 10) + " MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}
