package report

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// unsafeFileChars matches everything outside a conservative ASCII set.
var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// reservedNames are device names Windows refuses as file names.
var reservedNames = map[string]bool{
	"CON": true, "AUX": true, "COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "PRN": true, "NUL": true,
}

// SafeFileName reduces an uploaded file name to a flat ASCII name safe for a
// Content-Disposition header or a local path. It may return "".
func SafeFileName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}

	name = strings.Join(strings.Fields(b.String()), "_")
	name = unsafeFileChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if reservedNames[strings.ToUpper(strings.SplitN(name, ".", 2)[0])] {
		name = "_" + name
	}
	return name
}

// downloadName derives "attendance_<stem><ext>" from a sanitized upload name.
func downloadName(fileName, ext string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if stem == "" {
		return "attendance_output" + ext
	}
	return "attendance_" + stem + ext
}
