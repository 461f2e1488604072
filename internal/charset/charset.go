// Package charset guesses the text encoding of uploaded attendance logs and
// converts between that encoding and UTF-8.
//
// Attendance exports come from tools that do not agree on an encoding (Teams
// writes UTF-16LE, spreadsheet re-saves produce windows-125x). The detected
// name is used for both decoding the upload and encoding the report, so
// participant names round-trip unchanged.
package charset

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode/utf32"
)

// SampleSize is the maximum number of bytes inspected by Detect.
const SampleSize = 100_000

// DefaultEncoding is returned when the detector cannot settle on a usable guess.
const DefaultEncoding = "UTF-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// aliases covers detector names that neither index knows.
var aliases = map[string]encoding.Encoding{
	"utf-32le": utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
	"utf-32be": utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
}

// renames maps detector spellings onto index labels.
var renames = map[string]string{
	"gb-18030": "gb18030",
}

// Sample returns the prefix of data that Detect inspects.
func Sample(data []byte) []byte {
	if len(data) > SampleSize {
		return data[:SampleSize]
	}
	return data
}

// Detect returns a best-effort encoding name for sample. It never fails:
// empty input, detector errors and names without a codec all yield
// DefaultEncoding.
func Detect(sample []byte) string {
	sample = Sample(sample)
	if len(sample) == 0 {
		return DefaultEncoding
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil || result.Charset == "" {
		return DefaultEncoding
	}

	if _, err := Lookup(result.Charset); err != nil {
		return DefaultEncoding
	}
	return result.Charset
}

// Lookup resolves an encoding name to a codec.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	if renamed, ok := renames[key]; ok {
		key = renamed
	}

	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	// WHATWG maps some labels to the replacement codec, which would blank the log.
	if enc, err := htmlindex.Get(key); err == nil && enc != encoding.Replacement {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

// Decode converts data from the named encoding to UTF-8 and drops a leading
// byte order mark.
func Decode(data []byte, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("encoding error: decode %s: %w", name, err)
	}
	return bytes.TrimPrefix(out, utf8BOM), nil
}

// Encode converts UTF-8 data to the named encoding. Runes the target cannot
// represent are replaced rather than reported.
func Encode(data []byte, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("encoding error: encode %s: %w", name, err)
	}
	return out, nil
}
