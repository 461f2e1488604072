package report

// error_messages.go maps technical errors to coded, user-facing messages.
//
// Codes are grouped by category so users can quote them to support:
//
//	SCH001  - Required columns missing (Full Name, User Action, Timestamp)
//	FILE001 - File too large
//	FILE002 - File is not a readable tab-delimited table
//	FILE003 - File could not be decoded with the detected encoding
//	FILE004 - No file selected
//	VAL007  - Threshold is not a non-negative number of seconds
//	VAL008  - Download format is not tsv or xlsx
//	UPL002  - Too many logs being processed
//	UPL004  - Request cancelled
//	UPL005  - Request timed out
//	RPT001  - Report expired or never existed
//	RATE001 - Too many requests
//	ERR000  - Anything else; check the server log for the technical error
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/attendance/internal/attendance"
)

// Shell errors. Their text carries the pattern MapError looks for.
var (
	ErrTooManyUploads    = errors.New("too many uploads in progress, please try again later")
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidThreshold  = errors.New("invalid threshold")
	ErrFileTooLarge      = errors.New("file too large")
	ErrNoFile            = errors.New("no file provided")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "does not have the required columns",
		msg: UserMessage{
			Message: "The attendance log is missing required columns",
			Action:  "Make sure the header has Full Name, User Action and Timestamp columns",
			Code:    "SCH001",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Upload the attendance log of a single meeting",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a readable tab-delimited table",
			Action:  "Upload the attendance list exactly as downloaded",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File could not be read as text",
			Action:  "Save the file as UTF-8 or UTF-16 and upload it again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select an attendance log to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "invalid threshold",
		msg: UserMessage{
			Message: "Threshold must be a whole number of seconds, zero or more",
			Action:  "Enter a threshold such as 600 for ten minutes",
			Code:    "VAL007",
		},
	},
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "Reports can be downloaded as tsv or xlsx",
			Action:  "Pick one of the download links below the report",
			Code:    "VAL008",
		},
	},
	{
		pattern: "too many uploads",
		msg: UserMessage{
			Message: "System is busy processing other attendance logs",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try again or upload a smaller file",
			Code:    "UPL005",
		},
	},
	{
		pattern: "report not found",
		msg: UserMessage{
			Message: "This report is no longer available",
			Action:  "Reports expire shortly after they are generated. Upload the log again",
			Code:    "RPT001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Unknown
// errors map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err is something the uploader can fix.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var schemaErr *attendance.SchemaError
	if errors.As(err, &schemaErr) {
		return true
	}
	return MapError(err).Code != defaultMessage.Code
}
