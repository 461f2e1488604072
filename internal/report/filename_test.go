package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"meeting.csv", "meeting.csv"},
		{"My Meeting List.csv", "My_Meeting_List.csv"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\Desktop\attendance.csv`, "attendance.csv"},
		{"Réunion été.csv", "Reunion_ete.csv"},
		{"   ", ""},
		{"", ""},
		{"...", ""},
		{"NUL.csv", "_NUL.csv"},
		{"a$b%c.tsv", "abc.tsv"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFileName(tt.in))
		})
	}
}
