package attendance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OutputHeader is the header row of the presence report.
var OutputHeader = []string{"Full Name", "Total Duration (secs)", "Status"}

// FormatSeconds renders a duration the way the report has always shown it:
// shortest decimal form with at least one fractional digit ("120.0", "0.5").
func FormatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WriteTSV writes results as a tab-delimited UTF-8 table.
func WriteTSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(OutputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write([]string{r.FullName, FormatSeconds(r.TotalSeconds), string(r.Status)}); err != nil {
			return fmt.Errorf("write %q: %w", r.FullName, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
