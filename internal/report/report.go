// Package report runs an uploaded attendance log through the presence
// pipeline and keeps the result around long enough to be downloaded.
//
// # Pipeline
//
// [Build] is the whole computation and holds no state:
//
//  1. The first charset.SampleSize bytes pick the encoding ([charset.Detect])
//  2. The upload is decoded to UTF-8 and parsed as a tab-delimited table
//  3. [attendance.Compute] produces one classified row per participant
//  4. The rows are written back as TSV in the encoding detected in step 1
//
// [Service] wraps Build with a concurrency limit, Prometheus metrics and a
// short-lived in-memory [Store], so both the web server and the CLI share
// one code path.
//
// # Error Handling
//
// *attendance.SchemaError is the only error produced by the data itself.
// Everything else (oversized file, unreadable encoding, busy server) is a
// shell error. [MapError] turns any of them into a coded [UserMessage].
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/JonMunkholm/attendance/internal/attendance"
	"github.com/JonMunkholm/attendance/internal/charset"
	"github.com/google/uuid"
)

// Report is a computed presence report and its serialized form.
type Report struct {
	ID        string              `json:"id"`
	FileName  string              `json:"file_name"`
	Encoding  string              `json:"encoding"`
	Threshold int                 `json:"threshold_seconds"`
	Results   []attendance.Result `json:"results"`
	Present   int                 `json:"present"`
	Absent    int                 `json:"absent"`
	CreatedAt time.Time           `json:"created_at"`

	// Output is the TSV report encoded with Encoding.
	Output []byte `json:"-"`
}

// Build runs the presence pipeline over one uploaded file.
func Build(fileName string, data []byte, thresholdSeconds int) (*Report, error) {
	if thresholdSeconds < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreshold, thresholdSeconds)
	}

	enc := charset.Detect(charset.Sample(data))

	text, err := charset.Decode(data, enc)
	if err != nil {
		return nil, err
	}

	table, err := attendance.ReadTable(bytes.NewReader(text))
	if err != nil {
		return nil, err
	}

	results, err := attendance.Compute(table, thresholdSeconds)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := attendance.WriteTSV(&buf, results); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	out, err := charset.Encode(buf.Bytes(), enc)
	if err != nil {
		return nil, err
	}

	r := &Report{
		ID:        uuid.NewString(),
		FileName:  SafeFileName(fileName),
		Encoding:  enc,
		Threshold: thresholdSeconds,
		Results:   results,
		CreatedAt: time.Now(),
		Output:    out,
	}
	for _, res := range results {
		if res.Status == attendance.StatusPresent {
			r.Present++
		} else {
			r.Absent++
		}
	}
	return r, nil
}

// DownloadName is the attachment name for the TSV report.
func (r *Report) DownloadName() string {
	return downloadName(r.FileName, ".csv")
}

// XLSXName is the attachment name for the spreadsheet export.
func (r *Report) XLSXName() string {
	return downloadName(r.FileName, ".xlsx")
}

// ContentType describes Output for HTTP responses.
func (r *Report) ContentType() string {
	return "text/tab-separated-values; charset=" + r.Encoding
}
