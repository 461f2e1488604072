package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/attendance/internal/report"
	"github.com/JonMunkholm/attendance/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead is allowed on top of the file size for form fields and
// part headers.
const multipartOverhead = 64 << 10

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	form := templates.UploadForm{
		Threshold:   s.service.DefaultThreshold(),
		MaxFileSize: s.service.MaxFileSize(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.UploadPage(form).Render(r.Context(), w)
}

// handleUpload builds a report from the posted log. A plain form post gets
// the TSV as an attachment; an HTMX post gets the summary partial.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	upload, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	rep, err := s.service.Process(r.Context(), upload)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.ReportSummary(rep).Render(r.Context(), w)
		return
	}
	writeTSV(w, rep)
}

// handleDownload serves a stored report as tsv (default) or xlsx.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	rep, err := s.service.Get(chi.URLParam(r, "reportID"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	switch format := strings.ToLower(r.URL.Query().Get("format")); format {
	case "", "tsv":
		writeTSV(w, rep)
	case "xlsx":
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, rep); err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rep.XLSXName()))
		w.Write(buf.Bytes())
	default:
		err := fmt.Errorf("%w: %q", report.ErrUnsupportedFormat, format)
		s.respondError(w, r, err, statusFor(err))
	}
}

// handleCreateReport is the JSON form of handleUpload.
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	upload, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	rep, err := s.service.Process(r.Context(), upload)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Location", "/api/reports/"+rep.ID)
	writeJSON(w, http.StatusCreated, rep)
}

// handleGetReport returns a stored report as JSON.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.service.Get(chi.URLParam(r, "reportID"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleStatus reports processing slot usage.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.LimiterStatus())
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// readUpload pulls the file and threshold out of a multipart form.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (report.Upload, error) {
	maxSize := s.service.MaxFileSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return report.Upload{}, fmt.Errorf("%w: limit is %d bytes", report.ErrFileTooLarge, maxSize)
		}
		return report.Upload{}, fmt.Errorf("%w: %v", report.ErrNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return report.Upload{}, fmt.Errorf("%w: %v", report.ErrNoFile, err)
	}
	defer file.Close()

	if header.Filename == "" {
		return report.Upload{}, report.ErrNoFile
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return report.Upload{}, fmt.Errorf("read upload: %w", err)
	}

	threshold, err := report.ParseThreshold(r.FormValue("threshold"), s.service.DefaultThreshold())
	if err != nil {
		return report.Upload{}, err
	}

	return report.Upload{FileName: header.Filename, Data: data, Threshold: threshold}, nil
}

// writeTSV sends the report in the encoding of the uploaded file.
func writeTSV(w http.ResponseWriter, rep *report.Report) {
	w.Header().Set("Content-Type", rep.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rep.DownloadName()))
	w.Write(rep.Output)
}
