package report

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/attendance/internal/config"
	"github.com/JonMunkholm/attendance/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// Upload is one attendance log submitted for processing.
type Upload struct {
	FileName  string
	Data      []byte
	Threshold int
}

// Service is the entry point used by the HTTP and CLI shells.
type Service struct {
	cfg     *config.Config
	limiter *Limiter
	store   *Store
	metrics *Metrics
}

// NewService wires a Service from configuration. Metrics are registered with
// reg.
func NewService(cfg *config.Config, reg prometheus.Registerer) *Service {
	return &Service{
		cfg:     cfg,
		limiter: NewLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		store:   NewStore(cfg.Report.TTL),
		metrics: NewMetrics(reg),
	}
}

// DefaultThreshold is the threshold applied when an upload does not set one.
func (s *Service) DefaultThreshold() int {
	return s.cfg.Report.DefaultThreshold
}

// MaxFileSize is the largest accepted upload in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.cfg.Upload.MaxFileSize
}

// Process builds a report for u and keeps it for later download.
func (s *Service) Process(ctx context.Context, u Upload) (*Report, error) {
	logger := logging.WithFields(ctx, "file", u.FileName, "bytes", len(u.Data), "threshold", u.Threshold)

	if int64(len(u.Data)) > s.cfg.Upload.MaxFileSize {
		err := fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, len(u.Data), s.cfg.Upload.MaxFileSize)
		s.metrics.observe(nil, err, 0)
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("no processing slot", "error", err)
		s.metrics.observe(nil, err, 0)
		return nil, err
	}
	defer s.limiter.Release()

	start := time.Now()
	r, err := Build(u.FileName, u.Data, u.Threshold)
	elapsed := time.Since(start)
	s.metrics.observe(r, err, elapsed)

	if err != nil {
		logger.Info("report rejected", "error", err, "code", MapError(err).Code)
		return nil, err
	}

	s.store.Put(r)
	logger.Info("report built",
		"report_id", r.ID,
		"encoding", r.Encoding,
		"participants", len(r.Results),
		"present", r.Present,
		"absent", r.Absent,
		"duration_ms", elapsed.Milliseconds(),
	)
	return r, nil
}

// Get returns a stored report.
func (s *Service) Get(id string) (*Report, error) {
	return s.store.Get(id)
}

// StartCleanup drops expired reports until ctx is cancelled.
func (s *Service) StartCleanup(ctx context.Context) {
	s.store.Run(ctx, s.cfg.Report.CleanupInterval)
}

// LimiterStatus reports processing slot usage.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight processing finishes or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
