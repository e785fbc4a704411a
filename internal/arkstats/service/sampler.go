package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/pkg/arkweb"
)

// SamplerService periodically snapshots every server's player count into the
// history table so the server detail pages can chart population over time.
type SamplerService struct {
	Store    store.Store
	Ark      *arkweb.Client
	Cluster  string
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewSamplerService creates a new sampler with the given interval.
// If interval is 0 or negative, defaults to 5 minutes.
func NewSamplerService(st store.Store, ark *arkweb.Client, cluster string, logger *slog.Logger, interval time.Duration) *SamplerService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &SamplerService{
		Store:    st,
		Ark:      ark,
		Cluster:  cluster,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *SamplerService) Start() {
	go s.run()
	s.Logger.Info("population sampler started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until any in-progress sample has finished.
func (s *SamplerService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("population sampler stopped")
}

func (s *SamplerService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Take one sample immediately on startup
	s.sample()

	for {
		select {
		case <-ticker.C:
			s.sample()
		case <-s.stopCh:
			return
		}
	}
}

// sample fetches the roster and appends one data point per server.
func (s *SamplerService) sample() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	servers, err := s.Ark.Servers(ctx, s.Cluster)
	if err != nil {
		s.Logger.Error("population sample failed", "error", err)
		return
	}

	now := time.Now().UTC()
	samples := make([]domain.PlayerSample, 0, len(servers))
	for _, srv := range servers {
		samples = append(samples, domain.PlayerSample{
			ServerName: srv.Name,
			Players:    srv.NumPlayers,
			SampledAt:  now,
		})
	}

	if err := s.Store.PlayerHistory().Append(ctx, samples); err != nil {
		s.Logger.Error("failed to store population samples", "error", err)
		return
	}

	s.Logger.Debug("population sample stored", "servers", len(samples))
}
