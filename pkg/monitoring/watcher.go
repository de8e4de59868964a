package monitoring

import (
	"time"

	"github.com/rs/zerolog"
)

type DirectoryMonitorWatcher struct {
	syncTicker *time.Ticker
	done       chan struct{}

	source StatsSource

	monitor MonitorInterface
	logger  *zerolog.Logger
}

func (m *DirectoryMonitorWatcher) sync() {
	for {
		select {
		case tick := <-m.syncTicker.C:
			m.logger.Debug().Time("value", tick).Msg("Tick")
			m.storeMetrics()
		case <-m.done:
			return
		}
	}
}

func (m *DirectoryMonitorWatcher) storeMetrics() {
	for op, count := range m.source.OperationCounts() {
		if err := m.monitor.SetDirectoryMetric(map[string]string{"type": op}, float64(count)); err != nil {
			m.logger.Error().Err(err).Msg("failed to set metric")
		}
	}
}

// Stop ends the polling goroutine. Embedding tests should defer it so the
// watcher does not outlive the emulator it observes.
func (m *DirectoryMonitorWatcher) Stop() {
	m.syncTicker.Stop()
	close(m.done)
}

func NewDirectoryMonitorWatcher(source StatsSource, monitor MonitorInterface, interval time.Duration, logger *zerolog.Logger) *DirectoryMonitorWatcher {
	m := new(DirectoryMonitorWatcher)

	if interval <= 0 {
		interval = 15 * time.Second
	}

	m.syncTicker = time.NewTicker(interval)
	m.done = make(chan struct{})
	m.source = source
	m.monitor = monitor
	m.logger = logger

	go m.sync()

	return m
}
