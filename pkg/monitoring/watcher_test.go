package monitoring

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package monitoring -destination ./mock_interfaces.go -source=./interfaces.go

func TestNewDirectoryMonitorWatcherRunsOnASchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockSource := NewMockStatsSource(ctrl)

	counts := map[string]uint64{"bind": 2, "search": 1}

	mockSource.EXPECT().OperationCounts().MinTimes(1).Return(counts)
	mockMonitor.EXPECT().SetDirectoryMetric(map[string]string{"type": "bind"}, float64(2)).MinTimes(1)
	mockMonitor.EXPECT().SetDirectoryMetric(map[string]string{"type": "search"}, float64(1)).MinTimes(1)

	logger := zerolog.Nop()
	m := NewDirectoryMonitorWatcher(mockSource, mockMonitor, 5*time.Microsecond, &logger)
	defer m.Stop()

	// allow goroutine to start and ticker to tick
	time.Sleep(10 * time.Millisecond)
}

func TestDirectoryMonitorWatcherStopEndsPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockSource := NewMockStatsSource(ctrl)

	mockSource.EXPECT().OperationCounts().AnyTimes().Return(map[string]uint64{})

	logger := zerolog.Nop()
	m := NewDirectoryMonitorWatcher(mockSource, mockMonitor, 5*time.Microsecond, &logger)

	m.Stop()
	time.Sleep(5 * time.Millisecond)
}
