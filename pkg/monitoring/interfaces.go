package monitoring

type MonitorInterface interface {
	SetResponseTimeMetric(map[string]string, float64) error
	SetDirectoryMetric(map[string]string, float64) error
}

// StatsSource is the slice of the emulator the watcher polls. It is
// satisfied by *mockldap.Conn.
type StatsSource interface {
	OperationCounts() map[string]uint64
}
