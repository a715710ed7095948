package probe

// IProbeStatusHandler is an interface for handling probe outcomes
type IProbeStatusHandler interface {
	// OnProbe handles a probe with its status result
	OnProbe(status string)
	// OnRetry handles retry events
	OnRetry()
}
