package loop

import "github.com/charmbracelet/log"

// LogReporter writes each observation to a logger.
type LogReporter struct {
	Logger *log.Logger
}

// Report logs the tick's observation, or nothing when none happened.
func (r LogReporter) Report(tr TickReport) {
	if tr.Observation == nil {
		return
	}
	obs := tr.Observation
	r.Logger.Info(obs.DiscoveryText,
		"object", obs.Object.Key,
		"category", obs.Object.Category,
		"level", obs.Level,
		"power", tr.Snapshot.MaxPower,
		"generation", tr.Generation,
	)
}
