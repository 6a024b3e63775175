package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deep-field/internal/loop"
)

// Reporter writes every discovery of a running loop to the logbook.
// Write failures are logged and never stop the loop.
type Reporter struct {
	store     *Store
	sessionID string
	logger    *log.Logger
}

// NewReporter creates a logbook reporter for one session. A nil logger
// discards write errors.
func NewReporter(store *Store, sessionID string, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{store: store, sessionID: sessionID, logger: logger}
}

// Report implements loop.Reporter.
func (r *Reporter) Report(tr loop.TickReport) {
	if tr.Observation == nil {
		return
	}
	obs := tr.Observation
	_, err := r.store.SaveObservation(Entry{
		SessionID:     r.sessionID,
		Generation:    tr.Generation,
		ObjectKey:     obs.Object.Key,
		ObjectName:    obs.Object.Name,
		Category:      obs.Object.Category.String(),
		Level:         obs.Level,
		DiscoveryText: obs.DiscoveryText,
		MaxPower:      tr.Snapshot.MaxPower,
	})
	if err != nil {
		r.logger.Warn("logbook write failed", "object", obs.Object.Key, "error", err)
	}
}

var _ loop.Reporter = (*Reporter)(nil)
