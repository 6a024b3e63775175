package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deep-field/internal/astro"
)

type fixedCatalogs struct {
	catalog *astro.Catalog
}

func (f fixedCatalogs) Current() *astro.Catalog {
	return f.catalog
}

func TestSessionOptionsAreIndependent(t *testing.T) {
	srv := &SSHServer{
		config: SSHServerConfig{Game: testOptions()},
		logger: log.New(io.Discard),
	}

	a := srv.sessionOptions("alice", 100, 30)
	b := srv.sessionOptions("bob", 80, 24)

	if a.SessionID == b.SessionID {
		t.Error("sessions must get distinct IDs")
	}
	if !strings.HasPrefix(a.SessionID, "alice-") {
		t.Errorf("session ID %q should start with the user name", a.SessionID)
	}
	if a.Width != 100 || b.Height != 24 {
		t.Errorf("PTY size not applied: %dx%d, %dx%d", a.Width, a.Height, b.Width, b.Height)
	}

	ma := newTestModel(t, a)
	mb := newTestModel(t, b)
	ma, _ = update(t, ma, TickMsg{})
	if len(mb.Snapshot().Observed) != 0 {
		t.Error("ticking one session changed another")
	}
	if len(ma.Snapshot().Observed) != 1 {
		t.Errorf("expected one observation, got %d", len(ma.Snapshot().Observed))
	}
}

func TestSessionOptionsUseCatalogSource(t *testing.T) {
	custom, err := astro.New(
		[]astro.Object{astro.NewObject(astro.CategoryStar, "vega", "Vega", astro.T(1, "Blue."))},
		[]astro.Telescope{{Key: "eye", Name: "Eye", MaxPower: 4}},
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	srv := &SSHServer{
		config: SSHServerConfig{Game: testOptions(), Catalogs: fixedCatalogs{custom}},
		logger: log.New(io.Discard),
	}

	opts := srv.sessionOptions("carol", 80, 24)
	if opts.Session.Catalog != custom {
		t.Fatal("session should use the catalog source")
	}
	m := newTestModel(t, opts)
	if got := m.Snapshot().Total(); got != 1 {
		t.Errorf("session holds %d objects, expected 1", got)
	}
}
