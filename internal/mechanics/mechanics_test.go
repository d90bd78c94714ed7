package mechanics

import (
	"encoding/json"
	"testing"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/session"
)

// cfgFor builds a valid config for a mechanic from the head of its
// compatibility whitelists.
func cfgFor(m config.Mechanic, seed int32, difficulty int) config.GameConfig {
	return config.GameConfig{
		Mechanic:   m,
		Element:    config.ElementsFor(m)[0],
		Constraint: config.ConstraintsFor(m)[0],
		Seed:       seed,
		Difficulty: difficulty,
	}
}

func startSession(t *testing.T, cfg config.GameConfig) *session.Session {
	t.Helper()
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession(%+v): %v", cfg, err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestRegistryCoversEveryMechanic(t *testing.T) {
	for _, m := range config.Mechanics {
		sim, err := New(m)
		if err != nil {
			t.Errorf("New(%q): %v", m, err)
			continue
		}
		if sim.Mechanic() != m {
			t.Errorf("simulator for %q reports mechanic %q", m, sim.Mechanic())
		}
	}
	if got, want := len(List()), len(config.Mechanics); got != want {
		t.Errorf("registry holds %d simulators, want %d", got, want)
	}
}

func TestEveryGeneratedConfigInitializes(t *testing.T) {
	for seed := int32(0); seed < 600; seed++ {
		cfg, err := config.Generate(seed)
		if err != nil {
			t.Fatalf("Generate(%d): %v", seed, err)
		}
		s, err := NewSession(cfg)
		if err != nil {
			t.Fatalf("seed %d (%s): %v", seed, cfg.Mechanic, err)
		}
		if err := s.Start(); err != nil {
			t.Fatalf("seed %d (%s): Start: %v", seed, cfg.Mechanic, err)
		}
		if s.State().Data == nil {
			t.Fatalf("seed %d (%s): no mechanic data", seed, cfg.Mechanic)
		}
	}
}

func TestEveryWhitelistedPairInitializes(t *testing.T) {
	for _, m := range config.Mechanics {
		for _, e := range config.ElementsFor(m) {
			for _, c := range config.ConstraintsFor(m) {
				for _, diff := range []int{2, 3, 4} {
					cfg := config.GameConfig{
						Mechanic: m, Element: e, Constraint: c,
						Seed: 1234, Difficulty: diff,
					}
					s, err := NewSession(cfg)
					if err != nil {
						t.Fatalf("%s/%s/%s d=%d: %v", m, e, c, diff, err)
					}
					if err := s.Start(); err != nil {
						t.Fatalf("%s/%s/%s d=%d: Start: %v", m, e, c, diff, err)
					}
				}
			}
		}
	}
}

// Identical seeds must build identical mechanic payloads; the payload is the
// whole puzzle, so any divergence here breaks the shared-daily guarantee.
func TestInitialStateReproducible(t *testing.T) {
	for seed := int32(100); seed < 200; seed++ {
		cfg, err := config.Generate(seed)
		if err != nil {
			t.Fatal(err)
		}
		a := startSession(t, cfg)
		b := startSession(t, cfg)
		ja, err := json.Marshal(a.State().Data)
		if err != nil {
			t.Fatal(err)
		}
		jb, err := json.Marshal(b.State().Data)
		if err != nil {
			t.Fatal(err)
		}
		if string(ja) != string(jb) {
			t.Fatalf("seed %d (%s): initial payload differs:\n%s\n%s", seed, cfg.Mechanic, ja, jb)
		}
	}
}

func TestSymbolSetsCoverTableNeeds(t *testing.T) {
	for _, m := range config.Mechanics {
		for _, e := range config.ElementsFor(m) {
			if len(Symbols(e)) == 0 {
				t.Errorf("element %q whitelisted for %q has no symbols", e, m)
			}
		}
	}
}
