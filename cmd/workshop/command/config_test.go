package command

import (
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-workshop/internal/game"
	"github.com/pixil98/go-workshop/internal/geom"
)

func TestConfig_Validate(t *testing.T) {
	tmpDir := t.TempDir()

	base := func() *Config {
		return &Config{
			TickInterval: "50ms",
			Storage: StorageConfig{
				Items: AssetConfig[*game.ItemSpec]{Path: tmpDir},
			},
		}
	}

	tests := map[string]struct {
		mutate func(*Config)
		expErr string
	}{
		"valid": {
			mutate: func(*Config) {},
		},
		"empty tick interval uses default": {
			mutate: func(c *Config) { c.TickInterval = "" },
		},
		"bad tick interval": {
			mutate: func(c *Config) { c.TickInterval = "soon" },
			expErr: "tick_interval",
		},
		"tick interval too coarse": {
			mutate: func(c *Config) { c.TickInterval = "2s" },
			expErr: "at most 1 second",
		},
		"listener without port": {
			mutate: func(c *Config) {
				c.Listeners = []ListenerConfig{{Protocol: ListenerTypeTelnet}}
			},
			expErr: "port",
		},
		"missing item path": {
			mutate: func(c *Config) { c.Storage.Items.Path = "" },
			expErr: "path is required",
		},
		"bad game duration": {
			mutate: func(c *Config) { c.Game.WaitTime = "later" },
			expErr: "wait_time",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.expErr)
			}
			if !strings.Contains(err.Error(), tt.expErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.expErr)
			}
		})
	}
}

func TestGameConfig_BuildSettings_Defaults(t *testing.T) {
	g := &GameConfig{}

	s, err := g.BuildSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def := game.DefaultSettings()
	testutil.AssertEqual(t, "spawn interval", s.SpawnInterval, def.SpawnInterval)
	testutil.AssertEqual(t, "walk speed", s.WalkSpeed, def.WalkSpeed)
	testutil.AssertEqual(t, "spot count", len(s.Spots), len(def.Spots))
}

func TestGameConfig_BuildSettings_Overrides(t *testing.T) {
	g := &GameConfig{
		SpawnInterval: "3s",
		WaitTime:      "8s",
		WalkSpeed:     2.5,
		WinThreshold:  10,
		Origins:       []geom.Point3{{X: -5}, {X: 5}},
		Spots:         []geom.Point3{{Z: 1}},
		ExpectedItems: map[string]string{"elf": "fish", "orc": "mead"},
	}

	s, err := g.BuildSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "spawn interval", s.SpawnInterval, 3*time.Second)
	testutil.AssertEqual(t, "wait time", s.WaitTime, 8*time.Second)
	testutil.AssertEqual(t, "walk speed", s.WalkSpeed, 2.5)
	testutil.AssertEqual(t, "win threshold", s.WinThreshold, 10)
	testutil.AssertEqual(t, "lose threshold keeps default", s.LoseThreshold, game.DefaultLoseThreshold)
	testutil.AssertEqual(t, "origin", s.Origins[0], geom.Point3{X: -5})
	testutil.AssertEqual(t, "spot count", len(s.Spots), 1)
	testutil.AssertEqual(t, "elf item", s.ExpectedItems[game.RaceElf], game.ItemType("fish"))
}

func TestListenerType_UnmarshalText(t *testing.T) {
	tests := map[string]struct {
		text   string
		exp    ListenerType
		expErr bool
	}{
		"telnet":  {text: "telnet", exp: ListenerTypeTelnet},
		"ssh":     {text: "ssh", exp: ListenerTypeSSH},
		"unknown": {text: "gopher", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var lt ListenerType
			err := lt.UnmarshalText([]byte(tt.text))
			if tt.expErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "type", lt, tt.exp)
		})
	}
}

func TestNatsConfig_Validate(t *testing.T) {
	good := &NatsConfig{StartTimeout: "5s"}
	if err := good.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := &NatsConfig{StartTimeout: "whenever"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for bad start_timeout")
	}
}

func TestStorageConfig_BuildEmoteSets_Defaults(t *testing.T) {
	c := &StorageConfig{}

	sets, err := c.BuildEmoteSets()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sets.Validate(); err != nil {
		t.Errorf("default sets invalid: %v", err)
	}
}
