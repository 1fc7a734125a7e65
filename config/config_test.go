package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/warp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint != "162.159.193.5:4500" || cfg.MTU != "1420" {
		t.Errorf("unexpected form defaults: %s / %s", cfg.Endpoint, cfg.MTU)
	}
	if !cfg.IPv6 || !cfg.Obfuscation || cfg.Randomize {
		t.Errorf("unexpected toggles: %+v", cfg)
	}
	if cfg.DNS.IPv4Preset != warp.PresetOpenDNS || cfg.DNS.IPv6Preset != warp.PresetOpenDNS {
		t.Errorf("unexpected presets: %+v", cfg.DNS)
	}
	if cfg.OutputName != "RedWARP.conf" || cfg.WorkDir != "." {
		t.Errorf("unexpected paths: %s / %s", cfg.WorkDir, cfg.OutputName)
	}
	if cfg.Theme != common.ThemeAuto {
		t.Errorf("Theme = %v, want auto", cfg.Theme)
	}
}

func TestLoad_CreatesDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := filepath.Join(home, ".config", "redwarp", "config.yaml")
	if cfg.Path() != want {
		t.Errorf("Path() = %v, want %v", cfg.Path(), want)
	}
	if !common.FileExists(want) {
		t.Error("Load() should create the config file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Endpoint = "engage.cloudflareclient.com:2408"
	cfg.IPv6 = false
	cfg.Randomize = true
	cfg.DNS.IPv4Preset = warp.PresetCustom
	cfg.DNS.IPv4Custom = "10.0.0.53"
	cfg.Theme = common.ThemeDark
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Endpoint != cfg.Endpoint || loaded.IPv6 || !loaded.Randomize {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.DNS.IPv4Custom != "10.0.0.53" || loaded.Theme != common.ThemeDark {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name:    "invalid theme falls back",
			content: "theme: purple\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Theme != common.ThemeAuto {
					t.Errorf("Theme = %v, want auto", cfg.Theme)
				}
			},
		},
		{
			name:    "unknown preset falls back",
			content: "dns:\n  ipv4_preset: adguard\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.DNS.IPv4Preset != warp.PresetOpenDNS {
					t.Errorf("IPv4Preset = %v, want opendns", cfg.DNS.IPv4Preset)
				}
			},
		},
		{
			name:    "missing fields keep defaults",
			content: "mtu: \"1280\"\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.MTU != "1280" || cfg.Endpoint != common.DefaultEndpoint || !cfg.Obfuscation {
					t.Errorf("unexpected config: %+v", cfg)
				}
			},
		},
		{
			name:    "unknown field rejected",
			content: "auto_reconnect: true\n",
			wantErr: true,
		},
		{
			name:    "output name with directory rejected",
			content: "output_name: ../evil.conf\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				if !errors.Is(err, common.ErrConfigLoad) {
					t.Fatalf("LoadFrom() error = %v, want ErrConfigLoad", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFrom() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DNS.IPv4Preset = warp.PresetGoogle
	cfg.DNS.IPv6Preset = warp.PresetCustom
	cfg.DNS.IPv6Custom = "fd00::53"
	cfg.Randomize = true

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.DNSv4 != "8.8.8.8, 8.8.4.4" || opts.DNSv6 != "fd00::53" {
		t.Errorf("unexpected DNS: %q / %q", opts.DNSv4, opts.DNSv6)
	}
	if !opts.RandomizeObfuscation || opts.Endpoint != cfg.Endpoint || opts.MTU != cfg.MTU {
		t.Errorf("unexpected options: %+v", opts)
	}

	cfg.DNS.IPv4Preset = "bogus"
	if _, err := cfg.Options(); !errors.Is(err, common.ErrUnknownPreset) {
		t.Errorf("Options() error = %v, want ErrUnknownPreset", err)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkDir = "/srv/warp"
	cfg.WGCFPath = "wgcf"

	p := cfg.Paths()
	if p.WorkDir != "/srv/warp" || p.Binary != "wgcf" || p.Output != common.OutputFileName {
		t.Errorf("Paths() = %+v", p)
	}
}
