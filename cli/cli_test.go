package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/config"
	"github.com/yllada/redwarp/notify"
	"github.com/yllada/redwarp/tui"
	"github.com/yllada/redwarp/warp"
)

type fakeGenerator struct {
	paths warp.Paths
	opts  warp.Options
	calls int
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, opts warp.Options) (*warp.Result, error) {
	f.calls++
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &warp.Result{OutputPath: f.paths.OutputPath(), Obfuscation: nil}, nil
}

type fakeSender struct {
	sent []notify.Notification
}

func (f *fakeSender) Send(n notify.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

// newTestApp returns an app whose configuration lives in a temp dir.
func newTestApp(t *testing.T) (*app, *fakeGenerator, *fakeSender, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	gen := &fakeGenerator{}
	snd := &fakeSender{}
	a := newApp(BuildInfo{Version: "1.2.3", BuildTime: "today", Commit: "abc123"}, nil)
	a.newGenerator = func(paths warp.Paths) tui.Generator {
		gen.paths = paths
		return gen
	}
	a.notifier = snd
	return a, gen, snd, filepath.Join(home, "redwarp.yaml")
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	root := a.rootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestApplyFlags(t *testing.T) {
	base := config.DefaultConfig()

	tests := []struct {
		name    string
		flags   generateFlags
		changed []string
		check   func(t *testing.T, c *config.Config)
	}{
		{
			name:  "nothing changed keeps config",
			flags: generateFlags{endpoint: "ignored"},
			check: func(t *testing.T, c *config.Config) {
				if c.Endpoint != base.Endpoint {
					t.Errorf("Endpoint = %v", c.Endpoint)
				}
			},
		},
		{
			name:    "scalar overrides",
			flags:   generateFlags{endpoint: "1.1.1.1:2408", mtu: "1280", ipv6: false, output: "warp.conf"},
			changed: []string{"endpoint", "mtu", "ipv6", "output"},
			check: func(t *testing.T, c *config.Config) {
				if c.Endpoint != "1.1.1.1:2408" || c.MTU != "1280" || c.IPv6 || c.OutputName != "warp.conf" {
					t.Errorf("unexpected config %+v", c)
				}
			},
		},
		{
			name:    "custom resolvers imply the custom preset",
			flags:   generateFlags{dns4Custom: "10.0.0.1"},
			changed: []string{"dns4-custom"},
			check: func(t *testing.T, c *config.Config) {
				if c.DNS.IPv4Preset != warp.PresetCustom || c.DNS.IPv4Custom != "10.0.0.1" {
					t.Errorf("unexpected DNS %+v", c.DNS)
				}
			},
		},
		{
			name:    "explicit preset wins over custom text",
			flags:   generateFlags{dns6: warp.PresetQuad9, dns6Custom: "fd00::1"},
			changed: []string{"dns6", "dns6-custom"},
			check: func(t *testing.T, c *config.Config) {
				if c.DNS.IPv6Preset != warp.PresetQuad9 {
					t.Errorf("IPv6Preset = %v", c.DNS.IPv6Preset)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := func(name string) bool {
				for _, c := range tt.changed {
					if c == name {
						return true
					}
				}
				return false
			}
			merged := applyFlags(base, tt.flags, changed)
			tt.check(t, merged)
			if base.Endpoint != common.DefaultEndpoint {
				t.Error("applyFlags must not modify its input")
			}
		})
	}
}

func TestBuildOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DNS.IPv4Preset = warp.PresetCloudflare

	opts, paths, err := buildOptions(cfg)
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}
	if opts.DNSv4 != "1.1.1.1, 1.0.0.1" {
		t.Errorf("DNSv4 = %v", opts.DNSv4)
	}
	if paths.Output != common.OutputFileName {
		t.Errorf("Output = %v", paths.Output)
	}

	cfg.DNS.IPv4Preset = "nope"
	if _, _, err := buildOptions(cfg); !errors.Is(err, common.ErrUnknownPreset) {
		t.Errorf("unknown preset error = %v", err)
	}

	cfg.DNS.IPv4Preset = warp.PresetCustom
	cfg.DNS.IPv4Custom = ""
	if _, _, err := buildOptions(cfg); !errors.Is(err, common.ErrInvalidOption) {
		t.Errorf("empty custom DNS error = %v", err)
	}
}

func TestGenerateCommand(t *testing.T) {
	a, gen, snd, cfgPath := newTestApp(t)

	out, err := run(t, a, "--config", cfgPath, "generate",
		"--endpoint", "engage.cloudflareclient.com:2408",
		"--ipv6=false", "--dns4", "google", "--workdir", "/tmp/warp", "--notify")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	if gen.calls != 1 {
		t.Fatalf("generator called %d times", gen.calls)
	}
	if gen.opts.Endpoint != "engage.cloudflareclient.com:2408" || gen.opts.IPv6 || gen.opts.DNSv4 != "8.8.8.8, 8.8.4.4" {
		t.Errorf("options = %+v", gen.opts)
	}
	if gen.paths.WorkDir != "/tmp/warp" {
		t.Errorf("paths = %+v", gen.paths)
	}
	if !strings.Contains(out, "saved to RedWARP.conf") {
		t.Errorf("output = %q", out)
	}
	if len(snd.sent) != 1 || snd.sent[0].Type != notify.Success {
		t.Errorf("notifications = %+v", snd.sent)
	}

	// Without --save the defaults stay untouched.
	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != common.DefaultEndpoint {
		t.Errorf("config changed without --save: %v", cfg.Endpoint)
	}
}

func TestGenerateCommand_Save(t *testing.T) {
	a, _, _, cfgPath := newTestApp(t)

	if _, err := run(t, a, "--config", cfgPath, "generate", "--mtu", "1280", "--randomize", "--notify=false", "--save"); err != nil {
		t.Fatalf("generate error = %v", err)
	}

	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MTU != "1280" || !cfg.Randomize || cfg.ShowNotifications {
		t.Errorf("saved config = %+v", cfg)
	}
}

func TestGenerateCommand_Failure(t *testing.T) {
	a, gen, snd, cfgPath := newTestApp(t)
	gen.err = &warp.Error{Kind: warp.ExternalCommandFailed, Subject: "wgcf register --accept-tos", Detail: "exited with status 1"}

	_, err := run(t, a, "--config", cfgPath, "generate", "--notify")
	if warp.KindOf(err) != warp.ExternalCommandFailed {
		t.Fatalf("error = %v", err)
	}
	if len(snd.sent) != 1 || snd.sent[0].Type != notify.Error {
		t.Errorf("notifications = %+v", snd.sent)
	}
}

func TestGenerateCommand_InvalidInput(t *testing.T) {
	a, gen, _, cfgPath := newTestApp(t)

	_, err := run(t, a, "--config", cfgPath, "generate", "--dns4", "adguard")
	if !errors.Is(err, common.ErrUnknownPreset) {
		t.Fatalf("error = %v", err)
	}
	if gen.calls != 0 {
		t.Error("generator must not run for invalid input")
	}
}

func TestPresetsCommand(t *testing.T) {
	a, _, _, cfgPath := newTestApp(t)

	out, err := run(t, a, "--config", cfgPath, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"opendns", "208.67.222.222", "quad9", "2620:fe::fe", "custom"} {
		if !strings.Contains(out, want) {
			t.Errorf("presets output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	a, _, _, cfgPath := newTestApp(t)

	out, err := run(t, a, "--config", cfgPath, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "RedWARP v1.2.3") || !strings.Contains(out, "abc123") {
		t.Errorf("version output = %q", out)
	}
}

func TestRootWithoutGUI(t *testing.T) {
	a, _, _, cfgPath := newTestApp(t)

	if _, err := run(t, a, "--config", cfgPath); err == nil {
		t.Error("root command without a GUI should fail")
	}

	a.gui = func(cfg *config.Config, version string) int {
		if cfg == nil || version != "1.2.3" {
			t.Errorf("gui called with %v, %v", cfg, version)
		}
		return 3
	}
	if _, err := run(t, a, "--config", cfgPath); err != nil {
		t.Fatal(err)
	}
	if a.exitCode != 3 {
		t.Errorf("exitCode = %d, want 3", a.exitCode)
	}
}
