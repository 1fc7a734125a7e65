package warp

import (
	"errors"
	"testing"

	"github.com/yllada/redwarp/common"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Endpoint != "162.159.193.5:4500" {
		t.Errorf("Endpoint = %v, want 162.159.193.5:4500", opts.Endpoint)
	}
	if opts.MTU != "1420" {
		t.Errorf("MTU = %v, want 1420", opts.MTU)
	}
	if !opts.IPv6 || !opts.Obfuscation || opts.RandomizeObfuscation {
		t.Errorf("unexpected toggles: %+v", opts)
	}
	if opts.DNSv4 != "208.67.222.222, 208.67.220.220" {
		t.Errorf("DNSv4 = %v, want OpenDNS", opts.DNSv4)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults", func(o *Options) {}, false},
		{"empty endpoint", func(o *Options) { o.Endpoint = " " }, true},
		{"empty mtu", func(o *Options) { o.MTU = "" }, true},
		{"empty dns4", func(o *Options) { o.DNSv4 = "" }, true},
		{"empty dns6 with ipv6", func(o *Options) { o.DNSv6 = "" }, true},
		{"empty dns6 without ipv6", func(o *Options) { o.DNSv6 = ""; o.IPv6 = false }, false},
		{"newline in endpoint", func(o *Options) { o.Endpoint = "1.2.3.4:1\nMTU = 1" }, true},
		{"unparsed mtu is fine", func(o *Options) { o.MTU = "abc" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, common.ErrInvalidOption) {
				t.Errorf("Validate() error should wrap ErrInvalidOption, got %v", err)
			}
		})
	}
}

func TestLookupDNS(t *testing.T) {
	tests := []struct {
		family Family
		id     string
		want   string
	}{
		{FamilyIPv4, PresetOpenDNS, "208.67.222.222, 208.67.220.220"},
		{FamilyIPv4, PresetCloudflare, "1.1.1.1, 1.0.0.1"},
		{FamilyIPv4, PresetGoogle, "8.8.8.8, 8.8.4.4"},
		{FamilyIPv4, PresetQuad9, "9.9.9.9, 149.112.112.112"},
		{FamilyIPv6, PresetOpenDNS, "2620:119:35::35, 2620:119:53::53"},
		{FamilyIPv6, PresetCloudflare, "2606:4700:4700::1111, 2606:4700:4700::1001"},
		{FamilyIPv6, PresetGoogle, "2001:4860:4860::8888, 2001:4860:4860::8844"},
		{FamilyIPv6, PresetQuad9, "2620:fe::fe, 2620:fe::9"},
	}

	for _, tt := range tests {
		t.Run(tt.family.String()+"/"+tt.id, func(t *testing.T) {
			got, err := LookupDNS(tt.family, tt.id)
			if err != nil {
				t.Fatalf("LookupDNS() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("LookupDNS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupDNS_Unknown(t *testing.T) {
	for _, id := range []string{"", "custom", "adguard"} {
		if _, err := LookupDNS(FamilyIPv4, id); !errors.Is(err, common.ErrUnknownPreset) {
			t.Errorf("LookupDNS(%q) error = %v, want ErrUnknownPreset", id, err)
		}
	}
}

func TestResolveDNS(t *testing.T) {
	got, err := ResolveDNS(FamilyIPv6, PresetCustom, "  fd00::1 ")
	if err != nil || got != "fd00::1" {
		t.Errorf("ResolveDNS(custom) = %q, %v", got, err)
	}

	got, err = ResolveDNS(FamilyIPv4, PresetGoogle, "ignored")
	if err != nil || got != "8.8.8.8, 8.8.4.4" {
		t.Errorf("ResolveDNS(google) = %q, %v", got, err)
	}
}

func TestDNSPresets_Order(t *testing.T) {
	presets := DNSPresets()
	want := []string{PresetOpenDNS, PresetCloudflare, PresetGoogle, PresetQuad9, PresetCustom}
	if len(presets) != len(want) {
		t.Fatalf("got %d presets, want %d", len(presets), len(want))
	}
	for i, id := range want {
		if presets[i].ID != id {
			t.Errorf("preset %d = %v, want %v", i, presets[i].ID, id)
		}
		if PresetIndex(id) != i {
			t.Errorf("PresetIndex(%v) = %d, want %d", id, PresetIndex(id), i)
		}
	}

	presets[0].IPv4 = "mutated"
	if v, _ := LookupDNS(FamilyIPv4, PresetOpenDNS); v == "mutated" {
		t.Error("DNSPresets must return a copy")
	}
	if PresetIndex("unknown") != 0 {
		t.Error("unknown preset should map to the first entry")
	}
}
