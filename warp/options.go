package warp

import (
	"fmt"
	"strings"

	"github.com/yllada/redwarp/common"
)

// Options holds the user choices for a single generation run.
// It is passed by value and never modified after construction.
type Options struct {
	// Endpoint replaces the peer endpoint (host:port). Not validated.
	Endpoint string
	// MTU replaces the interface MTU. Kept as text.
	MTU string
	// IPv6 keeps IPv6 addresses and routes when true.
	IPv6 bool
	// Obfuscation inserts the AmneziaWG parameter block.
	Obfuscation bool
	// RandomizeObfuscation draws fresh parameters instead of the fixed set.
	RandomizeObfuscation bool
	// DNSv4 is the IPv4 resolver list written to the DNS line.
	DNSv4 string
	// DNSv6 is appended to the DNS line when IPv6 is enabled.
	DNSv6 string
}

// DefaultOptions returns the form defaults: OpenDNS, IPv6 and fixed obfuscation.
func DefaultOptions() Options {
	v4, _ := LookupDNS(FamilyIPv4, PresetOpenDNS)
	v6, _ := LookupDNS(FamilyIPv6, PresetOpenDNS)
	return Options{
		Endpoint:    common.DefaultEndpoint,
		MTU:         common.DefaultMTU,
		IPv6:        true,
		Obfuscation: true,
		DNSv4:       v4,
		DNSv6:       v6,
	}
}

// Validate rejects values that would produce an unusable profile.
// Formats are not checked; values are substituted literally.
func (o Options) Validate() error {
	fields := []struct {
		name, value string
		required    bool
	}{
		{"endpoint", o.Endpoint, true},
		{"MTU", o.MTU, true},
		{"IPv4 DNS", o.DNSv4, true},
		{"IPv6 DNS", o.DNSv6, o.IPv6},
	}
	for _, f := range fields {
		if f.required && strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is empty", common.ErrInvalidOption, f.name)
		}
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", common.ErrInvalidOption, f.name)
		}
	}
	return nil
}

// Family selects the address family of a DNS preset.
type Family int

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
)

// String returns the family name used in messages.
func (f Family) String() string {
	if f == FamilyIPv6 {
		return "IPv6"
	}
	return "IPv4"
}

// Preset IDs accepted by LookupDNS and ResolveDNS.
const (
	PresetOpenDNS    = "opendns"
	PresetCloudflare = "cloudflare"
	PresetGoogle     = "google"
	PresetQuad9      = "quad9"
	PresetCustom     = "custom"
)

// DNSPreset is a named resolver pair for both families.
type DNSPreset struct {
	ID    string
	Label string
	IPv4  string
	IPv6  string
}

var dnsPresets = []DNSPreset{
	{PresetOpenDNS, "OpenDNS", "208.67.222.222, 208.67.220.220", "2620:119:35::35, 2620:119:53::53"},
	{PresetCloudflare, "Cloudflare", "1.1.1.1, 1.0.0.1", "2606:4700:4700::1111, 2606:4700:4700::1001"},
	{PresetGoogle, "Google", "8.8.8.8, 8.8.4.4", "2001:4860:4860::8888, 2001:4860:4860::8844"},
	{PresetQuad9, "Quad9", "9.9.9.9, 149.112.112.112", "2620:fe::fe, 2620:fe::9"},
	{PresetCustom, "Custom", "", ""},
}

// DNSPresets returns the presets in form order, ending with Custom.
func DNSPresets() []DNSPreset {
	out := make([]DNSPreset, len(dnsPresets))
	copy(out, dnsPresets)
	return out
}

// PresetIndex returns the form position of id, or 0 when unknown.
func PresetIndex(id string) int {
	for i, p := range dnsPresets {
		if p.ID == id {
			return i
		}
	}
	return 0
}

// LookupDNS returns the resolver list of a preset for one family.
// Custom has no addresses and is reported as unknown here.
func LookupDNS(family Family, id string) (string, error) {
	for _, p := range dnsPresets {
		if p.ID != id || id == PresetCustom {
			continue
		}
		if family == FamilyIPv6 {
			return p.IPv6, nil
		}
		return p.IPv4, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownPreset, id)
}

// ResolveDNS returns custom when id is PresetCustom, the preset list otherwise.
func ResolveDNS(family Family, id, custom string) (string, error) {
	if id == PresetCustom {
		return strings.TrimSpace(custom), nil
	}
	return LookupDNS(family, id)
}
