package warp

import (
	"bufio"
	"io"
	"strings"
)

// Line prefixes recognized by the rewrite rules.
const (
	interfaceHeader  = "[Interface]"
	sectionStart     = "["
	privateKeyPrefix = "PrivateKey ="
	mtuPrefix        = "MTU = "
	endpointPrefix   = "Endpoint = "
	dnsPrefix        = "DNS = "
)

// Textual IPv6 markers removed when IPv6 is disabled.
const (
	// IPv6RoutedPrefix starts the IPv6 address wgcf assigns to the interface.
	IPv6RoutedPrefix = ", 2606:4700"
	// IPv6DefaultRoute is the IPv6 catch-all in AllowedIPs.
	IPv6DefaultRoute = ", ::/0"
)

// Section tracks whether the current line belongs to [Interface].
type Section struct {
	inInterface bool
}

// InInterface reports whether the last observed header was [Interface].
func (s *Section) InInterface() bool { return s.inInterface }

func (s *Section) observe(line string) {
	switch {
	case strings.HasPrefix(line, interfaceHeader):
		s.inInterface = true
	case strings.HasPrefix(line, sectionStart):
		s.inInterface = false
	}
}

// TransformLine rewrites one template line and returns the lines to emit.
// obfs is nil when no obfuscation block should be inserted.
func TransformLine(line string, sec *Section, opts Options, obfs *ObfuscationParams) []string {
	if !opts.IPv6 {
		line = StripIPv6(line)
	}
	sec.observe(line)

	switch {
	case sec.InInterface() && strings.HasPrefix(line, privateKeyPrefix) && opts.Obfuscation && obfs != nil:
		return append([]string{line}, obfs.Lines()...)
	case strings.HasPrefix(line, mtuPrefix):
		return []string{mtuPrefix + opts.MTU}
	case strings.HasPrefix(line, endpointPrefix):
		return []string{endpointPrefix + opts.Endpoint}
	case strings.HasPrefix(line, dnsPrefix):
		return []string{DNSLine(opts)}
	default:
		return []string{line}
	}
}

// DNSLine renders the DNS line for opts.
func DNSLine(opts Options) string {
	if opts.IPv6 {
		return dnsPrefix + opts.DNSv4 + ", " + opts.DNSv6
	}
	return dnsPrefix + opts.DNSv4
}

// StripIPv6 removes every IPv6RoutedPrefix address and every IPv6DefaultRoute.
// An address runs from its prefix to the next comma, blank, or end of line.
func StripIPv6(line string) string {
	for {
		i := strings.Index(line, IPv6RoutedPrefix)
		if i < 0 {
			break
		}
		end := i + len(IPv6RoutedPrefix)
		if j := strings.IndexAny(line[end:], ", \t"); j >= 0 {
			end += j
		} else {
			end = len(line)
		}
		line = line[:i] + line[end:]
	}
	return strings.ReplaceAll(line, IPv6DefaultRoute, "")
}

// Transform streams r through TransformLine and writes newline-terminated
// lines to w.
func Transform(r io.Reader, w io.Writer, opts Options, obfs *ObfuscationParams) error {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)
	var sec Section

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		for _, emitted := range TransformLine(line, &sec, opts, obfs) {
			if _, err := out.WriteString(emitted + "\n"); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return out.Flush()
}
