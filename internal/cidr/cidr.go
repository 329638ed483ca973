// Package cidr implements parsing and normalization of IPv4 CIDR list lines.
package cidr

import (
	"fmt"
	"net/netip"
	"strings"
)

// IsSkippable reports whether a list line carries no entry (blank or comment).
func IsSkippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// ParseNetwork parses a list line as an IPv4 network. Host bits may be set;
// they are cleared in the returned prefix. A bare address is treated as /32.
// IPv6 networks are rejected.
func ParseNetwork(line string) (netip.Prefix, error) {
	trimmed := strings.TrimSpace(line)

	candidate := trimmed
	if !strings.Contains(candidate, "/") {
		candidate = candidate + "/32"
	}

	prefix, err := netip.ParsePrefix(candidate)
	if err != nil {
		return netip.Prefix{}, err
	}

	if !prefix.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("IPv6 not supported: %s", trimmed)
	}

	return prefix.Masked(), nil
}

// Validate checks a single list line. Blank lines and comments are valid.
// Returns (false, message) for lines that do not parse as an IPv4 network.
func Validate(line string) (bool, string) {
	if IsSkippable(line) {
		return true, ""
	}

	if _, err := ParseNetwork(line); err != nil {
		return false, err.Error()
	}

	return true, ""
}

// Normalize returns the canonical form of a CIDR line: the network base with
// host bits cleared plus the prefix length.
func Normalize(line string) (string, error) {
	prefix, err := ParseNetwork(line)
	if err != nil {
		return "", err
	}
	return prefix.String(), nil
}
