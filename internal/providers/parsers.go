package providers

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/entra-tools/ip-block-lists/internal/cidr"
)

// ParseFunc extracts CIDR strings from a provider's native feed format.
// Malformed elements inside an otherwise parseable document are skipped,
// not fatal.
type ParseFunc func(content []byte) ([]string, error)

var parsers = map[string]ParseFunc{
	"aws_json":         parseAWSJSON,
	"digitalocean_csv": parseDigitalOceanCSV,
	"linode_text":      parseLinodeText,
	"ovh_json":         parseOVHJSON,
	"tor_exit":         parseTorExit,
	"vultr_html":       parseVultrHTML,
}

// ParserFor returns the parser registered under the given identifier.
func ParserFor(name string) (ParseFunc, bool) {
	p, ok := parsers[name]
	return p, ok
}

// IsParser reports whether name is a known parser identifier.
func IsParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParserNames returns all registered parser identifiers, sorted.
func ParserNames() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseAWSJSON handles the AWS ip-ranges.json document: a "prefixes" array
// of objects whose "ip_prefix" field holds the IPv4 CIDR. Objects without
// the field (IPv6-only entries) are skipped.
func parseAWSJSON(content []byte) ([]string, error) {
	var doc struct {
		Prefixes []struct {
			IPPrefix string `json:"ip_prefix"`
		} `json:"prefixes"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("malformed JSON: %v", err)
	}

	var cidrs []string
	for _, prefix := range doc.Prefixes {
		if prefix.IPPrefix != "" {
			cidrs = append(cidrs, prefix.IPPrefix)
		}
	}
	return cidrs, nil
}

// parseDigitalOceanCSV handles rows of the form "range,country,city".
// The first field is kept only if it looks like a CIDR.
func parseDigitalOceanCSV(content []byte) ([]string, error) {
	var cidrs []string
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry := strings.TrimSpace(strings.Split(line, ",")[0])
		if strings.Contains(entry, "/") {
			cidrs = append(cidrs, entry)
		}
	}
	return cidrs, nil
}

// parseLinodeText handles the Linode geofeed: rows of
// "ip_prefix,alpha2code,region,city,postal_code". Only IPv4 prefixes are
// kept; unparseable and IPv6 rows are skipped.
func parseLinodeText(content []byte) ([]string, error) {
	var cidrs []string
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry := strings.TrimSpace(strings.Split(line, ",")[0])
		if _, err := cidr.ParseNetwork(entry); err != nil {
			continue
		}
		cidrs = append(cidrs, entry)
	}
	return cidrs, nil
}

// parseOVHJSON handles the OVH allow-list: either a mapping of region name
// to an array of CIDR strings, or a flat array of CIDR strings. Non-string
// elements are skipped.
func parseOVHJSON(content []byte) ([]string, error) {
	var doc interface{}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("malformed JSON: %v", err)
	}

	var cidrs []string
	switch value := doc.(type) {
	case map[string]interface{}:
		for _, networks := range value {
			list, ok := networks.([]interface{})
			if !ok {
				continue
			}
			for _, network := range list {
				if s, ok := network.(string); ok {
					cidrs = append(cidrs, s)
				}
			}
		}
	case []interface{}:
		for _, network := range value {
			if s, ok := network.(string); ok {
				cidrs = append(cidrs, s)
			}
		}
	}
	return cidrs, nil
}

// parseTorExit handles the Tor exit-addresses feed. Lines of the form
// "ExitAddress <ip> <port> ..." contribute the address as a /32 network;
// all other record lines contribute nothing.
func parseTorExit(content []byte) ([]string, error) {
	var cidrs []string
	for _, line := range strings.Split(string(content), "\n") {
		if !strings.HasPrefix(line, "ExitAddress ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			cidrs = append(cidrs, fields[1]+"/32")
		}
	}
	return cidrs, nil
}

var vultrCIDRPattern = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}/\d{1,2}\b`)

// parseVultrHTML scans raw HTML/text for dotted-quad CIDR patterns. Matches
// that do not parse as networks are dropped, as are duplicates within the
// page.
func parseVultrHTML(content []byte) ([]string, error) {
	seen := make(map[string]bool)
	var cidrs []string
	for _, match := range vultrCIDRPattern.FindAllString(string(content), -1) {
		if _, err := cidr.ParseNetwork(match); err != nil {
			continue
		}
		if seen[match] {
			continue
		}
		seen[match] = true
		cidrs = append(cidrs, match)
	}
	return cidrs, nil
}
