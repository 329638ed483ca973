// Package providers holds the static provider descriptor table and the
// closed set of parsers converting provider feeds to CIDR lists.
package providers

import "sort"

// Provider describes a single upstream source of IP ranges.
type Provider struct {
	// Name is the identifier used on the CLI and in config files.
	Name string
	// URL is the provider endpoint the feed is fetched from.
	URL string
	// Parser is one of the parser identifiers registered in this package.
	Parser string
	// Output is the canonical list file, relative to the providers directory
	// unless absolute.
	Output string
}

// Builtin returns the built-in provider table. The returned map is a fresh
// copy; callers may merge overrides into it.
func Builtin() map[string]Provider {
	table := make(map[string]Provider, len(builtin))
	for name, p := range builtin {
		table[name] = p
	}
	return table
}

var builtin = map[string]Provider{
	"aws": {
		Name:   "aws",
		URL:    "https://ip-ranges.amazonaws.com/ip-ranges.json",
		Parser: "aws_json",
		Output: "aws.txt",
	},
	"digitalocean": {
		Name:   "digitalocean",
		URL:    "https://www.digitalocean.com/geo/google.csv",
		Parser: "digitalocean_csv",
		Output: "digitalocean.txt",
	},
	"linode": {
		Name:   "linode",
		URL:    "https://geoip.linode.com/",
		Parser: "linode_text",
		Output: "linode.txt",
	},
	"ovh": {
		Name:   "ovh",
		URL:    "https://www.ovh.com/manager/dedicated/allowerlist.json",
		Parser: "ovh_json",
		Output: "ovh.txt",
	},
	"tor": {
		Name:   "tor",
		URL:    "https://check.torproject.org/exit-addresses",
		Parser: "tor_exit",
		Output: "tor-exit-nodes.txt",
	},
	"vultr": {
		Name:   "vultr",
		URL:    "https://www.vultr.com/resources/faq/#downloadableIPRanges",
		Parser: "vultr_html",
		Output: "vultr.txt",
	},
}

// Names returns the sorted names of a provider table.
func Names(table map[string]Provider) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
