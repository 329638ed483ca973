package providers

import (
	"reflect"
	"testing"
)

func TestParseAWSJSON(t *testing.T) {
	content := `{"prefixes":[{"ip_prefix":"203.0.113.0/24"},{"other":"x"}]}`

	cidrs, err := parseAWSJSON([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cidrs, []string{"203.0.113.0/24"}) {
		t.Errorf("got %v, want [203.0.113.0/24]", cidrs)
	}
}

func TestParseAWSJSON_Malformed(t *testing.T) {
	if _, err := parseAWSJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseDigitalOceanCSV(t *testing.T) {
	content := "192.0.2.0/24,US,New York\n# comment\n\nnot-a-cidr,DE,Berlin\n198.51.100.0/24,NL,Amsterdam\n"

	cidrs, err := parseDigitalOceanCSV([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"192.0.2.0/24", "198.51.100.0/24"}
	if !reflect.DeepEqual(cidrs, expected) {
		t.Errorf("got %v, want %v", cidrs, expected)
	}
}

func TestParseLinodeText(t *testing.T) {
	content := "192.0.2.0/24,US,NY,New York,10001\n2600:3c00::/32,US,TX,Dallas,75001\ngarbage,US\n198.51.100.0/26,CA,ON,Toronto,M5H\n"

	cidrs, err := parseLinodeText([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"192.0.2.0/24", "198.51.100.0/26"}
	if !reflect.DeepEqual(cidrs, expected) {
		t.Errorf("got %v, want %v", cidrs, expected)
	}
}

func TestParseOVHJSON(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			"Region mapping",
			`{"eu":["192.0.2.0/24","198.51.100.0/24"],"na":["203.0.113.0/24"]}`,
			[]string{"192.0.2.0/24", "198.51.100.0/24", "203.0.113.0/24"},
		},
		{
			"Flat array",
			`["192.0.2.0/24","198.51.100.0/24"]`,
			[]string{"192.0.2.0/24", "198.51.100.0/24"},
		},
		{
			"Non-string elements skipped",
			`{"eu":["192.0.2.0/24",42],"na":"not-a-list"}`,
			[]string{"192.0.2.0/24"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cidrs, err := parseOVHJSON([]byte(tt.content))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// Region map iteration order is not deterministic
			if len(cidrs) != len(tt.expected) {
				t.Fatalf("got %v, want %v", cidrs, tt.expected)
			}
			got := make(map[string]bool)
			for _, c := range cidrs {
				got[c] = true
			}
			for _, c := range tt.expected {
				if !got[c] {
					t.Errorf("missing %s in %v", c, cidrs)
				}
			}
		})
	}
}

func TestParseTorExit(t *testing.T) {
	content := "ExitNode ABCDEF\nPublished 2026-01-01 00:00:00\nLastStatus 2026-01-01 01:00:00\nExitAddress 198.51.100.7 443\nExitAddress 203.0.113.9 9001\nSomethingElse 192.0.2.1\n"

	cidrs, err := parseTorExit([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"198.51.100.7/32", "203.0.113.9/32"}
	if !reflect.DeepEqual(cidrs, expected) {
		t.Errorf("got %v, want %v", cidrs, expected)
	}
}

func TestParseVultrHTML(t *testing.T) {
	content := `<html><body>
	<p>Ranges: 192.0.2.0/24 and 198.51.100.64/26</p>
	<p>Repeated: 192.0.2.0/24</p>
	<p>Bogus: 999.0.2.0/24 and 10.0.0.0/99</p>
	</body></html>`

	cidrs, err := parseVultrHTML([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"192.0.2.0/24", "198.51.100.64/26"}
	if !reflect.DeepEqual(cidrs, expected) {
		t.Errorf("got %v, want %v", cidrs, expected)
	}
}

func TestBuiltinTableParsersRegistered(t *testing.T) {
	for name, p := range Builtin() {
		if !IsParser(p.Parser) {
			t.Errorf("provider %s references unregistered parser %q", name, p.Parser)
		}
		if p.URL == "" || p.Output == "" {
			t.Errorf("provider %s has an incomplete descriptor: %+v", name, p)
		}
	}
}

func TestNames(t *testing.T) {
	names := Names(Builtin())
	expected := []string{"aws", "digitalocean", "linode", "ovh", "tor", "vultr"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("got %v, want %v", names, expected)
	}
}
