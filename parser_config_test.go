package bbdlz

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		cfg  ParserConfig
	}{
		{
			name: "optimal",
			json: `{"Type": "Optimal"}`,
			cfg:  &OptimalConfig{},
		},
		{
			name: "optimal with depth",
			json: `{"Type": "Optimal", "ChainDepth": 32}`,
			cfg:  &OptimalConfig{ChainDepth: 32},
		},
		{
			name: "greedy",
			json: `{"Type": "Greedy", "ChainDepth": 8}`,
			cfg:  &GreedyConfig{ChainDepth: 8},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ParseJSON([]byte(tc.json))
			if err != nil {
				t.Fatalf("ParseJSON error %s", err)
			}
			if diff := cmp.Diff(tc.cfg, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{{`},
		{"missing type", `{"ChainDepth": 8}`},
		{"unknown type", `{"Type": "Huffman"}`},
		{"unknown field", `{"Type": "Optimal", "WindowSize": 8}`},
		{"wrong field type", `{"Type": "Optimal", "ChainDepth": "deep"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseJSON([]byte(tc.json)); err == nil {
				t.Errorf("ParseJSON(%s) returned no error", tc.json)
			}
		})
	}
}

func TestConfigMarshalRoundTrip(t *testing.T) {
	for _, cfg := range []ParserConfig{
		&OptimalConfig{ChainDepth: 16},
		&GreedyConfig{},
	} {
		t.Run(parserType(cfg), func(t *testing.T) {
			p, err := cfg.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON error %s", err)
			}
			if !strings.Contains(string(p), `"Type"`) {
				t.Errorf("marshaled config lacks Type member: %s", p)
			}
			got, err := ParseJSON(p)
			if err != nil {
				t.Fatalf("ParseJSON error %s; data: %s", err, p)
			}
			if diff := cmp.Diff(cfg, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigVerify(t *testing.T) {
	for _, cfg := range []ParserConfig{
		&OptimalConfig{ChainDepth: -1},
		&GreedyConfig{ChainDepth: -1},
	} {
		if err := cfg.Verify(); err == nil {
			t.Errorf("%sConfig.Verify accepted negative ChainDepth",
				parserType(cfg))
		}
		if _, err := cfg.NewParser(); err == nil {
			t.Errorf("%sConfig.NewParser accepted negative ChainDepth",
				parserType(cfg))
		}
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &OptimalConfig{ChainDepth: 4}
	c := cfg.Clone().(*OptimalConfig)
	c.ChainDepth = 99
	if cfg.ChainDepth != 4 {
		t.Errorf("Clone shares state: ChainDepth = %d", cfg.ChainDepth)
	}
}
