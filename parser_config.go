package bbdlz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Parser converts a plain buffer into a token sequence whose decode
// reproduces the buffer exactly.
type Parser interface {
	Parse(p []byte) ([]Token, error)
}

// ParserConfig provides the interface to parser configurations.
type ParserConfig interface {
	NewParser() (Parser, error)
	Clone() ParserConfig
	SetDefaults()
	Verify() error
	json.Marshaler
	json.Unmarshaler
}

// ParseJSON converts JSON data into a parser configuration. The Type member
// of the JSON object selects the configuration type.
func ParseJSON(data []byte) (ParserConfig, error) {
	var s = struct{ Type string }{}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("bbdlz: json data unmarshal error: %w", err)
	}
	var cfg ParserConfig
	switch s.Type {
	case "Optimal":
		cfg = &OptimalConfig{}
	case "Greedy":
		cfg = &GreedyConfig{}
	default:
		return nil, fmt.Errorf("bbdlz: unknown parser type %q", s.Type)
	}
	if err := unmarshalJSON(cfg, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parserType(cfg ParserConfig) string {
	v := reflect.Indirect(reflect.ValueOf(cfg))
	s := v.Type().Name()
	pt, ok := strings.CutSuffix(s, "Config")
	if !ok {
		panic("parser config type name must end with Config")
	}
	return pt
}

// unmarshalJSON fills the fields of the parser configuration value from the
// JSON data and requires its Type member to match the configuration type.
func unmarshalJSON(cfg ParserConfig, data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	x, ok := m["Type"]
	if !ok {
		return fmt.Errorf("bbdlz: json data needs Type member")
	}
	pt, ok := x.(string)
	if !ok {
		return fmt.Errorf("bbdlz: json data Type member must be string")
	}
	ptCfg := parserType(cfg)
	if ptCfg != pt {
		return fmt.Errorf("bbdlz: json data Type member must be %s, got %s",
			ptCfg, pt)
	}
	v := reflect.Indirect(reflect.ValueOf(cfg))
	for k, val := range m {
		if k == "Type" {
			continue
		}
		if _, ok := v.Type().FieldByName(k); !ok {
			return fmt.Errorf("bbdlz: %sConfig doesn't have field %s",
				ptCfg, k)
		}
		fv := v.FieldByName(k)
		vj := reflect.ValueOf(val)
		if !vj.Type().ConvertibleTo(fv.Type()) {
			return fmt.Errorf(
				"bbdlz: json data member %s must have type %s, got %s",
				k, fv.Type(), vj.Type())
		}
		fv.Set(vj.Convert(fv.Type()))
	}
	return nil
}

// marshalJSON marshals the parser configuration value into JSON data with an
// additional Type member naming the configuration type.
func marshalJSON(cfg ParserConfig) ([]byte, error) {
	buf := new(bytes.Buffer)
	v := reflect.Indirect(reflect.ValueOf(cfg))
	t := v.Type()
	fmt.Fprintf(buf, "{\n  \"Type\": %q,\n", parserType(cfg))
	n := t.NumField()
	for i := 0; i < n; i++ {
		f := t.Field(i)
		p, err := json.Marshal(v.Field(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("bbdlz: json marshal error: %w", err)
		}
		fmt.Fprintf(buf, "  %q: %s", f.Name, p)
		if i < n-1 {
			fmt.Fprint(buf, ",\n")
		} else {
			fmt.Fprint(buf, "\n")
		}
	}
	fmt.Fprintf(buf, "}\n")
	return buf.Bytes(), nil
}
