// Package weights provides the atomic weight reference table.
package weights

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/frizinak/chn/chem"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed weights.yaml
var defaultTable []byte

var uncertaintyRE = regexp.MustCompile(`\([0-9]+\)`)

type entry struct {
	Standard string `yaml:"standard"`
	Abundant string `yaml:"abundant"`
}

// Default returns the built-in table (H through Lr).
func Default() (chem.Weights, error) {
	return Parse(defaultTable)
}

// LoadFile reads a table in the same YAML layout as the built-in one.
func LoadFile(path string) (chem.Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

func Parse(data []byte) (chem.Weights, error) {
	raw := make(map[string]entry)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	w := make(chem.Weights, len(raw))
	for sym, e := range raw {
		el, err := element(e.Standard, e.Abundant)
		if err != nil {
			return nil, fmt.Errorf("element '%s': %w", sym, err)
		}
		w[sym] = el
	}

	return w, nil
}

// Merge returns a new table holding base with every entry of override
// replacing or adding to it.
func Merge(base, override chem.Weights) chem.Weights {
	w := make(chem.Weights, len(base)+len(override))
	for s, e := range base {
		w[s] = e
	}
	for s, e := range override {
		w[s] = e
	}
	return w
}

func element(standard, abundant string) (chem.Element, error) {
	var el chem.Element
	var err error
	el.Standard, err = decimal.NewFromString(cleanMass(standard))
	if err != nil {
		return el, fmt.Errorf("invalid standard weight: '%s': %w", standard, err)
	}
	el.Abundant, err = decimal.NewFromString(cleanMass(abundant))
	if err != nil {
		return el, fmt.Errorf("invalid isotope mass: '%s': %w", abundant, err)
	}
	if !el.Standard.IsPositive() || !el.Abundant.IsPositive() {
		return el, fmt.Errorf("masses must be positive: '%s' '%s'", standard, abundant)
	}

	return el, nil
}

// cleanMass strips the notation tables commonly wrap masses in:
// 12.011(1), [98], non-breaking spaces.
func cleanMass(str string) string {
	str = strings.ReplaceAll(str, "\u00a0", "")
	str = strings.TrimSpace(str)
	str = uncertaintyRE.ReplaceAllString(str, "")
	str = strings.Trim(str, "[] ")
	return str
}
