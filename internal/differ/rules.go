package differ

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// Rules configures the classification heuristics. Empty lists fall back
// to the defaults.
type Rules struct {
	AllocatorTypes   []string `toml:"allocator_types"`
	IOInterfaceTypes []string `toml:"io_interface_types"`
	IOConcreteTypes  []string `toml:"io_concrete_types"`
	IOParamNames     []string `toml:"io_param_names"`
	FactoryNames     []string `toml:"factory_names"`
}

// DefaultRules matches the std library layout of Zig 0.11 through 0.16.
func DefaultRules() Rules {
	return Rules{
		AllocatorTypes:   []string{"Allocator"},
		IOInterfaceTypes: []string{"Io.Writer", "Io.Reader", "AnyWriter", "AnyReader", "Io"},
		IOConcreteTypes: []string{
			"Reader", "Writer", "GenericReader", "GenericWriter", "File", "Stream",
			"BufferedReader", "BufferedWriter", "FixedBufferStream",
		},
		IOParamNames: []string{"reader", "writer", "stream", "in_stream", "out_stream"},
		FactoryNames: []string{"init", "create", "initCapacity", "new", "open"},
	}
}

// WithDefaults replaces empty lists with the default ones.
func (r Rules) WithDefaults() Rules {
	def := DefaultRules()
	fill := func(dst *[]string, src []string) {
		if len(*dst) == 0 {
			*dst = src
		}
	}
	fill(&r.AllocatorTypes, def.AllocatorTypes)
	fill(&r.IOInterfaceTypes, def.IOInterfaceTypes)
	fill(&r.IOConcreteTypes, def.IOConcreteTypes)
	fill(&r.IOParamNames, def.IOParamNames)
	fill(&r.FactoryNames, def.FactoryNames)
	return r
}

// Digest identifies the rule set; equal rules give equal digests
// regardless of list order.
func (r Rules) Digest() string {
	h := sha256.New()
	for _, list := range [][]string{
		r.AllocatorTypes, r.IOInterfaceTypes, r.IOConcreteTypes, r.IOParamNames, r.FactoryNames,
	} {
		sorted := slices.Clone(list)
		slices.Sort(sorted)
		h.Write([]byte(strings.Join(sorted, ",")))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (r Rules) isAllocator(typ []string) bool {
	return slices.Contains(r.AllocatorTypes, lastSegment(typePath(typ)))
}

func (r Rules) isFactory(name string) bool {
	return slices.Contains(r.FactoryNames, name)
}

func (r Rules) isIOParamName(name string) bool {
	name = strings.ToLower(name)
	for _, n := range r.IOParamNames {
		if name == n || strings.HasSuffix(name, "_"+n) {
			return true
		}
	}
	return false
}
