package circuit

import (
	"fmt"
	"iter"
	"math"
	"strings"
)

// Gate is a combinational logic function applied to a node's inputs.
type Gate uint8

const (
	Always Gate = iota
	Never
	Not
	Xor
	And
	Nand
	Or
	Nor
)

// Unbounded is the arity ceiling of gates that fold over any number of inputs.
const Unbounded = math.MaxInt

var gateNames = [...]string{
	Always: "always",
	Never:  "never",
	Not:    "not",
	Xor:    "xor",
	And:    "and",
	Nand:   "nand",
	Or:     "or",
	Nor:    "nor",
}

// Gates lists every gate in palette order.
func Gates() []Gate {
	return []Gate{Always, Never, Not, Xor, And, Nand, Or, Nor}
}

// ParseGate resolves a gate from its case-insensitive name.
func ParseGate(name string) (Gate, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for g, s := range gateNames {
		if s == n {
			return Gate(g), nil
		}
	}
	return 0, fmt.Errorf("unknown gate %q", name)
}

func (g Gate) String() string {
	if int(g) < len(gateNames) {
		return gateNames[g]
	}
	return fmt.Sprintf("gate(%d)", uint8(g))
}

// Valid reports whether g is one of the defined gates.
func (g Gate) Valid() bool { return int(g) < len(gateNames) }

// Next returns the gate following g in palette order, wrapping around.
func (g Gate) Next() Gate { return Gate((int(g) + 1) % len(gateNames)) }

// MarshalText implements encoding.TextMarshaler.
func (g Gate) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("unknown gate %d", uint8(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gate) UnmarshalText(text []byte) error {
	parsed, err := ParseGate(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MaxInputs returns how many inputs the gate actually consumes. Inputs beyond
// this ceiling are never pulled.
func (g Gate) MaxInputs() int {
	switch g {
	case Always, Never:
		return 0
	case Not:
		return 1
	case Xor:
		return 2
	case And, Nand, Or, Nor:
		return Unbounded
	default:
		panic(fmt.Sprintf("circuit: unknown gate %d", uint8(g)))
	}
}

// Evaluate computes the gate output. Inputs are pulled lazily: constants pull
// nothing, Not and Xor pull at most one and two values (a missing value reads
// as false) and the folding gates stop at the first deciding input.
func (g Gate) Evaluate(inputs iter.Seq[bool]) bool {
	switch g {
	case Always:
		return true
	case Never:
		return false
	case Not:
		in := take(inputs, 1)
		return !in[0]
	case Xor:
		in := take(inputs, 2)
		return in[0] != in[1]
	case And:
		return all(inputs)
	case Nand:
		return !all(inputs)
	case Or:
		return anyTrue(inputs)
	case Nor:
		return !anyTrue(inputs)
	default:
		panic(fmt.Sprintf("circuit: unknown gate %d", uint8(g)))
	}
}

// take pulls up to n values and pads the rest with false.
func take(inputs iter.Seq[bool], n int) []bool {
	out := make([]bool, n)
	if n == 0 {
		return out
	}
	i := 0
	for v := range inputs {
		out[i] = v
		i++
		if i == n {
			break
		}
	}
	return out
}

func all(inputs iter.Seq[bool]) bool {
	for v := range inputs {
		if !v {
			return false
		}
	}
	return true
}

func anyTrue(inputs iter.Seq[bool]) bool {
	for v := range inputs {
		if v {
			return true
		}
	}
	return false
}
