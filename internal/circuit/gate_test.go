package circuit

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// counted yields values and records how many were pulled.
func counted(values []bool, pulled *int) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for _, v := range values {
			*pulled++
			if !yield(v) {
				return
			}
		}
	}
}

func TestGateTruthTable(t *testing.T) {
	tests := []struct {
		gate   Gate
		inputs []bool
		want   bool
	}{
		{Always, nil, true},
		{Always, []bool{false}, true},
		{Always, []bool{false, false, false}, true},

		{Never, nil, false},
		{Never, []bool{true, true}, false},

		{Not, nil, true},
		{Not, []bool{true}, false},
		{Not, []bool{false}, true},
		{Not, []bool{false, true}, true},
		{Not, []bool{true, false, false}, false},

		{Xor, nil, false},
		{Xor, []bool{true}, true},
		{Xor, []bool{false}, false},
		{Xor, []bool{true, true}, false},
		{Xor, []bool{true, false}, true},
		{Xor, []bool{false, true}, true},
		{Xor, []bool{true, false, true}, true},
		{Xor, []bool{false, false, true}, false},

		{And, nil, true},
		{And, []bool{true}, true},
		{And, []bool{false}, false},
		{And, []bool{true, true}, true},
		{And, []bool{true, false}, false},
		{And, []bool{true, true, true, false}, false},
		{And, []bool{true, true, true, true}, true},

		{Nand, nil, false},
		{Nand, []bool{true}, false},
		{Nand, []bool{false}, true},
		{Nand, []bool{true, true, true}, false},
		{Nand, []bool{true, false, true}, true},

		{Or, nil, false},
		{Or, []bool{false}, false},
		{Or, []bool{true}, true},
		{Or, []bool{false, false}, false},
		{Or, []bool{false, false, false, true}, true},

		{Nor, nil, true},
		{Nor, []bool{false}, true},
		{Nor, []bool{true}, false},
		{Nor, []bool{false, false, false}, true},
		{Nor, []bool{false, true, false}, false},
	}

	for _, test := range tests {
		t.Run(test.gate.String(), func(t *testing.T) {
			got := test.gate.Evaluate(slices.Values(test.inputs))
			require.Equal(t, test.want, got, "inputs %v", test.inputs)
		})
	}
}

func TestGatePullsAtMostItsCeiling(t *testing.T) {
	inputs := []bool{true, true, true, true}

	tests := []struct {
		gate Gate
		want int
	}{
		{Always, 0},
		{Never, 0},
		{Not, 1},
		{Xor, 2},
		{And, 4},
		{Or, 1},
	}

	for _, test := range tests {
		t.Run(test.gate.String(), func(t *testing.T) {
			pulled := 0
			test.gate.Evaluate(counted(inputs, &pulled))
			require.Equal(t, test.want, pulled)
			require.LessOrEqual(t, pulled, test.gate.MaxInputs())
		})
	}
}

func TestGateShortCircuits(t *testing.T) {
	pulled := 0
	require.False(t, And.Evaluate(counted([]bool{true, false, true, true}, &pulled)))
	require.Equal(t, 2, pulled)

	pulled = 0
	require.False(t, Nor.Evaluate(counted([]bool{false, true, false}, &pulled)))
	require.Equal(t, 2, pulled)
}

func TestGateMaxInputs(t *testing.T) {
	require.Equal(t, 0, Always.MaxInputs())
	require.Equal(t, 0, Never.MaxInputs())
	require.Equal(t, 1, Not.MaxInputs())
	require.Equal(t, 2, Xor.MaxInputs())
	for _, g := range []Gate{And, Nand, Or, Nor} {
		require.Equal(t, Unbounded, g.MaxInputs())
	}
	require.Panics(t, func() { Gate(200).MaxInputs() })
	require.Panics(t, func() { Gate(200).Evaluate(slices.Values([]bool{})) })
}

func TestParseGate(t *testing.T) {
	for _, g := range Gates() {
		parsed, err := ParseGate(g.String())
		require.NoError(t, err)
		require.Equal(t, g, parsed)
	}

	g, err := ParseGate("  NaNd ")
	require.NoError(t, err)
	require.Equal(t, Nand, g)

	_, err = ParseGate("maybe")
	require.Error(t, err)
}

func TestGateText(t *testing.T) {
	b, err := Xor.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "xor", string(b))

	_, err = Gate(99).MarshalText()
	require.Error(t, err)
	require.Equal(t, "gate(99)", Gate(99).String())

	var g Gate
	require.NoError(t, g.UnmarshalText([]byte("NOR")))
	require.Equal(t, Nor, g)
	require.Error(t, g.UnmarshalText([]byte("")))
}

func TestGateNextCyclesThroughPalette(t *testing.T) {
	seen := make(map[Gate]bool)
	g := Always
	for range Gates() {
		require.True(t, g.Valid())
		seen[g] = true
		g = g.Next()
	}
	require.Equal(t, Always, g)
	require.Len(t, seen, len(Gates()))
	require.False(t, Gate(8).Valid())
}
