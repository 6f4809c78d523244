package product

import (
	"fmt"

	"github.com/katalvlaran/imdp"
)

// DFA is a complete deterministic finite automaton over the alphabet
// 0..numSymbols−1 with states 0..numStates−1. The transition table is stored
// row-major: delta[q·numSymbols + symbol] is the successor of q.
type DFA struct {
	numStates  int
	numSymbols int
	delta      []int
	initial    int
	accepting  []bool
}

// NewDFA validates and copies the automaton. delta must have length
// numStates·numSymbols with every entry in [0, numStates); initial and every
// accepting state likewise.
func NewDFA(numStates, numSymbols int, delta []int, initial int, accepting []int) (*DFA, error) {
	if numStates <= 0 || numSymbols <= 0 {
		return nil, fmt.Errorf("product: automaton shape %dx%d: %w", numStates, numSymbols, imdp.ErrDimensionMismatch)
	}
	if len(delta) != numStates*numSymbols {
		return nil, fmt.Errorf("product: delta length %d, want %d: %w",
			len(delta), numStates*numSymbols, imdp.ErrDimensionMismatch)
	}
	for i, q := range delta {
		if q < 0 || q >= numStates {
			return nil, fmt.Errorf("product: delta[%d] = %d out of range: %w", i, q, imdp.ErrInvalidState)
		}
	}
	if initial < 0 || initial >= numStates {
		return nil, fmt.Errorf("product: initial state %d out of range: %w", initial, imdp.ErrInvalidState)
	}

	acc := make([]bool, numStates)
	for _, q := range accepting {
		if q < 0 || q >= numStates {
			return nil, fmt.Errorf("product: accepting state %d out of range: %w", q, imdp.ErrInvalidState)
		}
		acc[q] = true
	}

	d := make([]int, len(delta))
	copy(d, delta)

	return &DFA{numStates: numStates, numSymbols: numSymbols, delta: d, initial: initial, accepting: acc}, nil
}

// NumStates returns |Q|.
func (d *DFA) NumStates() int { return d.numStates }

// NumSymbols returns |Σ|.
func (d *DFA) NumSymbols() int { return d.numSymbols }

// Initial returns q₀.
func (d *DFA) Initial() int { return d.initial }

// Accepting reports whether q is accepting.
func (d *DFA) Accepting(q int) bool { return d.accepting[q] }

// Step returns δ(q, symbol).
func (d *DFA) Step(q, symbol int) int { return d.delta[q*d.numSymbols+symbol] }
