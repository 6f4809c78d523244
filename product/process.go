package product

import (
	"fmt"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/model"
)

// Process is the synchronous product of a flat interval process with a DFA
// under a labelling. It implements model.System; the solver recognizes
// KindProduct and runs the underlying model's backup on projected values.
type Process[R imdp.Real] struct {
	mdp    *model.IMDP[R]
	dfa    *DFA
	labels []int // L: S → Σ
}

// NewProcess validates the composition: one label per model state, every
// label inside the automaton's alphabet.
func NewProcess[R imdp.Real](mdp *model.IMDP[R], dfa *DFA, labels []int) (*Process[R], error) {
	if mdp == nil || dfa == nil {
		return nil, fmt.Errorf("product: nil component: %w", imdp.ErrDimensionMismatch)
	}
	if len(labels) != mdp.NumStates() {
		return nil, fmt.Errorf("product: %d labels for %d states: %w",
			len(labels), mdp.NumStates(), imdp.ErrDimensionMismatch)
	}
	for s, sym := range labels {
		if sym < 0 || sym >= dfa.NumSymbols() {
			return nil, fmt.Errorf("product: label %d at state %d outside alphabet: %w", sym, s, imdp.ErrInvalidState)
		}
	}

	l := make([]int, len(labels))
	copy(l, labels)

	return &Process[R]{mdp: mdp, dfa: dfa, labels: l}, nil
}

// NumStates returns |S|·|Q|.
func (p *Process[R]) NumStates() int { return p.mdp.NumStates() * p.dfa.NumStates() }

// Kind returns model.KindProduct.
func (p *Process[R]) Kind() model.Kind { return model.KindProduct }

// Underlying returns the wrapped flat process.
func (p *Process[R]) Underlying() *model.IMDP[R] { return p.mdp }

// Automaton returns the DFA component.
func (p *Process[R]) Automaton() *DFA { return p.dfa }

// Label returns L(s).
func (p *Process[R]) Label(s int) int { return p.labels[s] }

// StateIndex returns the row-major product index of (s, q).
func (p *Process[R]) StateIndex(s, q int) int { return s*p.dfa.NumStates() + q }
