package rotation

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
)

// Algorithm is a schedule generation strategy.
type Algorithm interface {
	Type() domain.AlgorithmType
	Generate(input contract.GenerationInput, gc GenerationContext) (*contract.GenerationResult, map[domain.ShiftType]*domain.RotationState, error)
}

// Registry resolves algorithm types to implementations.
type Registry struct {
	algorithms map[domain.AlgorithmType]Algorithm
}

func NewRegistry(algorithms ...Algorithm) *Registry {
	r := &Registry{algorithms: make(map[domain.AlgorithmType]Algorithm, len(algorithms))}
	for _, a := range algorithms {
		r.algorithms[a.Type()] = a
	}
	return r
}

// Get returns the algorithm for a type, or an UNKNOWN_ALGORITHM error.
func (r *Registry) Get(t domain.AlgorithmType) (Algorithm, error) {
	a, ok := r.algorithms[t]
	if !ok {
		return nil, &contract.GenerationError{
			Code:    contract.ErrUnknownAlgorithm,
			Message: fmt.Sprintf("unknown algorithm type %q", t),
		}
	}
	return a, nil
}
