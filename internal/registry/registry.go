package registry

import (
	"fmt"
	"sync"

	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
)

// SportRegistry manages registered sport modules
type SportRegistry struct {
	sports map[models.SportCode]contracts.SportModule
	mu     sync.RWMutex
}

// NewSportRegistry creates a new sport registry
func NewSportRegistry() *SportRegistry {
	return &SportRegistry{
		sports: make(map[models.SportCode]contracts.SportModule),
	}
}

// Register adds a sport module to the registry
func (r *SportRegistry) Register(sport contracts.SportModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sport.GetSportKey()
	if _, exists := r.sports[key]; exists {
		return fmt.Errorf("sport %s is already registered", key)
	}

	r.sports[key] = sport
	return nil
}

// GetSportModule retrieves a sport module by code. Satisfies the
// ModuleSource dependency of the aggregator and the evaluator.
func (r *SportRegistry) GetSportModule(sport models.SportCode) (contracts.SportModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	module, exists := r.sports[sport]
	return module, exists
}

// GetAll returns all registered sports
func (r *SportRegistry) GetAll() []contracts.SportModule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sports := make([]contracts.SportModule, 0, len(r.sports))
	for _, sport := range r.sports {
		sports = append(sports, sport)
	}
	return sports
}

// Count returns the number of registered sports
func (r *SportRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sports)
}
