// Package model provides the estimator interfaces, fitted-state tracking and
// weight snapshots shared by gdreg models.
package model

import (
	"sync"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

// StateManager tracks whether a model has been fitted and the shape of the
// data it was fitted on. It is safe for concurrent use and is meant to be
// embedded by pointer (composition, not inheritance).
type StateManager struct {
	mu sync.RWMutex

	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted on data of the given shape.
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset returns the model to the unfitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// Dimensions returns the number of features and samples seen during fitting.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted returns a NotFittedError naming modelName and method when
// the model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return gdregErrors.NewNotFittedError(modelName, method)
	}
	return nil
}

// RequireFeatures checks that X has the number of columns seen during
// fitting. It assumes the model is fitted.
func (s *StateManager) RequireFeatures(op string, nFeatures int) error {
	expected, _ := s.Dimensions()
	if nFeatures != expected {
		return gdregErrors.NewDimensionError(op, expected, nFeatures, 1)
	}
	return nil
}
