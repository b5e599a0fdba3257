package services

import (
	"suraah/internal/domain"
	"suraah/internal/metrics"
	"suraah/internal/repos"
)

// IntentService holds at most one pending buy-now item per browsing session,
// written through to durable storage so a reload keeps the selection.
type IntentService struct {
	Intents *repos.IntentRepo
	Metrics *metrics.StoreMetrics
}

func NewIntentService(intents *repos.IntentRepo, m *metrics.StoreMetrics) *IntentService {
	return &IntentService{Intents: intents, Metrics: m}
}

// Set replaces the session's pending item. Quantities below one are clamped.
func (s *IntentService) Set(sessionID string, it domain.OrderIntent) error {
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	if err := s.Intents.Put(sessionID, it); err != nil {
		return err
	}
	s.Metrics.IntentMutated()
	return nil
}

// Get returns the pending item, or nil when the session holds none.
func (s *IntentService) Get(sessionID string) (*domain.OrderIntent, error) {
	return s.Intents.Get(sessionID)
}

// UpdateQuantity sets the pending quantity; zero or below clears the intent
// entirely, including its durable copy.
func (s *IntentService) UpdateQuantity(sessionID string, quantity int) (*domain.OrderIntent, error) {
	if quantity <= 0 {
		if err := s.Clear(sessionID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	it, err := s.Intents.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, nil
	}
	it.Quantity = quantity
	if err := s.Intents.Put(sessionID, *it); err != nil {
		return nil, err
	}
	s.Metrics.IntentMutated()
	return it, nil
}

func (s *IntentService) Clear(sessionID string) error {
	if err := s.Intents.Clear(sessionID); err != nil {
		return err
	}
	s.Metrics.IntentMutated()
	return nil
}

func (s *IntentService) TotalPrice(sessionID string) (float64, error) {
	it, err := s.Intents.Get(sessionID)
	if err != nil || it == nil {
		return 0, err
	}
	return it.TotalPrice(), nil
}

func (s *IntentService) TotalItems(sessionID string) (int, error) {
	it, err := s.Intents.Get(sessionID)
	if err != nil || it == nil {
		return 0, err
	}
	return it.Quantity, nil
}
