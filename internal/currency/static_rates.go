package currency

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// StaticRates is a fixed in-memory rate table. A pair set in one direction
// also answers the inverse direction.
type StaticRates struct {
	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

var _ RateSource = (*StaticRates)(nil)

func NewStaticRates() *StaticRates {
	return &StaticRates{rates: make(map[string]decimal.Decimal)}
}

func pairKey(from, to string) string {
	return from + "/" + to
}

// Set registers the rate for one unit of from expressed in to.
func (s *StaticRates) Set(from, to string, rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[pairKey(from, to)] = rate
}

func (s *StaticRates) Rate(from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if rate, ok := s.rates[pairKey(from, to)]; ok {
		return rate, nil
	}
	if inverse, ok := s.rates[pairKey(to, from)]; ok && !inverse.IsZero() {
		return decimal.NewFromInt(1).Div(inverse), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrUnknownRate, from, to)
}
