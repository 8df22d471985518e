package service

import "math/rand"

// PricingStrategy computes the price of a ride at creation time.
type PricingStrategy interface {
	Price(pickupLocation, dropoffLocation string) float64
}

// RandomPricer is the demo pricing policy: a uniform price in [20, 120),
// ignoring the locations entirely. Production deployments should swap in a
// distance- or time-based strategy.
type RandomPricer struct{}

// NewRandomPricer creates a new RandomPricer.
func NewRandomPricer() *RandomPricer {
	return &RandomPricer{}
}

// Price returns a random demo price.
func (p *RandomPricer) Price(pickupLocation, dropoffLocation string) float64 {
	return float64(rand.Intn(100) + 20)
}

// Ensure RandomPricer implements PricingStrategy.
var _ PricingStrategy = (*RandomPricer)(nil)
