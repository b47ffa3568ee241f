package services

import (
	"context"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"skylane/concourse/internal/constants"
)

// PaymentGateway settles a charge against an external processor.
// Ok=false means the processor refused; err means it never answered.
type PaymentGateway interface {
	Charge(ctx context.Context, bookingReference string, amount float64, method constants.PaymentMethod) (transactionID string, ok bool, err error)
}

// SimulatedGateway approves charges with a configurable probability.
// The default of 1.0 makes every payment succeed, which keeps local
// demos deterministic; lower it to exercise the retry path.
type SimulatedGateway struct {
	successProbability float64

	mu  sync.Mutex
	rng *rand.Rand
}

var _ PaymentGateway = (*SimulatedGateway)(nil)

func NewSimulatedGateway(successProbability float64, seed int64) *SimulatedGateway {
	return &SimulatedGateway{
		successProbability: successProbability,
		rng:                rand.New(rand.NewSource(seed)),
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, bookingReference string, amount float64, method constants.PaymentMethod) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()

	transactionID := uuid.NewString()
	return transactionID, roll < g.successProbability || g.successProbability >= 1, nil
}
