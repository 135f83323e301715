package transaction

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Complete records proof of the exchange and finalizes the transaction.
func (s *Service) Complete(ctx context.Context, actorID, id uuid.UUID, proof string) (*Transaction, error) {
	proof = strings.TrimSpace(proof)
	if proof == "" {
		return nil, ErrProofRequired
	}

	from := []Status{StatusPending, StatusAccepted}
	if s.opts.RequireAccepted {
		from = []Status{StatusAccepted}
	}

	return s.transition(ctx, actorID, id, transitionRule{
		to:      StatusCompleted,
		from:    from,
		allowed: eitherParty,
	}, StatusUpdate{
		Proof:       new(proof),
		CompletedAt: new(s.now().UTC()),
	})
}

// Cancel withdraws a transaction that has not reached a terminal status.
// Either party may cancel.
func (s *Service) Cancel(ctx context.Context, actorID, id uuid.UUID) (*Transaction, error) {
	return s.transition(ctx, actorID, id, transitionRule{
		to:      StatusCancelled,
		from:    []Status{StatusPending, StatusAccepted},
		allowed: eitherParty,
	}, StatusUpdate{})
}
