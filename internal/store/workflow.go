package store

import (
	"context"
	"fmt"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// SubmitClaim attaches an ownership claim to a found item and moves it to
// claim_requested. The request timestamp is stamped here, not by the caller.
func (s *Store) SubmitClaim(ctx context.Context, id string, claim model.ClaimRequest) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return model.Item{}, ErrNotFound
	}

	item := &s.items[i]
	if item.Status != model.StatusFound {
		return model.Item{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, model.StatusClaimRequested)
	}

	claim.RequestDate = time.Now()
	item.Status = model.StatusClaimRequested
	item.ClaimRequest = &claim

	s.persist(ctx)
	return item.Clone(), nil
}

// VerifyClaim moves a pending claim to verified. The claim stays attached so
// the admin can still see who to hand the item to.
func (s *Store) VerifyClaim(ctx context.Context, id string) (model.Item, error) {
	return s.transition(ctx, id, model.StatusClaimRequested, model.StatusVerified, false)
}

// RejectClaim clears a pending claim and resets the item to found.
func (s *Store) RejectClaim(ctx context.Context, id string) (model.Item, error) {
	return s.transition(ctx, id, model.StatusClaimRequested, model.StatusFound, true)
}

// MarkReturned closes out a verified item as received. This is terminal; the
// item stays in the catalog as history but drops its claim payload.
func (s *Store) MarkReturned(ctx context.Context, id string) (model.Item, error) {
	return s.transition(ctx, id, model.StatusVerified, model.StatusReceived, true)
}

// transition performs a single validated status change. There is no generic
// setter: anything outside the named transitions is ErrInvalidTransition.
func (s *Store) transition(ctx context.Context, id string, from, to model.ItemStatus, clearClaim bool) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return model.Item{}, ErrNotFound
	}

	item := &s.items[i]
	if item.Status != from {
		return model.Item{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, to)
	}

	item.Status = to
	if clearClaim {
		item.ClaimRequest = nil
	}

	s.persist(ctx)
	return item.Clone(), nil
}
