package game

import "context"

// Guard predicates composed by the transport before invoking core
// operations. The core re-validates its own invariants regardless.

// EnsureMember fails unless the user plays the game.
func (s *Service) EnsureMember(ctx context.Context, gameID, userID uint) error {
	member, err := s.IsMember(ctx, gameID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}
	return nil
}

// EnsureLeader fails unless the user leads the game's current hand.
func (s *Service) EnsureLeader(ctx context.Context, gameID, userID uint) error {
	hand, err := s.CurrentHand(ctx, gameID)
	if err != nil {
		return err
	}
	if hand.LeaderID == nil || *hand.LeaderID != userID {
		return ErrNotLeader
	}
	return nil
}

// EnsureConditionsMet fails while any per-game condition blocks progress.
func (s *Service) EnsureConditionsMet(ctx context.Context, gameID uint) error {
	unmet, err := s.ConditionsMet(ctx, gameID)
	if err != nil {
		return err
	}
	if len(unmet) > 0 {
		return ErrConditionsNotMet
	}
	return nil
}
