package services

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	apperrors "budgetboard/internal/errors"
	"budgetboard/internal/models"
	"budgetboard/internal/store"
)

// rankFetchLimit caps how many ledger reads run concurrently during ranking.
const rankFetchLimit = 8

// leaderboardService computes per-user savings rankings.
type leaderboardService struct {
	users   store.UserStore
	ledgers store.LedgerStore
}

// NewLeaderboardService creates a new LeaderboardServicer.
func NewLeaderboardService(users store.UserStore, ledgers store.LedgerStore) LeaderboardServicer {
	return &leaderboardService{users: users, ledgers: ledgers}
}

// Rank fetches every registered user's ledger and ranks them by savings
// (monthly budget minus amount spent) for the given month, descending.
// Reads are independent, so they fan out concurrently; results land in a
// slice indexed by registration order, which a stable sort then preserves
// for equal savings. Users without a ledger or without the month are skipped.
func (s *leaderboardService) Rank(ctx context.Context, month string) ([]models.LeaderboardEntry, error) {
	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	results := make([]*models.LeaderboardEntry, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rankFetchLimit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			ledger, err := s.ledgers.Get(gctx, id)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return nil
				}
				return err
			}
			m := ledger.FindMonth(month)
			if m == nil {
				return nil
			}
			results[i] = &models.LeaderboardEntry{UserID: id, TotalSavings: m.Savings()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(ids))
	for _, e := range results {
		if e != nil {
			entries = append(entries, *e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalSavings > entries[j].TotalSavings
	})
	return entries, nil
}
