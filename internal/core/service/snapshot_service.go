package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rodnnnney/consensus25/internal/metrics"
	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// SnapshotService implements the role-scoped data aggregator. One Build call
// issues the role-conditional fetch plan and accumulates everything into a
// single snapshot; it only ever reads from the store.
type SnapshotService struct {
	employers    ports.EmployerRepository
	freelancers  ports.FreelancerRepository
	invitations  ports.InvitationRepository
	transactions ports.TransactionRepository
	jobs         ports.JobRepository
	log          zerolog.Logger
}

func NewSnapshotService(
	employers ports.EmployerRepository,
	freelancers ports.FreelancerRepository,
	invitations ports.InvitationRepository,
	transactions ports.TransactionRepository,
	jobs ports.JobRepository,
	log zerolog.Logger,
) *SnapshotService {
	return &SnapshotService{
		employers:    employers,
		freelancers:  freelancers,
		invitations:  invitations,
		transactions: transactions,
		jobs:         jobs,
		log:          log,
	}
}

// Build produces the snapshot for one principal. The profile fetch is a hard
// dependency per role; every collection fetch after it is best-effort and
// lands either in the snapshot or in its failure report.
func (s *SnapshotService) Build(ctx context.Context, principal domain.Principal, role string) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Principal: principal,
		BuiltAt:   time.Now().UTC(),
	}

	// 1. No role record yet: empty snapshot, nothing to fetch.
	if role == "" {
		return snap, nil
	}

	var mu sync.Mutex

	// 2. Role-specific profile, then its dependent collections.
	switch role {
	case domain.RoleEmployer:
		employer, err := s.employers.FindByID(ctx, principal.ID)
		if err != nil {
			return nil, fmt.Errorf("employer profile for %s: %w", principal.ID, err)
		}
		snap.Profile = domain.EmployerRoleProfile(employer)

		// The three secondary fetches only depend on the profile, not on
		// each other; run them concurrently. A member failing records its
		// failure and returns nil so siblings keep going.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			roster, err := s.freelancers.ListByEmployer(gctx, employer.ID)
			s.collect(snap, &mu, domain.CollectionRoster, err, func() { snap.Roster = roster })
			return nil
		})
		g.Go(func() error {
			invs, err := s.invitations.ListByEmployer(gctx, employer.ID)
			s.collect(snap, &mu, domain.CollectionInvitations, err, func() { snap.Invitations = invs })
			return nil
		})
		g.Go(func() error {
			txs, err := s.transactions.ListByCompany(gctx, employer.ID)
			s.collect(snap, &mu, domain.CollectionTransactions, err, func() { snap.Transactions = txs })
			return nil
		})
		_ = g.Wait()

	case domain.RoleFreelancer:
		freelancer, err := s.freelancers.FindByID(ctx, principal.ID)
		if err != nil {
			return nil, fmt.Errorf("freelancer profile for %s: %w", principal.ID, err)
		}
		snap.Profile = domain.FreelancerRoleProfile(freelancer)

		txs, err := s.transactions.ListByContractor(ctx, freelancer.ID)
		s.collect(snap, &mu, domain.CollectionTransactions, err, func() { snap.Transactions = txs })

	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrRoleLookup, role)
	}

	// 3. Global collections, fetched for both roles.
	jobs, err := s.jobs.ListAll(ctx)
	s.collect(snap, &mu, domain.CollectionJobs, err, func() { snap.Jobs = jobs })

	directory, err := s.freelancers.ListAll(ctx)
	s.collect(snap, &mu, domain.CollectionDirectory, err, func() { snap.Directory = directory })

	metrics.SnapshotsBuiltTotal.WithLabelValues(role).Inc()
	s.log.Info().
		Str("principal_id", principal.ID).
		Str("role", role).
		Int("failures", len(snap.Failures)).
		Bool("rate_limited", snap.RateLimited).
		Msg("snapshot built")

	return snap, nil
}

// collect applies one sub-fetch result: on success the assign closure runs,
// on failure the snapshot's report gains an entry and the build continues.
func (s *SnapshotService) collect(snap *domain.Snapshot, mu *sync.Mutex, c domain.Collection, err error, assign func()) {
	mu.Lock()
	defer mu.Unlock()

	if err == nil {
		assign()
		return
	}

	rateLimited := errors.Is(err, domain.ErrRateLimited)
	snap.Failures = append(snap.Failures, domain.FetchFailure{
		Collection:  c,
		Err:         err,
		Message:     err.Error(),
		RateLimited: rateLimited,
	})
	if rateLimited {
		snap.RateLimited = true
		metrics.RateLimitHitsTotal.WithLabelValues("snapshot").Inc()
	}

	metrics.SnapshotFetchFailures.WithLabelValues(string(c)).Inc()
	s.log.Warn().Err(err).
		Str("collection", string(c)).
		Str("principal_id", snap.Principal.ID).
		Msg("sub-fetch failed, continuing with partial snapshot")
}
