package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobpilot/jobreview/internal/core"
	"github.com/jobpilot/jobreview/internal/domain/card"
	"github.com/jobpilot/jobreview/internal/domain/model"
	apperrors "github.com/jobpilot/jobreview/internal/errors"
	"github.com/jobpilot/jobreview/internal/observability/metrics"
	"github.com/jobpilot/jobreview/internal/observability/statsd"
)

// listingSessions is the slice of ListingService that decisions need.
type listingSessions interface {
	UpdateCard(ctx context.Context, sessionID, id string, fn func(*card.State) error) (model.JobAd, card.State, error)
	Remove(ctx context.Context, sessionID, id string) error
}

// DecisionServiceConfig tunes the in-flight guard.
type DecisionServiceConfig struct {
	// ClaimTTL bounds how long a claim survives a crashed request. The store write of a
	// decision is given the same deadline.
	ClaimTTL time.Duration
	Now      func() time.Time
}

// DecisionServiceOptions groups dependencies for DecisionService.
type DecisionServiceOptions struct {
	Repo     core.JobAdRepository
	Listings listingSessions
	Claims   core.DecisionClaimer
	Config   DecisionServiceConfig
	Logger   *slog.Logger // optional
	Metrics  statsd.Sink  // optional
}

// DecisionService records applied/declined decisions for listed job ads.
type DecisionService struct {
	repo     core.JobAdRepository
	listings listingSessions
	claims   core.DecisionClaimer
	claimTTL time.Duration
	now      func() time.Time
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewDecisionService constructs a new DecisionService.
func NewDecisionService(opts DecisionServiceOptions) *DecisionService {
	if opts.Repo == nil {
		panic("JobAdRepository is required")
	}
	if opts.Listings == nil {
		panic("listing sessions are required")
	}
	if opts.Claims == nil {
		panic("DecisionClaimer is required")
	}

	cfg := opts.Config
	if cfg.ClaimTTL <= 0 {
		cfg.ClaimTTL = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DecisionService{
		repo:     opts.Repo,
		listings: opts.Listings,
		claims:   opts.Claims,
		claimTTL: cfg.ClaimTTL,
		now:      cfg.Now,
		logger:   logger.With("component", "decision_service"),
		metrics:  opts.Metrics,
	}
}

// DecisionOutcome reports how a decision resolved.
type DecisionOutcome struct {
	Job  model.JobAd
	Card card.State
	// Removed is true when the decision was stored and the listing left the held list.
	Removed bool
}

// Decide stores a decision for a listed job ad. A store failure is not returned: it is
// logged, the card is re-enabled and the listing stays actionable. Errors are returned only
// for invalid input, an unknown listing, or a decision already in flight.
func (s *DecisionService) Decide(ctx context.Context, sessionID string, req model.DecisionRequest) (DecisionOutcome, error) {
	if err := req.Validate(); err != nil {
		return DecisionOutcome{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, "validate decision")
	}
	decision, err := model.ParseDecision(req.Decision)
	if err != nil {
		return DecisionOutcome{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, "parse decision")
	}

	claimKey := sessionID + ":" + req.JobID
	token, held, err := s.claims.Claim(ctx, claimKey, s.claimTTL)
	if err != nil {
		return DecisionOutcome{}, fmt.Errorf("claim decision: %w", err)
	}
	if !held {
		return DecisionOutcome{}, card.ErrDecisionInFlight
	}
	defer s.release(claimKey, token)

	var stale bool
	job, _, err := s.listings.UpdateCard(ctx, sessionID, req.JobID, func(c *card.State) error {
		stale = c.BeginDecision()
		return nil
	})
	if err != nil {
		return DecisionOutcome{}, err
	}
	if stale {
		s.logger.Warn("cleared stale in-flight flag", "job_id", req.JobID)
	}

	// The write and the bookkeeping after it run to completion even if the client goes away,
	// but the write may not outlive the claim.
	ctx = context.WithoutCancel(ctx)
	writeCtx, cancel := context.WithTimeout(ctx, s.claimTTL)
	updateErr := s.repo.Update(writeCtx, job.Decide(decision, s.now()))
	cancel()
	metrics.EmitDecision(s.metrics, string(decision), updateErr)

	_, resolved, err := s.listings.UpdateCard(ctx, sessionID, req.JobID, func(c *card.State) error {
		c.Resolve(updateErr == nil)
		return nil
	})
	if err != nil && !apperrors.IsNotFound(err) {
		return DecisionOutcome{}, err
	}

	if updateErr != nil {
		s.logger.Error("decision_failed",
			"job_id", req.JobID,
			"decision", decision,
			"error_code", apperrors.GetCode(updateErr),
			"error", updateErr,
		)
		return DecisionOutcome{Job: job, Card: resolved}, nil
	}

	if err := s.listings.Remove(ctx, sessionID, req.JobID); err != nil {
		return DecisionOutcome{}, fmt.Errorf("remove decided job ad: %w", err)
	}
	s.logger.Info("decision recorded", "job_id", req.JobID, "decision", decision)
	return DecisionOutcome{Job: job.Decide(decision, s.now()), Removed: true}, nil
}

// Record stores a decision for a job ad looked up by primary key, outside any review
// session. It is used by the admin CLI. Store errors are returned.
func (s *DecisionService) Record(ctx context.Context, id string, dateAdded int64, decision model.Decision) (model.JobAd, error) {
	if !decision.Valid() {
		return model.JobAd{}, apperrors.ValidationField("decision", "must be applied or declined")
	}
	job, err := s.repo.Get(ctx, id, dateAdded)
	if err != nil {
		return model.JobAd{}, fmt.Errorf("get job ad: %w", err)
	}
	if job.Processed {
		return *job, apperrors.Validationf("job ad %s was already processed", id)
	}

	decided := job.Decide(decision, s.now())
	err = s.repo.Update(ctx, decided)
	metrics.EmitDecision(s.metrics, string(decision), err)
	if err != nil {
		return model.JobAd{}, fmt.Errorf("update job ad: %w", err)
	}
	return decided, nil
}

func (s *DecisionService) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.claims.Release(ctx, key, token); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("release decision claim failed", "key", key, "error", err)
	}
}
