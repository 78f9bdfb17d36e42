package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"starline-salvage/internal/rng"
	"starline-salvage/internal/session"
	apperrors "starline-salvage/internal/shared/errors"
	"starline-salvage/internal/world"

	"github.com/google/uuid"
)

const (
	minGeneratedSeed = 1
	maxGeneratedSeed = 999999
)

// ServiceConfig carries the knobs the service reads from configuration.
type ServiceConfig struct {
	Backend           string
	AllowSeedOverride bool
	IdleTTL           time.Duration
	SweepInterval     time.Duration
}

type Service struct {
	store       session.Store
	cfg         ServiceConfig
	clock       func() time.Time
	seedSource  func(now time.Time) int64
	idGenerator func() string
	logger      *slog.Logger
}

func NewService(store session.Store, cfg ServiceConfig, logger *slog.Logger) *Service {
	logger.Debug("Initializing game service", "backend", cfg.Backend)

	return &Service{
		store:       store,
		cfg:         cfg,
		clock:       time.Now,
		seedSource:  clockSeed,
		idGenerator: uuid.NewString,
		logger:      logger,
	}
}

// clockSeed draws a seed in [1, 999999] from a stream keyed by the clock.
func clockSeed(now time.Time) int64 {
	return int64(rng.New(now.UnixNano()).IntRange(minGeneratedSeed, maxGeneratedSeed))
}

// NewGame creates a session docked at base and returns its first view.
func (s *Service) NewGame(ctx context.Context, opts NewGameOptions) (View, error) {
	logger := s.logger.With("component", "game_service", "operation", "new_game")

	now := s.clock()
	seed := s.seedSource(now)
	if opts.Seed != nil {
		if !s.cfg.AllowSeedOverride {
			return View{}, apperrors.ValidationReason(ReasonSeedOverrideDisabled, "Seed override is disabled")
		}
		seed = *opts.Seed
	}

	layout, err := world.Generate(seed)
	if err != nil {
		return View{}, apperrors.WrapInternal("failed to generate world", err)
	}

	sess := session.New(s.idGenerator(), seed, layout, now)
	if err := s.store.Create(ctx, sess); err != nil {
		return View{}, apperrors.WrapInternal("failed to store session", err)
	}

	logger.Info("Game created",
		"session_id", sess.ID,
		"seed", seed,
		"anomalies", len(layout.Anomalies),
		"stations", len(layout.Stations))

	return Project(sess, nil), nil
}

// Act resolves one action against a session. Rejected actions leave the
// session exactly as it was.
func (s *Service) Act(ctx context.Context, req ActionRequest) (View, error) {
	if req.GameID == "" {
		return View{}, apperrors.ValidationReason(ReasonMissingGameID, "Missing game_id")
	}

	logger := s.logger.With(
		"component", "game_service",
		"operation", "act",
		"session_id", req.GameID,
		"action", req.Action,
	)

	var outcome Outcome
	updated, err := s.store.Update(ctx, req.GameID, func(sess *session.Session) error {
		o, err := Resolve(sess, req)
		if err != nil {
			return err
		}
		outcome = o
		if !o.Applied {
			return session.ErrNoChange
		}
		return nil
	})
	if err != nil {
		return View{}, s.translate(err)
	}

	if outcome.Applied {
		logger.Debug("Action resolved",
			"turn", updated.Turn,
			"status", updated.Status,
			"hull", updated.Hull,
			"credits", updated.Credits)
		if updated.Status.Terminal() {
			logger.Info("Game finished", "status", updated.Status, "turn", updated.Turn)
		}
	} else {
		logger.Debug("Action ignored on finished game", "status", updated.Status)
	}

	return Project(updated, outcome.Nearby), nil
}

// State returns the current view of a session. The game state is left as is,
// but the read counts as activity for idle eviction.
func (s *Service) State(ctx context.Context, id string) (View, error) {
	sess, err := s.store.Update(ctx, id, func(*session.Session) error { return nil })
	if err != nil {
		return View{}, s.translate(err)
	}
	return Project(sess, nil), nil
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	logger := s.logger.With("component", "game_service", "operation", "delete", "session_id", id)

	if err := s.store.Delete(ctx, id); err != nil {
		return s.translate(err)
	}

	logger.Info("Game deleted")
	return nil
}

// Stats reports how many sessions the store holds.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return Stats{}, apperrors.WrapInternal("failed to count sessions", err)
	}
	return Stats{Sessions: count, Backend: s.cfg.Backend}, nil
}

// SweepIdle evicts sessions idle for longer than the configured TTL.
func (s *Service) SweepIdle(ctx context.Context) (int, error) {
	if s.cfg.IdleTTL <= 0 {
		return 0, nil
	}
	evicted, err := s.store.EvictIdle(ctx, s.clock().Add(-s.cfg.IdleTTL))
	if err != nil {
		return 0, fmt.Errorf("failed to evict idle sessions: %w", err)
	}
	return evicted, nil
}

// RunSweeper evicts idle sessions on every sweep interval until ctx ends.
func (s *Service) RunSweeper(ctx context.Context) error {
	logger := s.logger.With("component", "game_service", "operation", "sweeper")
	if s.cfg.IdleTTL <= 0 || s.cfg.SweepInterval <= 0 {
		logger.Info("Idle session eviction disabled")
		return nil
	}

	logger.Info("Idle session sweeper started",
		"idle_ttl", s.cfg.IdleTTL,
		"interval", s.cfg.SweepInterval)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Idle session sweeper stopped")
			return nil
		case <-ticker.C:
			evicted, err := s.SweepIdle(ctx)
			if err != nil {
				logger.Error("Idle session sweep failed", "error", err)
				continue
			}
			if evicted > 0 {
				logger.Info("Evicted idle sessions", "count", evicted)
			}
		}
	}
}

// Ping checks that the session store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) translate(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, session.ErrNotFound):
		return errGameNotFound()
	case errors.As(err, &appErr):
		return err
	default:
		return apperrors.WrapInternal("session store failure", err)
	}
}
