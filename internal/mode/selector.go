package mode

import (
	"context"
	"errors"
	"time"

	"github.com/westcoasttreez/storefront-backend/pkg/config"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
	"github.com/westcoasttreez/storefront-backend/pkg/redis"
)

// DefaultMode is the storefront browse surfaces fall back to while a session
// has not chosen yet. The selection itself stays unset until Set is called.
const DefaultMode = enums.ModeDelivery

type kv interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	ModeKey(sessionID string) string
}

// Selector persists each session's storefront mode in Redis so the choice
// survives server restarts and follows the session across instances.
type Selector struct {
	kv  kv
	ttl time.Duration
	log *logger.Logger
}

func NewSelector(client *redis.Client, cfg config.ModeConfig, log *logger.Logger) *Selector {
	return newSelector(client, cfg.TTL, log)
}

func newSelector(store kv, ttl time.Duration, log *logger.Logger) *Selector {
	return &Selector{kv: store, ttl: ttl, log: log}
}

// Get returns the session's mode, or the empty Mode for a session that never
// chose (or cleared its choice). Callers that only browse substitute
// DefaultMode; checkout refuses to proceed without a choice. A corrupted
// stored value is logged and treated as unset rather than failing the request.
func (s *Selector) Get(ctx context.Context, sessionID string) (enums.Mode, error) {
	raw, err := s.kv.Get(ctx, s.kv.ModeKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading session mode")
	}

	mode, parseErr := enums.ParseMode(raw)
	if parseErr != nil {
		s.log.Warn(s.log.WithField(ctx, "stored_mode", raw), "session mode value is corrupt, treating as unset")
		return "", nil
	}
	return mode, nil
}

// Set persists the session's mode choice.
func (s *Selector) Set(ctx context.Context, sessionID string, mode enums.Mode) error {
	if !mode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "mode must be delivery or wholesale")
	}
	if err := s.kv.Set(ctx, s.kv.ModeKey(sessionID), mode.String(), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting session mode")
	}
	return nil
}

// Clear drops the stored choice, returning the session to the unset state.
func (s *Selector) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.ModeKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing session mode")
	}
	return nil
}
