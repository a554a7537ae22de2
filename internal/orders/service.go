package orders

import (
	"context"

	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
	"github.com/westcoasttreez/storefront-backend/pkg/pagination"
)

// ListResult is one page of a session's order history.
type ListResult struct {
	Orders []Order `json:"orders"`
	Cursor string  `json:"next_cursor,omitempty"`
}

// Service is the read surface over placed orders. Orders are written only by
// checkout.
type Service interface {
	Get(ctx context.Context, sessionID, orderID string) (*Order, error)
	List(ctx context.Context, sessionID string, params pagination.Params) (*ListResult, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Get(ctx context.Context, sessionID, orderID string) (*Order, error) {
	return s.repo.FindByID(ctx, sessionID, orderID)
}

func (s *service) List(ctx context.Context, sessionID string, params pagination.Params) (*ListResult, error) {
	var cursor *pagination.Cursor
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	list, next, err := s.repo.ListBySession(ctx, sessionID, params.Limit, cursor)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Orders: list}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}
