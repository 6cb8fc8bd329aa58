package kds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/metrics"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

// readyWindow controls how long ready orders linger on the board before
// aging off.
const readyWindow = 30 * time.Minute

// Service projects orders into their kitchen display shape.
type Service interface {
	Board(ctx context.Context, scope types.Scope) ([]BoardOrder, error)
	Order(ctx context.Context, orderID uuid.UUID, scope types.Scope) (*BoardOrder, error)
}

type service struct {
	repo    Repository
	cache   *BoardCache
	metrics *metrics.OrderFlowMetrics
	now     func() time.Time
}

// NewService builds the board projector. cache may be nil to disable caching.
func NewService(repo Repository, cache *BoardCache, flowMetrics *metrics.OrderFlowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("kds repository required")
	}
	return &service{
		repo:    repo,
		cache:   cache,
		metrics: flowMetrics,
		now:     time.Now,
	}, nil
}

func (s *service) Board(ctx context.Context, scope types.Scope) ([]BoardOrder, error) {
	if scope.LocationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "location context missing")
	}

	// The cache key is per location only, so company-filtered reads
	// always go to the database.
	cacheable := s.cache != nil && scope.CompanyID == uuid.Nil
	if cacheable {
		if cached, ok := s.cache.Get(ctx, scope.LocationID); ok {
			s.metrics.IncBoardCache("hit")
			return cached, nil
		}
		s.metrics.IncBoardCache("miss")
	} else {
		s.metrics.IncBoardCache("bypass")
	}

	cutoff := s.now().UTC().Add(-readyWindow)
	rows, err := s.repo.ListActive(ctx, scope, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list board orders")
	}

	board := make([]BoardOrder, 0, len(rows))
	for _, row := range rows {
		board = append(board, transformOrder(row))
	}

	if cacheable {
		s.cache.Set(ctx, scope.LocationID, board)
	}
	return board, nil
}

func (s *service) Order(ctx context.Context, orderID uuid.UUID, scope types.Scope) (*BoardOrder, error) {
	if scope.LocationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "location context missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	}

	row, err := s.repo.FindOrder(ctx, orderID, scope)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	view := transformOrder(*row)
	return &view, nil
}
