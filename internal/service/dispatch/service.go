package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/areamatch"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

// Service is the dispatch engine: it selects exactly one delivery partner
// for a confirmed order and commits the assignment atomically.
type Service struct {
	partners         PartnerDirectory
	addresses        AddressResolver
	repo             dispatchtx.Runner
	matcher          *areamatch.Matcher
	maxAttempts      int
	operationTimeout time.Duration
	logger           logx.Logger
	fallbacks        counter
	retries          counter
	newOrderID       func() string
	now              func() time.Time
}

// NewService - creates a new dispatch Service.
func NewService(
	partners PartnerDirectory,
	addresses AddressResolver,
	repo dispatchtx.Runner,
	matcher *areamatch.Matcher,
	maxAttempts int,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if matcher == nil {
		matcher = areamatch.New(areamatch.DefaultThreshold)
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		partners:         partners,
		addresses:        addresses,
		repo:             repo,
		matcher:          matcher,
		maxAttempts:      maxAttempts,
		operationTimeout: timeout,
		logger:           logger,
		newOrderID:       uuid.NewString,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// WithMetrics attaches fallback and retry counters.
func (s *Service) WithMetrics(fallbacks, retries counter) *Service {
	s.fallbacks = fallbacks
	s.retries = retries
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Assign selects one delivery partner for the order and persists the
// assignment. A failed commit is retried with fresh candidate data up to
// the configured attempt budget; every other failure is terminal.
func (s *Service) Assign(ctx context.Context, in domain.CreateOrder) (domain.AssignResult, error) {
	if err := validateCreate(&in); err != nil {
		return domain.AssignResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	addr, err := s.addresses.ResolveAddress(ctx, in.CustomerID, in.AddressID)
	if err != nil {
		return domain.AssignResult{}, fmt.Errorf("resolve address: %w", err)
	}
	if addr == nil {
		return domain.AssignResult{}, apperr.ErrAddressNotFound
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		res, err := s.assignOnce(ctx, in, addr)
		if err == nil {
			return res, nil
		}
		if !apperr.Retryable(err) || ctx.Err() != nil {
			return domain.AssignResult{}, err
		}
		lastErr = err
		if attempt == s.maxAttempts {
			break
		}
		if s.retries != nil {
			s.retries.Inc()
		}
		s.logger.Warn("assignment retry",
			logx.String("customer_id", in.CustomerID),
			logx.Int("attempt", attempt),
			logx.Any("err", err),
		)
	}
	return domain.AssignResult{}, lastErr
}

// assignOnce runs a single dispatch pass: fetch candidates, rank, pick,
// commit. Candidates are re-fetched on every call so a retry sees the
// current rider pool.
func (s *Service) assignOnce(ctx context.Context, in domain.CreateOrder, addr *domain.Address) (domain.AssignResult, error) {
	candidates, err := s.partners.CandidatesInCity(ctx, addr.City)
	if err != nil {
		// directory unavailable: retryable, nothing was written
		return domain.AssignResult{}, errors.Join(apperr.ErrPersistence, err)
	}
	if len(candidates) == 0 {
		return domain.AssignResult{}, apperr.ErrNoRiders
	}

	exactPool := 0
	for _, c := range candidates {
		if c.Area == addr.Area {
			exactPool++
		}
	}

	ranked := s.matcher.Rank(addr.Area, toMatchCandidates(candidates))

	// Fallback policy: an order is never rejected for the lack of an area
	// match as long as the city has at least one rider.
	chosen := candidates[0]
	fallback := true
	if len(ranked) > 0 && s.matcher.Acceptable(ranked[0].Score) {
		if c := byID(candidates, ranked[0].ID); c != nil {
			chosen = *c
			fallback = false
		}
	}
	if fallback && s.fallbacks != nil {
		s.fallbacks.Inc()
	}

	order := &domain.Order{
		ID:                s.newOrderID(),
		CustomerID:        in.CustomerID,
		Items:             in.Items,
		TotalCents:        in.TotalCents,
		AddressID:         in.AddressID,
		City:              addr.City,
		Area:              addr.Area,
		Contact:           in.Contact,
		AssignedPartnerID: chosen.ID,
		Status:            domain.StatusAssigned,
		CreatedAt:         s.now(),
	}

	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		p, err := tx.LockPartner(ctx, chosen.ID)
		if err != nil {
			return err
		}
		if p == nil {
			// rider vanished between selection and lock
			return apperr.ErrPersistence
		}
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}
		return tx.AppendActiveOrder(ctx, chosen.ID, order.ID)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrPersistence) {
			return domain.AssignResult{}, err
		}
		return domain.AssignResult{}, errors.Join(apperr.ErrPersistence, err)
	}

	s.logger.Info("rider assigned",
		logx.String("event", "rider_assigned"),
		logx.String("order_id", order.ID),
		logx.Int64("partner_id", chosen.ID),
		logx.String("city", addr.City),
		logx.String("area", addr.Area),
		logx.Int("candidates", len(candidates)),
		logx.Int("exact_area_pool", exactPool),
		logx.Bool("fallback", fallback),
	)

	return domain.AssignResult{
		OrderID:   order.ID,
		PartnerID: chosen.ID,
		City:      addr.City,
		Area:      addr.Area,
		Status:    order.Status,
	}, nil
}

// validateCreate rejects malformed input before any directory access.
func validateCreate(in *domain.CreateOrder) error {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.AddressID = strings.TrimSpace(in.AddressID)
	if in.CustomerID == "" || in.AddressID == "" {
		return apperr.ErrInvalid
	}
	if len(in.Items) == 0 {
		return apperr.ErrInvalid
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Quantity <= 0 || it.PriceCents < 0 {
			return apperr.ErrInvalid
		}
	}
	if in.TotalCents <= 0 {
		return apperr.ErrInvalid
	}
	if in.Contact != "" && !domain.ValidateContact(in.Contact) {
		return apperr.ErrInvalid
	}
	return nil
}

func toMatchCandidates(partners []domain.DeliveryPartner) []areamatch.Candidate {
	out := make([]areamatch.Candidate, 0, len(partners))
	for _, p := range partners {
		out = append(out, areamatch.Candidate{ID: p.ID, Area: p.Area})
	}
	return out
}

func byID(partners []domain.DeliveryPartner, id int64) *domain.DeliveryPartner {
	for i := range partners {
		if partners[i].ID == id {
			return &partners[i]
		}
	}
	return nil
}
