package service

import (
	"context"
	"fmt"

	"cricket-registration-backend/internal/database/models"
	"cricket-registration-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

// AdminService computes dashboard statistics
type AdminService struct {
	teams         repository.TeamRepositoryInterface
	players       repository.PlayerRepositoryInterface
	registrations repository.RegistrationRepositoryInterface
	messages      repository.ContactMessageRepositoryInterface
}

// NewAdminService creates a new admin service
func NewAdminService(
	teams repository.TeamRepositoryInterface,
	players repository.PlayerRepositoryInterface,
	registrations repository.RegistrationRepositoryInterface,
	messages repository.ContactMessageRepositoryInterface,
) *AdminService {
	return &AdminService{
		teams:         teams,
		players:       players,
		registrations: registrations,
		messages:      messages,
	}
}

// Stats are the admin dashboard figures. Revenue is in rupees.
type Stats struct {
	TotalTeams            int64 `json:"totalTeams"`
	ConfirmedTeams        int64 `json:"confirmedTeams"`
	TotalRevenue          int64 `json:"totalRevenue"`
	PendingPayments       int64 `json:"pendingPayments"`
	TotalPlayers          int64 `json:"totalPlayers"`
	ContactMessages       int64 `json:"contactMessages"`
	UnreadContactMessages int64 `json:"unreadContactMessages"`
}

// StatsResponse wraps Stats the way the dashboard expects
type StatsResponse struct {
	Stats Stats `json:"stats"`
}

// Stats runs the dashboard queries concurrently
func (s *AdminService) Stats(ctx context.Context) (*StatsResponse, error) {
	var stats Stats
	unread := models.ContactStatusUnread

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalTeams, err = s.teams.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ConfirmedTeams, err = s.registrations.CountByStatus(ctx, models.PaymentStatusCompleted)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRevenue, err = s.registrations.SumFeesByStatus(ctx, models.PaymentStatusCompleted)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingPayments, err = s.registrations.CountByStatus(ctx, models.PaymentStatusPending)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalPlayers, err = s.players.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ContactMessages, err = s.messages.Count(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.UnreadContactMessages, err = s.messages.Count(ctx, &unread)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return &StatsResponse{Stats: stats}, nil
}
