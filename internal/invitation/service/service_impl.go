package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/noreyni/webhook-api/internal/clock"
	"github.com/noreyni/webhook-api/internal/invitation/domain"
	projectdomain "github.com/noreyni/webhook-api/internal/project/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Repo     domain.Repository
	Projects projectdomain.Repository
	Clock    clock.Clock
}

type Service struct {
	log      *zap.Logger
	repo     domain.Repository
	projects projectdomain.Repository
	clock    clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("invitation.service"),
		repo:     p.Repo,
		projects: p.Projects,
		clock:    p.Clock,
	}
}

func (s *Service) Invite(ctx context.Context, req domain.InviteRequest, actorID string) ([]domain.View, error) {
	start := time.Now()

	project, err := s.findProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actorID {
		return nil, fmt.Errorf("%w: project %s", projectdomain.ErrNotOwner, req.ProjectID)
	}

	invitees := make([]string, 0, len(req.InviteeIDs))
	for _, id := range req.InviteeIDs {
		if id = strings.TrimSpace(id); id != "" {
			invitees = append(invitees, id)
		}
	}
	if len(invitees) == 0 {
		return nil, domain.ErrNoInvitees
	}

	now := s.clock.Now()

	// Validate the whole batch before writing anything so a conflict on the
	// third invitee does not leave the first two half-invited. A pending
	// invitation already past its deadline does not block re-inviting.
	for _, inviteeID := range invitees {
		if project.HasMember(inviteeID) || project.OwnerID == inviteeID {
			return nil, fmt.Errorf("%w: user %s", domain.ErrAlreadyMember, inviteeID)
		}
		pending, err := s.repo.HasPending(ctx, req.ProjectID, inviteeID, now)
		if err != nil {
			return nil, err
		}
		if pending {
			return nil, fmt.Errorf("%w: user %s", domain.ErrAlreadyInvited, inviteeID)
		}
	}

	expiresAt := req.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(domain.DefaultTTL)
	}

	views := make([]domain.View, 0, len(invitees))
	for _, inviteeID := range invitees {
		invitation := domain.Invitation{
			ProjectID: req.ProjectID,
			InviterID: actorID,
			InviteeID: inviteeID,
			Status:    domain.StatusPending,
			Message:   strings.TrimSpace(req.Message),
			SentAt:    now,
			ExpiresAt: expiresAt,
		}
		invitation.Stamp(now)

		if err := s.repo.Insert(ctx, &invitation); err != nil {
			s.log.Error("invitation.invite failed",
				zap.String("project_id", req.ProjectID),
				zap.String("invitee_id", inviteeID),
				zap.Error(err),
			)
			return nil, err
		}
		project.AddInvited(inviteeID)
		views = append(views, invitation.ToView())
	}

	project.Touch(actorID, now)
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.log.Info("invitation.invite",
		zap.String("project_id", req.ProjectID),
		zap.Int("invitees", len(invitees)),
		zap.Duration("duration", time.Since(start)),
	)
	return views, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID string, actorID string) ([]domain.View, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actorID {
		return nil, fmt.Errorf("%w: project %s", projectdomain.ErrNotOwner, projectID)
	}

	invitations, err := s.repo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return domain.ToViews(invitations), nil
}

func (s *Service) ListMine(ctx context.Context, actorID string) ([]domain.View, error) {
	invitations, err := s.repo.FindByInvitee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return domain.ToViews(invitations), nil
}

func (s *Service) Accept(ctx context.Context, id string, actorID string) (domain.View, error) {
	return s.respond(ctx, id, actorID, domain.StatusAccepted)
}

func (s *Service) Reject(ctx context.Context, id string, actorID string) (domain.View, error) {
	return s.respond(ctx, id, actorID, domain.StatusRejected)
}

func (s *Service) respond(ctx context.Context, id string, actorID string, outcome domain.Status) (domain.View, error) {
	objectID, err := parseID(id)
	if err != nil {
		return domain.View{}, err
	}

	invitation, err := s.repo.FindByID(ctx, objectID)
	if err != nil {
		return domain.View{}, err
	}
	if invitation == nil {
		return domain.View{}, fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}
	if invitation.InviteeID != actorID {
		return domain.View{}, fmt.Errorf("%w: id %s", domain.ErrNotInvitee, id)
	}
	if invitation.Status != domain.StatusPending {
		return domain.View{}, fmt.Errorf("%w: status %s", domain.ErrNotPending, invitation.Status)
	}

	now := s.clock.Now()
	if invitation.Expired(now) {
		invitation.Status = domain.StatusExpired
		invitation.Touch(now)
		if err := s.repo.Update(ctx, invitation); err != nil {
			return domain.View{}, err
		}
		return domain.View{}, fmt.Errorf("%w: id %s", domain.ErrExpired, id)
	}

	invitation.Status = outcome
	invitation.Touch(now)
	if err := s.repo.Update(ctx, invitation); err != nil {
		return domain.View{}, err
	}

	if err := s.applyOutcome(ctx, invitation, outcome, now); err != nil {
		return domain.View{}, err
	}

	s.log.Info("invitation.respond",
		zap.String("id", id),
		zap.String("status", string(outcome)),
		zap.String("invitee_id", actorID),
	)
	return invitation.ToView(), nil
}

// applyOutcome moves the invitee between the project's invited and member
// sets. A project deleted since the invite was sent is tolerated.
func (s *Service) applyOutcome(ctx context.Context, invitation *domain.Invitation, outcome domain.Status, now time.Time) error {
	projectID, err := bson.ObjectIDFromHex(invitation.ProjectID)
	if err != nil {
		return nil
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return nil
	}

	project.RemoveInvited(invitation.InviteeID)
	if outcome == domain.StatusAccepted {
		project.AddMember(invitation.InviteeID)
	}
	project.Touch(invitation.InviteeID, now)
	return s.projects.Update(ctx, project)
}

func (s *Service) Stats(ctx context.Context, projectID string, actorID string) (domain.Stats, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return domain.Stats{}, err
	}
	if project.OwnerID != actorID {
		return domain.Stats{}, fmt.Errorf("%w: project %s", projectdomain.ErrNotOwner, projectID)
	}

	invitations, err := s.repo.FindByProject(ctx, projectID)
	if err != nil {
		return domain.Stats{}, err
	}

	now := s.clock.Now()
	var stats domain.Stats
	for _, inv := range invitations {
		stats.TotalInvitations++
		status := inv.Status
		if status == domain.StatusPending && inv.Expired(now) {
			status = domain.StatusExpired
		}
		switch status {
		case domain.StatusPending:
			stats.PendingInvitations++
		case domain.StatusAccepted:
			stats.AcceptedInvitations++
		case domain.StatusRejected:
			stats.RejectedInvitations++
		case domain.StatusExpired:
			stats.ExpiredInvitations++
		}
	}
	return stats, nil
}

func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	flipped, err := s.repo.MarkExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	if flipped > 0 {
		s.log.Info("invitation.sweep", zap.Int64("expired", flipped))
	}
	return flipped, nil
}

func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		s.log.Info("invitation.purge", zap.Int64("deleted", purged))
	}
	return purged, nil
}

func (s *Service) findProject(ctx context.Context, id string) (*projectdomain.Project, error) {
	objectID, err := bson.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", projectdomain.ErrInvalidID, id)
	}
	project, err := s.projects.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: id %s", projectdomain.ErrNotFound, id)
	}
	return project, nil
}

func parseID(value string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(value))
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %s", domain.ErrInvalidID, value)
	}
	return id, nil
}
