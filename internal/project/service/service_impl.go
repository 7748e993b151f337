package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	invitationdomain "github.com/noreyni/webhook-api/internal/invitation/domain"
	"github.com/noreyni/webhook-api/internal/project/domain"
	"github.com/noreyni/webhook-api/pkg/paging"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	Repo        domain.Repository
	Invitations invitationdomain.Repository
}

type Service struct {
	log         *zap.Logger
	repo        domain.Repository
	invitations invitationdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:         p.Log.Named("project.service"),
		repo:        p.Repo,
		invitations: p.Invitations,
	}
}

func (s *Service) Search(ctx context.Context, req domain.SearchRequest) ([]domain.ListView, paging.Meta, error) {
	start := time.Now()

	filter, err := buildFilter(req)
	if err != nil {
		return nil, paging.Meta{}, err
	}

	page := req.Page.Normalize()
	opts := domain.SearchOptions{
		Page:          page.ZeroBasedPage(),
		Size:          page.Size,
		SortBy:        req.SortBy,
		SortDirection: req.SortDirection,
	}

	projects, err := s.repo.Search(ctx, filter, opts)
	if err != nil {
		s.log.Error("project.search failed",
			zap.Int("page", page.Page),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, paging.Meta{}, err
	}

	total, err := s.repo.CountSearch(ctx, filter)
	if err != nil {
		return nil, paging.Meta{}, err
	}

	s.log.Info("project.search",
		zap.Int("page", page.Page),
		zap.Int("size", page.Size),
		zap.Int("count", len(projects)),
		zap.Int64("total", total),
		zap.Duration("duration", time.Since(start)),
	)
	return domain.ToListViews(projects), paging.NewMeta(page.Page, page.Size, total), nil
}

func buildFilter(req domain.SearchRequest) (domain.SearchFilter, error) {
	filter := domain.SearchFilter{
		Name:    req.Name,
		OwnerID: req.OwnerID,
	}
	if strings.TrimSpace(req.Status) != "" {
		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			return domain.SearchFilter{}, err
		}
		filter.Status = &status
	}
	if strings.TrimSpace(req.Visibility) != "" {
		visibility, err := domain.ParseVisibility(req.Visibility)
		if err != nil {
			return domain.SearchFilter{}, err
		}
		filter.Visibility = &visibility
	}
	if strings.TrimSpace(req.Type) != "" {
		projectType, err := domain.ParseType(req.Type)
		if err != nil {
			return domain.SearchFilter{}, err
		}
		filter.Type = &projectType
	}
	return filter, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (domain.DetailView, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return domain.DetailView{}, err
	}
	return project.ToDetailView(), nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest, actorID string) (domain.DetailView, error) {
	start := time.Now()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.DetailView{}, domain.ErrInvalidName
	}
	projectType, err := domain.ParseType(req.Type)
	if err != nil {
		return domain.DetailView{}, err
	}

	status := domain.StatusDraft
	if strings.TrimSpace(req.Status) != "" {
		if status, err = domain.ParseStatus(req.Status); err != nil {
			return domain.DetailView{}, err
		}
	}
	visibility := domain.VisibilityPrivate
	if strings.TrimSpace(req.Visibility) != "" {
		if visibility, err = domain.ParseVisibility(req.Visibility); err != nil {
			return domain.DetailView{}, err
		}
	}

	taken, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return domain.DetailView{}, err
	}
	if taken {
		s.log.Warn("project.create conflict", zap.String("name", name))
		return domain.DetailView{}, fmt.Errorf("%w: %s", domain.ErrNameTaken, name)
	}

	project := domain.Project{
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		AvatarURL:      strings.TrimSpace(req.AvatarURL),
		Status:         status,
		Visibility:     visibility,
		Type:           projectType,
		OwnerID:        actorID,
		MemberIDs:      []string{},
		InvitedUserIDs: []string{},
	}
	project.Stamp(actorID, time.Now().UTC())

	if err := s.repo.Insert(ctx, &project); err != nil {
		s.log.Error("project.create failed",
			zap.String("name", name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return domain.DetailView{}, err
	}

	s.log.Info("project.create",
		zap.String("id", project.ID.Hex()),
		zap.String("name", name),
		zap.String("owner_id", actorID),
		zap.Duration("duration", time.Since(start)),
	)
	return project.ToDetailView(), nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest, actorID string) (domain.DetailView, error) {
	start := time.Now()

	project, err := s.findProject(ctx, id)
	if err != nil {
		return domain.DetailView{}, err
	}
	if project.OwnerID != actorID {
		return domain.DetailView{}, fmt.Errorf("%w: id %s", domain.ErrNotOwner, id)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.DetailView{}, domain.ErrInvalidName
		}
		if name != project.Name {
			taken, err := s.repo.ExistsByNameExcluding(ctx, name, project.ID)
			if err != nil {
				return domain.DetailView{}, err
			}
			if taken {
				s.log.Warn("project.update conflict", zap.String("id", id), zap.String("name", name))
				return domain.DetailView{}, fmt.Errorf("%w: %s", domain.ErrNameTaken, name)
			}
		}
		project.Name = name
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.AvatarURL != nil {
		project.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}
	if req.Type != nil {
		projectType, err := domain.ParseType(*req.Type)
		if err != nil {
			return domain.DetailView{}, err
		}
		project.Type = projectType
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return domain.DetailView{}, err
		}
		project.Status = status
	}
	if req.Visibility != nil {
		visibility, err := domain.ParseVisibility(*req.Visibility)
		if err != nil {
			return domain.DetailView{}, err
		}
		project.Visibility = visibility
	}

	project.Touch(actorID, time.Now().UTC())
	if err := s.repo.Update(ctx, project); err != nil {
		return domain.DetailView{}, err
	}

	s.log.Info("project.update",
		zap.String("id", id),
		zap.Duration("duration", time.Since(start)),
	)
	return project.ToDetailView(), nil
}

func (s *Service) ChangeStatus(ctx context.Context, id string, status string, actorID string) (domain.DetailView, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return domain.DetailView{}, err
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return domain.DetailView{}, err
	}
	if project.OwnerID != actorID {
		return domain.DetailView{}, fmt.Errorf("%w: id %s", domain.ErrNotOwner, id)
	}

	project.Status = parsed
	project.Touch(actorID, time.Now().UTC())
	if err := s.repo.Update(ctx, project); err != nil {
		return domain.DetailView{}, err
	}

	s.log.Info("project.changeStatus",
		zap.String("id", id),
		zap.String("status", string(parsed)),
	)
	return project.ToDetailView(), nil
}

func (s *Service) Delete(ctx context.Context, id string, actorID string) error {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return err
	}
	if project.OwnerID != actorID {
		return fmt.Errorf("%w: id %s", domain.ErrNotOwner, id)
	}

	deleted, err := s.repo.Delete(ctx, project.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}

	// Invitations to a deleted project are meaningless; drop them too.
	purged, err := s.invitations.DeleteByProject(ctx, id)
	if err != nil {
		s.log.Error("project.delete invitation cleanup failed",
			zap.String("id", id),
			zap.Error(err),
		)
		return err
	}

	s.log.Info("project.delete",
		zap.String("id", id),
		zap.String("deleted_by", actorID),
		zap.Int64("invitations_removed", purged),
	)
	return nil
}

func (s *Service) FindByOwner(ctx context.Context, ownerID string) ([]domain.ListView, error) {
	projects, err := s.repo.FindByOwner(ctx, strings.TrimSpace(ownerID))
	if err != nil {
		return nil, err
	}
	return domain.ToListViews(projects), nil
}

func (s *Service) FindAccessible(ctx context.Context, userID string) ([]domain.ListView, error) {
	projects, err := s.repo.FindAccessible(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	return domain.ToListViews(projects), nil
}

// defaultRecentLimit caps the recent-projects listing when the caller does
// not ask for a specific limit.
const defaultRecentLimit = 10

func (s *Service) FindRecentByOwner(ctx context.Context, ownerID string, limit int) ([]domain.ListView, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	if limit > paging.MaxSize {
		limit = paging.MaxSize
	}
	projects, err := s.repo.FindRecentByOwner(ctx, strings.TrimSpace(ownerID), int64(limit))
	if err != nil {
		return nil, err
	}
	return domain.ToListViews(projects), nil
}

func (s *Service) Stats(ctx context.Context, ownerID string) (domain.Stats, error) {
	return s.repo.StatsByOwner(ctx, strings.TrimSpace(ownerID))
}

func (s *Service) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.repo.ExistsByName(ctx, strings.TrimSpace(name))
}

func (s *Service) findProject(ctx context.Context, id string) (*domain.Project, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	project, err := s.repo.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
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
