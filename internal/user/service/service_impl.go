package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/noreyni/webhook-api/internal/user/domain"
	"github.com/noreyni/webhook-api/pkg/paging"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:  p.Log.Named("user.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context, page paging.Request) ([]domain.ListView, paging.Meta, error) {
	start := time.Now()
	page = page.Normalize()

	users, err := s.repo.List(ctx, page.Offset(), int64(page.Size))
	if err != nil {
		s.log.Error("user.findAll failed",
			zap.Int("page", page.Page),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, paging.Meta{}, err
	}

	// Independent count; the total may race with concurrent writes.
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, paging.Meta{}, err
	}

	s.log.Info("user.findAll",
		zap.Int("page", page.Page),
		zap.Int("size", page.Size),
		zap.Int("count", len(users)),
		zap.Duration("duration", time.Since(start)),
	)
	return domain.ToListViews(users), paging.NewMeta(page.Page, page.Size, total), nil
}

func (s *Service) FindByID(ctx context.Context, id string) (domain.DetailView, error) {
	objectID, err := parseID(id)
	if err != nil {
		return domain.DetailView{}, err
	}

	user, err := s.repo.FindByID(ctx, objectID)
	if err != nil {
		return domain.DetailView{}, err
	}
	if user == nil {
		return domain.DetailView{}, fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}
	return user.ToDetailView(), nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest, actorID string) (domain.DetailView, error) {
	start := time.Now()

	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return domain.DetailView{}, domain.ErrInvalidFirstName
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		return domain.DetailView{}, domain.ErrInvalidLastName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.DetailView{}, domain.ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return domain.DetailView{}, domain.ErrInvalidPassword
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return domain.DetailView{}, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return domain.DetailView{}, err
	}
	if exists {
		s.log.Warn("user.create conflict", zap.String("email", email))
		return domain.DetailView{}, fmt.Errorf("%w: %s", domain.ErrEmailTaken, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return domain.DetailView{}, err
	}

	user := domain.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		Active:    true,
	}
	user.Stamp(actorID, time.Now().UTC())

	if err := s.repo.Insert(ctx, &user); err != nil {
		s.log.Error("user.create failed",
			zap.String("email", email),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return domain.DetailView{}, err
	}

	s.log.Info("user.create",
		zap.String("id", user.ID.Hex()),
		zap.String("email", email),
		zap.Duration("duration", time.Since(start)),
	)
	return user.ToDetailView(), nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest, actorID string) (domain.DetailView, error) {
	start := time.Now()

	objectID, err := parseID(id)
	if err != nil {
		return domain.DetailView{}, err
	}

	user, err := s.repo.FindByID(ctx, objectID)
	if err != nil {
		return domain.DetailView{}, err
	}
	if user == nil {
		return domain.DetailView{}, fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return domain.DetailView{}, domain.ErrInvalidEmail
		}
		if email != user.Email {
			taken, err := s.repo.ExistsByEmailExcluding(ctx, email, objectID)
			if err != nil {
				return domain.DetailView{}, err
			}
			if taken {
				s.log.Warn("user.update conflict", zap.String("id", id), zap.String("email", email))
				return domain.DetailView{}, fmt.Errorf("%w: %s", domain.ErrEmailTaken, email)
			}
		}
		user.Email = email
	}
	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return domain.DetailView{}, domain.ErrInvalidFirstName
		}
		user.FirstName = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return domain.DetailView{}, domain.ErrInvalidLastName
		}
		user.LastName = name
	}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return domain.DetailView{}, err
		}
		user.Role = role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return domain.DetailView{}, domain.ErrInvalidPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return domain.DetailView{}, err
		}
		user.Password = string(hash)
	}

	user.Touch(actorID, time.Now().UTC())
	if err := s.repo.Update(ctx, user); err != nil {
		return domain.DetailView{}, err
	}

	s.log.Info("user.update",
		zap.String("id", id),
		zap.Duration("duration", time.Since(start)),
	)
	return user.ToDetailView(), nil
}

func (s *Service) Delete(ctx context.Context, id string, actorID string) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, objectID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}

	s.log.Info("user.delete", zap.String("id", id), zap.String("deleted_by", actorID))
	return nil
}

func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	active, err := s.repo.CountActive(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{ActiveUsersCount: active}, nil
}

func parseID(value string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(value))
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %s", domain.ErrInvalidID, value)
	}
	return id, nil
}
