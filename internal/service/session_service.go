package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/dto"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
)

type SessionService interface {
	Open(ctx context.Context, req dto.OpenSessionRequest) (*dto.SessionResponse, error)
	Close(ctx context.Context) (*dto.SessionResponse, error)
	Current(ctx context.Context) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo          repository.SessionRepository
	commissionSvc CommissionService
	now           func() time.Time
}

func NewSessionService(repo repository.SessionRepository, commissionSvc CommissionService) SessionService {
	return &sessionService{repo: repo, commissionSvc: commissionSvc, now: time.Now}
}

// Open creates the session, then archives the opening commission skeleton.
// The archiving is best-effort inside the commission service — a failure
// there never prevents the session from opening.
func (s *sessionService) Open(ctx context.Context, req dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	if existing, err := s.repo.FindOpen(ctx); err == nil && existing != nil {
		return nil, errors.New("une session est déjà ouverte")
	}

	session := &model.Session{
		ID:         uuid.New(),
		EventName:  &req.EventName,
		EventStart: req.EventStart,
		EventEnd:   req.EventEnd,
		OpenedAt:   s.now().UnixMilli(),
		Statut:     "ouverte",
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.commissionSvc.GenerateAndSaveOnSessionOpen(ctx, session)

	return toSessionResponse(session), nil
}

func (s *sessionService) Close(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := s.repo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	closedAt := s.now().UnixMilli()
	if err := s.repo.Close(ctx, session.ID, closedAt); err != nil {
		return nil, err
	}
	session.Statut = "fermee"
	session.ClosedAt = &closedAt
	return toSessionResponse(session), nil
}

func (s *sessionService) Current(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := s.repo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func toSessionResponse(s *model.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:         s.ID.String(),
		EventName:  s.EventName,
		EventStart: s.EventStart,
		EventEnd:   s.EventEnd,
		OpenedAt:   s.OpenedAt,
		ClosedAt:   s.ClosedAt,
		Statut:     s.Statut,
	}
}
