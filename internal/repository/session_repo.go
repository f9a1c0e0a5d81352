package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

// ErrNoOpenSession is returned when an operation requires an open session and
// none exists. RAZ treats it as a soft warning, not a failure.
var ErrNoOpenSession = errors.New("aucune session ouverte")

type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	FindOpen(ctx context.Context) (*model.Session, error)
	Close(ctx context.Context, id uuid.UUID, closedAt int64) error
	Count(ctx context.Context) (int64, error)
	ClearAll(ctx context.Context) error
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *sessionRepo) FindOpen(ctx context.Context) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).Where("statut = 'ouverte'").Order("opened_at DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoOpenSession
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Close(ctx context.Context, id uuid.UUID, closedAt int64) error {
	return r.db.WithContext(ctx).Model(&model.Session{}).Where("id = ?", id).
		Updates(map[string]any{"statut": "fermee", "closed_at": closedAt}).Error
}

func (r *sessionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Session{}).Count(&n).Error
	return n, err
}

func (r *sessionRepo) ClearAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Session{}).Error
}
