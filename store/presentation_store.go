package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type presentationStore struct {
	db *gorm.DB
}

// NewPresentationStore creates the presentation repository
func NewPresentationStore(db *gorm.DB) PresentationStore {
	return &presentationStore{db: db}
}

func (s *presentationStore) Create(ctx context.Context, p *Presentation) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return ErrQuery.Wrap(err)
	}
	return nil
}

func (s *presentationStore) GetByID(ctx context.Context, orgID, id string) (*Presentation, error) {
	var p Presentation
	err := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	return &p, nil
}

func (s *presentationStore) List(ctx context.Context, orgID string, filter PresentationFilter, page Page) ([]Presentation, int64, error) {
	q := s.db.WithContext(ctx).Model(&Presentation{}).Where("org_id = ?", orgID)
	if filter.DealID != nil {
		q = q.Where("deal_id = ?", *filter.DealID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}

	var items []Presentation
	err := q.Order("created_at DESC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}
	return items, total, nil
}

func (s *presentationStore) Update(ctx context.Context, p *Presentation) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", p.OrgID, p.ID).
		Select("DealID", "Title", "SlideCount").
		Updates(p)
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *presentationStore) Delete(ctx context.Context, orgID, id string) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&Presentation{})
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
