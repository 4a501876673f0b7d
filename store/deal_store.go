package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type dealStore struct {
	db *gorm.DB
}

// NewDealStore creates the deal repository
func NewDealStore(db *gorm.DB) DealStore {
	return &dealStore{db: db}
}

func (s *dealStore) Create(ctx context.Context, deal *Deal) error {
	if err := s.db.WithContext(ctx).Create(deal).Error; err != nil {
		return ErrQuery.Wrap(err)
	}
	return nil
}

func (s *dealStore) GetByID(ctx context.Context, orgID, id string) (*Deal, error) {
	var deal Deal
	err := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&deal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	return &deal, nil
}

func (s *dealStore) List(ctx context.Context, orgID string, filter DealFilter, page Page) ([]Deal, int64, error) {
	q := s.db.WithContext(ctx).Model(&Deal{}).Where("org_id = ?", orgID)
	if filter.Stage != nil {
		q = q.Where("stage = ?", *filter.Stage)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}

	var deals []Deal
	err := q.Order("created_at DESC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&deals).Error
	if err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}
	return deals, total, nil
}

func (s *dealStore) Update(ctx context.Context, deal *Deal) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", deal.OrgID, deal.ID).
		Select("ClientID", "Title", "Stage", "Amount", "Currency", "OwnerID", "Notes").
		Updates(deal)
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *dealStore) Delete(ctx context.Context, orgID, id string) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&Deal{})
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
