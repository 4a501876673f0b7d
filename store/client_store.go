package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type clientStore struct {
	db *gorm.DB
}

// NewClientStore creates the client repository
func NewClientStore(db *gorm.DB) ClientStore {
	return &clientStore{db: db}
}

func (s *clientStore) Create(ctx context.Context, client *Client) error {
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return ErrQuery.Wrap(err)
	}
	return nil
}

func (s *clientStore) GetByID(ctx context.Context, orgID, id string) (*Client, error) {
	var client Client
	err := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	return &client, nil
}

func (s *clientStore) List(ctx context.Context, orgID string, filter ClientFilter, page Page) ([]Client, int64, error) {
	q := s.db.WithContext(ctx).Model(&Client{}).Where("org_id = ?", orgID)
	if filter.Name != nil {
		q = q.Where("name LIKE ?", "%"+*filter.Name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}

	var clients []Client
	err := q.Order("created_at DESC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&clients).Error
	if err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}
	return clients, total, nil
}

func (s *clientStore) Update(ctx context.Context, client *Client) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", client.OrgID, client.ID).
		Select("Name", "Email", "Phone", "Company", "Notes").
		Updates(client)
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *clientStore) Delete(ctx context.Context, orgID, id string) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&Client{})
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
