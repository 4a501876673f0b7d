package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type documentStore struct {
	db *gorm.DB
}

// NewDocumentStore creates the document repository
func NewDocumentStore(db *gorm.DB) DocumentStore {
	return &documentStore{db: db}
}

func (s *documentStore) Create(ctx context.Context, doc *Document) error {
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		return ErrQuery.Wrap(err)
	}
	return nil
}

func (s *documentStore) GetByID(ctx context.Context, orgID, id string) (*Document, error) {
	var doc Document
	err := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	return &doc, nil
}

func (s *documentStore) List(ctx context.Context, orgID string, filter DocumentFilter, page Page) ([]Document, int64, error) {
	q := s.db.WithContext(ctx).Model(&Document{}).Where("org_id = ?", orgID)
	if filter.DealID != nil {
		q = q.Where("deal_id = ?", *filter.DealID)
	}
	if filter.Kind != nil {
		q = q.Where("kind = ?", *filter.Kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}

	var docs []Document
	err := q.Order("created_at DESC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&docs).Error
	if err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}
	return docs, total, nil
}

func (s *documentStore) Update(ctx context.Context, doc *Document) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", doc.OrgID, doc.ID).
		Select("DealID", "Kind", "Name", "URL", "SizeBytes").
		Updates(doc)
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *documentStore) Delete(ctx context.Context, orgID, id string) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&Document{})
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
