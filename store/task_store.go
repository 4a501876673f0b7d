package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type taskStore struct {
	db *gorm.DB
}

// NewTaskStore creates the task repository
func NewTaskStore(db *gorm.DB) TaskStore {
	return &taskStore{db: db}
}

func (s *taskStore) Create(ctx context.Context, task *Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return ErrQuery.Wrap(err)
	}
	return nil
}

func (s *taskStore) GetByID(ctx context.Context, orgID, id string) (*Task, error) {
	var task Task
	err := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	return &task, nil
}

func (s *taskStore) List(ctx context.Context, orgID string, filter TaskFilter, page Page) ([]Task, int64, error) {
	q := s.db.WithContext(ctx).Model(&Task{}).Where("org_id = ?", orgID)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.DealID != nil {
		q = q.Where("deal_id = ?", *filter.DealID)
	}
	if filter.AssigneeID != nil {
		// the caller's own work plus the open pool
		q = q.Where("assignee_id = ? OR assignee_id = ''", *filter.AssigneeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}

	var tasks []Task
	err := q.Order("created_at DESC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, ErrQuery.Wrap(err)
	}
	return tasks, total, nil
}

func (s *taskStore) Update(ctx context.Context, task *Task) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", task.OrgID, task.ID).
		Select("DealID", "AssigneeID", "Title", "Status", "DueAt").
		Updates(task)
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *taskStore) Delete(ctx context.Context, orgID, id string) error {
	res := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&Task{})
	if res.Error != nil {
		return ErrQuery.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
