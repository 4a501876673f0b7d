package store

import (
	"context"

	"gorm.io/gorm"
)

type dashboardStore struct {
	db *gorm.DB
}

// NewDashboardStore creates the dashboard aggregate repository
func NewDashboardStore(db *gorm.DB) DashboardStore {
	return &dashboardStore{db: db}
}

// Summary computes the per-organization counters in one pass per table.
// Won amount only counts deals in the won stage.
func (s *dashboardStore) Summary(ctx context.Context, orgID string) (*DashboardSummary, error) {
	sum := &DashboardSummary{OrgID: orgID}
	db := s.db.WithContext(ctx)

	if err := db.Model(&Deal{}).
		Where("org_id = ?", orgID).
		Count(&sum.DealCount).Error; err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	if err := db.Model(&Deal{}).
		Where("org_id = ? AND stage NOT IN ?", orgID, []string{DealStageWon, DealStageLost}).
		Count(&sum.OpenDealCount).Error; err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	if err := db.Model(&Deal{}).
		Where("org_id = ? AND stage = ?", orgID, DealStageWon).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum.WonDealAmount).Error; err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	if err := db.Model(&Client{}).
		Where("org_id = ?", orgID).
		Count(&sum.ClientCount).Error; err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	if err := db.Model(&Task{}).
		Where("org_id = ? AND status <> ?", orgID, TaskStatusDone).
		Count(&sum.OpenTaskCount).Error; err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	if err := db.Model(&Document{}).
		Where("org_id = ?", orgID).
		Count(&sum.DocumentCount).Error; err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	if err := db.Model(&Presentation{}).
		Where("org_id = ?", orgID).
		Count(&sum.PresentationCount).Error; err != nil {
		return nil, ErrQuery.Wrap(err)
	}

	return sum, nil
}
