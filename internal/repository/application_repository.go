package repository

import (
	"context"

	"github.com/fadilmartias/careers/internal/model"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

// Create inserts a single row; the insert is atomic, so a failure leaves
// nothing behind.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.JobApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// FindAll returns every application, newest first.
func (r *ApplicationRepository) FindAll(ctx context.Context) ([]model.JobApplication, error) {
	var apps []model.JobApplication
	err := r.db.WithContext(ctx).Order("created_at desc").Order("id").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.JobApplication, error) {
	var app model.JobApplication
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus touches the status column only. It returns
// gorm.ErrRecordNotFound when no row has the id.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.JobApplication, error) {
	res := r.db.WithContext(ctx).
		Model(&model.JobApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}
