package repositories

import (
	"github.com/samssiams/Protecture-sub000/internal/models"
	"gorm.io/gorm"
)

// ReportRepository defines the interface for report and appeal data operations
type ReportRepository interface {
	CreateReport(report *models.Report) error
	GetReportByID(id uint) (*models.Report, error)
	GetOpenReports() ([]models.Report, error)
	DeleteReport(id uint) error
	CreateAppeal(appeal *models.AppealRequest) error
	GetAppealByID(id uint) (*models.AppealRequest, error)
	GetPendingAppeals() ([]models.AppealRequest, error)
	SetAppealStatus(appealID uint, status string) error
}

// PostgresReportRepository implements ReportRepository for PostgreSQL
type PostgresReportRepository struct {
	db *gorm.DB
}

// NewPostgresReportRepository creates a new PostgresReportRepository
func NewPostgresReportRepository(db *gorm.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

// CreateReport creates a new report in PostgreSQL
func (r *PostgresReportRepository) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

// GetReportByID retrieves a report with the reported post and its owner
func (r *PostgresReportRepository) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.Preload("Post.User").Preload("Reporter.Profile").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// GetOpenReports lists all unresolved reports oldest-first for the admin queue
func (r *PostgresReportRepository) GetOpenReports() ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Preload("Post.User.Profile").Preload("Reporter.Profile").
		Order("created_at ASC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// DeleteReport resolves a report destructively
func (r *PostgresReportRepository) DeleteReport(id uint) error {
	res := r.db.Delete(&models.Report{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateAppeal files a suspension appeal
func (r *PostgresReportRepository) CreateAppeal(appeal *models.AppealRequest) error {
	return r.db.Create(appeal).Error
}

// GetAppealByID retrieves an appeal with its user
func (r *PostgresReportRepository) GetAppealByID(id uint) (*models.AppealRequest, error) {
	var appeal models.AppealRequest
	if err := r.db.Preload("User.Profile").First(&appeal, id).Error; err != nil {
		return nil, err
	}
	return &appeal, nil
}

// GetPendingAppeals lists appeals awaiting review
func (r *PostgresReportRepository) GetPendingAppeals() ([]models.AppealRequest, error) {
	var appeals []models.AppealRequest
	err := r.db.Preload("User.Profile").
		Where("status = ?", "pending").
		Order("created_at ASC").
		Find(&appeals).Error
	if err != nil {
		return nil, err
	}
	return appeals, nil
}

// SetAppealStatus records the outcome of an appeal review
func (r *PostgresReportRepository) SetAppealStatus(appealID uint, status string) error {
	res := r.db.Model(&models.AppealRequest{}).Where("id = ?", appealID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
