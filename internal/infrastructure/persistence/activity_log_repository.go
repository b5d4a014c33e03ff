package persistence

import (
	"context"

	"github.com/credito/backend/internal/domain/identity"
	"github.com/credito/backend/internal/infrastructure/logger"
	"github.com/credito/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultActivityLimit = 50

// GormActivityLogRepository implements identity.ActivityLogRepository using GORM.
// The log is append-only.
type GormActivityLogRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB, log *zap.Logger) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db, log: log}
}

// Append records an activity
func (r *GormActivityLogRepository) Append(ctx context.Context, in identity.ActivityLogInsert) (*identity.ActivityLog, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	model := models.ActivityLogModelFromInsert(in)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError(err, "activity log")
	}

	ctx = logger.WithTeamID(ctx, in.TeamID)
	if in.UserID != nil {
		ctx = logger.WithUserID(ctx, *in.UserID)
	}
	logger.LOr(ctx, r.log).Info("Activity recorded",
		zap.Int64("activity_id", model.ID),
		zap.String("action", string(in.Action)),
	)
	return model.ToDomain(), nil
}

// ForTeam returns the newest activities of a team
func (r *GormActivityLogRepository) ForTeam(ctx context.Context, teamID int64, limit int) ([]identity.ActivityLog, error) {
	return r.recent(r.db.WithContext(ctx).Where("team_id = ?", teamID), limit)
}

// ForUser returns the newest activities of a user across teams
func (r *GormActivityLogRepository) ForUser(ctx context.Context, userID int64, limit int) ([]identity.ActivityLog, error) {
	return r.recent(r.db.WithContext(ctx).Where("user_id = ?", userID), limit)
}

func (r *GormActivityLogRepository) recent(query *gorm.DB, limit int) ([]identity.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	var rows []models.ActivityLogModel
	if err := query.
		Order(`"timestamp" DESC, id DESC`).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, translateError(err, "activity log")
	}
	logs := make([]identity.ActivityLog, len(rows))
	for i := range rows {
		logs[i] = *rows[i].ToDomain()
	}
	return logs, nil
}

var _ identity.ActivityLogRepository = (*GormActivityLogRepository)(nil)
