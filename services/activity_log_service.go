package services

import (
	"coreops-backend/models"

	"gorm.io/gorm"
)

// ActivityLogService предоставляет чтение журнала активности и
// административные правки записей их владельцем
type ActivityLogService struct {
	db *gorm.DB
}

// NewActivityLogService создает новый сервис журнала активности
func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{db: db}
}

// ActivityLogView представляет запись журнала с именами вместо идентификаторов
type ActivityLogView struct {
	models.ActivityLog
	UserName       string `json:"user_name"`
	AssignedByName string `json:"assigned_by_name"`
	AssignedToName string `json:"assigned_to_name"`
}

// GetUserLogs возвращает записи журнала текущего пользователя
func (s *ActivityLogService) GetUserLogs(userID uint, logID uint) ([]models.ActivityLog, error) {
	query := s.db.Where("user_id = ?", userID)
	if logID != 0 {
		query = query.Where("id = ?", logID)
	}

	var logs []models.ActivityLog
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNotFound
	}
	return logs, nil
}

// GetActivityFeed возвращает ленту активности.
// Обычный пользователь видит только события, где он участник.
func (s *ActivityLogService) GetActivityFeed(actor *models.User) ([]ActivityLogView, error) {
	query := s.db.Where("type IN ?", []int{models.ActivityTypeStage, models.ActivityTypeComment})
	if actor.Role == models.RoleUser {
		query = query.Where("user_id = ? OR assigned_by = ? OR assigned_to = ?",
			actor.ID, actor.ID, actor.ID)
	}

	var logs []models.ActivityLog
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	idSet := make(map[uint]bool)
	for _, l := range logs {
		idSet[l.UserID] = true
		idSet[l.AssignedBy] = true
		idSet[l.AssignedTo] = true
	}
	userIDs := make([]uint, 0, len(idSet))
	for id := range idSet {
		if id != 0 {
			userIDs = append(userIDs, id)
		}
	}
	nameByID := make(map[uint]string, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		if err := s.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			nameByID[u.ID] = u.DisplayName()
		}
	}

	views := make([]ActivityLogView, 0, len(logs))
	for _, l := range logs {
		views = append(views, ActivityLogView{
			ActivityLog:    l,
			UserName:       nameByID[l.UserID],
			AssignedByName: nameByID[l.AssignedBy],
			AssignedToName: nameByID[l.AssignedTo],
		})
	}
	return views, nil
}

// UpdateDescription правит описание записи; доступно только владельцу записи
func (s *ActivityLogService) UpdateDescription(actorID uint, logID uint, description string) (*models.ActivityLog, error) {
	var logEntry models.ActivityLog
	err := s.db.Where("id = ? AND user_id = ?", logID, actorID).First(&logEntry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	logEntry.Description = description
	if err := s.db.Save(&logEntry).Error; err != nil {
		return nil, err
	}
	return &logEntry, nil
}

// DeleteLog удаляет запись журнала; доступно только владельцу записи
func (s *ActivityLogService) DeleteLog(actorID uint, logID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", logID, actorID).
		Delete(&models.ActivityLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
