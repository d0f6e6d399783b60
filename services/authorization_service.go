package services

import (
	"coreops-backend/models"

	"gorm.io/gorm"
)

// AuthorizationService отвечает на вопрос, имеет ли пользователь доступ к домену.
// Роль Board обходит доменные списки; остальным нужно членство в списке.
type AuthorizationService struct {
	db *gorm.DB
}

// NewAuthorizationService создает новый сервис доменной авторизации
func NewAuthorizationService(db *gorm.DB) *AuthorizationService {
	return &AuthorizationService{db: db}
}

// IsAuthorized проверяет доступ пользователя к домену
func (s *AuthorizationService) IsAuthorized(domain string, userID uint, role int) (bool, error) {
	if role == models.RoleBoard {
		return true, nil
	}

	var count int64
	err := s.db.Model(&models.AuthorizedUser{}).
		Where("domain = ? AND user_id = ?", domain, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Grant добавляет пользователей в доменный список.
// Повторное добавление не ошибка: возвращаются счетчики новых и уже имевшихся.
func (s *AuthorizationService) Grant(domain string, userIDs []uint) (created int, existing int, err error) {
	for _, id := range userIDs {
		authUser := models.AuthorizedUser{Domain: domain, UserID: id}
		result := s.db.Where("domain = ? AND user_id = ?", domain, id).FirstOrCreate(&authUser)
		if result.Error != nil {
			return created, existing, result.Error
		}
		if result.RowsAffected > 0 {
			created++
		} else {
			existing++
		}
	}
	return created, existing, nil
}

// Revoke убирает пользователя из доменного списка
func (s *AuthorizationService) Revoke(domain string, userID uint) error {
	result := s.db.Where("domain = ? AND user_id = ?", domain, userID).
		Delete(&models.AuthorizedUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAuthorized возвращает членов доменного списка с именами пользователей
func (s *AuthorizationService) ListAuthorized(domain string) ([]models.AuthorizedUserInfo, error) {
	var authUsers []models.AuthorizedUser
	if err := s.db.Where("domain = ?", domain).Order("id DESC").Find(&authUsers).Error; err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(authUsers))
	for _, a := range authUsers {
		userIDs = append(userIDs, a.UserID)
	}

	var users []models.User
	if len(userIDs) > 0 {
		if err := s.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
	}
	nameByID := make(map[uint]string, len(users))
	for _, u := range users {
		nameByID[u.ID] = u.DisplayName()
	}

	result := make([]models.AuthorizedUserInfo, 0, len(authUsers))
	for _, a := range authUsers {
		result = append(result, models.AuthorizedUserInfo{
			UserID:   a.UserID,
			FullName: nameByID[a.UserID],
		})
	}
	return result, nil
}
