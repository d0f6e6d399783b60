package services

import (
	"fmt"

	"coreops-backend/models"

	"gorm.io/gorm"
)

// CommentService реализует комментарии к задачам.
// Счетчик комментариев задачи пересчитывается по живым комментариям в той же
// транзакции, что и само изменение.
type CommentService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewCommentService создает новый сервис комментариев
func NewCommentService(db *gorm.DB, notifier *NotificationService) *CommentService {
	return &CommentService{db: db, notifier: notifier}
}

// CommentView представляет комментарий с именем автора
type CommentView struct {
	models.Comment
	UserName string `json:"user_name"`
}

// canComment проверяет право комментировать: постановщик, исполнитель или наблюдатель
func (s *CommentService) canComment(db *gorm.DB, task *models.Task, userID uint) (bool, error) {
	if task.AssignedBy == userID || task.AssignedTo == userID {
		return true, nil
	}
	var count int64
	err := db.Model(&models.Observer{}).
		Where("task_id = ? AND user_id = ?", task.ID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// recountComments обновляет счетчик живых комментариев задачи
func recountComments(tx *gorm.DB, task *models.Task) error {
	var count int64
	err := tx.Model(&models.Comment{}).
		Where("task_id = ? AND is_deleted = ?", task.ID, false).
		Count(&count).Error
	if err != nil {
		return err
	}
	task.CommentCount = int(count)
	return tx.Save(task).Error
}

// GetComments возвращает комментарии задачи с именами авторов
func (s *CommentService) GetComments(taskID uint) ([]CommentView, error) {
	var comments []models.Comment
	err := s.db.Where("task_id = ? AND is_deleted = ?", taskID, false).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	idSet := make(map[uint]bool)
	for _, c := range comments {
		idSet[c.UserID] = true
	}
	userIDs := make([]uint, 0, len(idSet))
	for id := range idSet {
		userIDs = append(userIDs, id)
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

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{Comment: c, UserName: nameByID[c.UserID]})
	}
	return views, nil
}

// CreateComment добавляет комментарий, пересчитывает счетчик и пишет журнал
func (s *CommentService) CreateComment(actor *models.User, taskID uint, text string) (*models.Comment, error) {
	if text == "" {
		return nil, ErrValidation
	}

	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	allowed, err := s.canComment(s.db, &task, actor.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrPermissionDenied
	}

	comment := models.Comment{TaskID: taskID, UserID: actor.ID, Text: text}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		if err := recountComments(tx, &task); err != nil {
			return err
		}

		logEntry := models.ActivityLog{
			TaskID:      taskID,
			UserID:      actor.ID,
			Stage:       task.Stage,
			Type:        models.ActivityTypeComment,
			Description: fmt.Sprintf("Yorum eklendi :  %s >>> %s", actor.DisplayName(), text),
			AssignedBy:  task.AssignedBy,
			AssignedTo:  task.AssignedTo,
			TriggeredBy: actor.DisplayName(),
			TaskName:    task.Name,
			CommentID:   comment.ID,
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify("New Comment",
		fmt.Sprintf("%s commented on task %s", actor.DisplayName(), task.Name),
		"comment", task.AssignedBy, task.AssignedTo)

	return &comment, nil
}

// UpdateComment меняет текст комментария; права те же, что и на создание
func (s *CommentService) UpdateComment(actor *models.User, commentID uint, text string) (*models.Comment, error) {
	if text == "" {
		return nil, ErrValidation
	}

	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var task models.Task
	if err := s.db.First(&task, comment.TaskID).Error; err != nil {
		return nil, err
	}

	allowed, err := s.canComment(s.db, &task, actor.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrPermissionDenied
	}

	comment.Text = text
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&comment).Error; err != nil {
			return err
		}

		logEntry := models.ActivityLog{
			TaskID:      task.ID,
			UserID:      actor.ID,
			Stage:       task.Stage,
			Type:        models.ActivityTypeComment,
			Description: fmt.Sprintf("Yorum güncellendi : %s >>> %s", actor.DisplayName(), text),
			AssignedBy:  task.AssignedBy,
			AssignedTo:  task.AssignedTo,
			TriggeredBy: actor.DisplayName(),
			TaskName:    task.Name,
			CommentID:   comment.ID,
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment мягко удаляет комментарий; независимо от автора это право
// только руководителя отдела или правления
func (s *CommentService) DeleteComment(actor *models.User, commentID uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if !actor.IsDeptHead() && !actor.IsBoard() {
		return ErrPermissionDenied
	}

	var task models.Task
	if err := s.db.First(&task, comment.TaskID).Error; err != nil {
		return err
	}

	text := comment.Text
	return s.db.Transaction(func(tx *gorm.DB) error {
		comment.IsDeleted = true
		if err := tx.Save(&comment).Error; err != nil {
			return err
		}
		if err := recountComments(tx, &task); err != nil {
			return err
		}

		logEntry := models.ActivityLog{
			TaskID:      task.ID,
			UserID:      actor.ID,
			Stage:       task.Stage,
			Type:        models.ActivityTypeComment,
			Description: fmt.Sprintf("Yorum silindi: %d --- %s", commentID, text),
			AssignedBy:  task.AssignedBy,
			AssignedTo:  task.AssignedTo,
			TriggeredBy: actor.DisplayName(),
			TaskName:    task.Name,
			CommentID:   comment.ID,
		}
		return tx.Create(&logEntry).Error
	})
}
