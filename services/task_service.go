package services

import (
	"fmt"
	"time"

	"coreops-backend/models"

	"gorm.io/gorm"
)

// TaskService реализует жизненный цикл задач: этапы, выполнение, архив,
// мягкое удаление и журнал активности
type TaskService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewTaskService создает новый сервис задач
func NewTaskService(db *gorm.DB, notifier *NotificationService) *TaskService {
	return &TaskService{db: db, notifier: notifier}
}

// CreateTaskInput описывает данные для создания задачи
type CreateTaskInput struct {
	ProjectID      uint       `json:"project_id"`
	AssignedTo     uint       `json:"assigned_to"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Stage          int        `json:"stage"`
	DueDate        *time.Time `json:"due_date"`
	ObserverUserID uint       `json:"observer_user_id"`
}

// UpdateTaskInput описывает изменяемые поля задачи
type UpdateTaskInput struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	AssignedTo     *uint      `json:"assigned_to"`
	DueDate        *time.Time `json:"due_date"`
	ObserverUserID *uint      `json:"observer_user_id"`
}

// TaskView представляет задачу с именами участников вместо идентификаторов
type TaskView struct {
	models.Task
	AssignedByName string `json:"assigned_by_name"`
	AssignedToName string `json:"assigned_to_name"`
	ObserverName   string `json:"observer_name"`
}

// GetTasks возвращает живые задачи проекта либо задачи, назначенные пользователю
func (s *TaskService) GetTasks(userID uint, projectID uint) ([]TaskView, error) {
	query := s.db.Where("is_deleted = ? AND is_active = ?", false, true)
	if projectID != 0 {
		query = query.Where("project_id = ?", projectID)
	} else {
		query = query.Where("assigned_to = ?", userID)
	}

	var tasks []models.Task
	if err := query.Order("project_id ASC, created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return s.attachNames(tasks)
}

// GetObservedTasks возвращает живые задачи, за которыми наблюдает пользователь
func (s *TaskService) GetObservedTasks(userID uint) ([]TaskView, error) {
	var observers []models.Observer
	if err := s.db.Where("user_id = ?", userID).Find(&observers).Error; err != nil {
		return nil, err
	}
	taskIDs := make([]uint, 0, len(observers))
	for _, o := range observers {
		taskIDs = append(taskIDs, o.TaskID)
	}
	if len(taskIDs) == 0 {
		return []TaskView{}, nil
	}

	var tasks []models.Task
	err := s.db.Where("id IN ? AND is_deleted = ? AND is_active = ?", taskIDs, false, true).
		Order("project_id ASC, created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return s.attachNames(tasks)
}

// attachNames подставляет имена участников и наблюдателя к задачам
func (s *TaskService) attachNames(tasks []models.Task) ([]TaskView, error) {
	taskIDs := make([]uint, 0, len(tasks))
	idSet := make(map[uint]bool)
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
		idSet[t.AssignedBy] = true
		idSet[t.AssignedTo] = true
	}

	// Один наблюдатель на задачу, как в исходном API
	observerByTask := make(map[uint]uint)
	if len(taskIDs) > 0 {
		var observers []models.Observer
		if err := s.db.Where("task_id IN ?", taskIDs).Find(&observers).Error; err != nil {
			return nil, err
		}
		for _, o := range observers {
			if _, ok := observerByTask[o.TaskID]; !ok {
				observerByTask[o.TaskID] = o.UserID
				idSet[o.UserID] = true
			}
		}
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

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := TaskView{
			Task:           t,
			AssignedByName: nameByID[t.AssignedBy],
			AssignedToName: nameByID[t.AssignedTo],
		}
		if obsID, ok := observerByTask[t.ID]; ok {
			view.ObserverName = nameByID[obsID]
		}
		views = append(views, view)
	}
	return views, nil
}

// CreateTask создает задачу; обычным пользователям запрещено
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if actor.Role == models.RoleUser {
		return nil, ErrPermissionDenied
	}

	now := time.Now()
	task := models.Task{
		ProjectID:    input.ProjectID,
		AssignedBy:   actor.ID,
		AssignedTo:   input.AssignedTo,
		Name:         input.Name,
		Description:  input.Description,
		Stage:        input.Stage,
		StartDate:    &now,
		DueDate:      input.DueDate,
		UpdateUserID: actor.ID,
		IsActive:     true,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if input.ObserverUserID != 0 {
			observer := models.Observer{TaskID: task.ID, UserID: input.ObserverUserID}
			if err := tx.Create(&observer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify("New Task", "You have a new task assigned.", "newTask", input.AssignedTo)
	return &task, nil
}

// UpdateTask обновляет поля задачи; обычным пользователям запрещено
func (s *TaskService) UpdateTask(actor *models.User, taskID uint, input UpdateTaskInput) (*models.Task, error) {
	if actor.Role == models.RoleUser {
		return nil, ErrPermissionDenied
	}

	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.AssignedTo != nil {
		task.AssignedTo = *input.AssignedTo
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	task.UpdateUserID = actor.ID
	if err := s.db.Save(&task).Error; err != nil {
		return nil, err
	}

	// Наблюдатель обновляется на месте либо создается; ноль снимает наблюдение
	if input.ObserverUserID != nil {
		if *input.ObserverUserID == 0 {
			if err := s.db.Where("task_id = ?", taskID).Delete(&models.Observer{}).Error; err != nil {
				return nil, err
			}
		} else {
			var observer models.Observer
			err := s.db.Where("task_id = ?", taskID).First(&observer).Error
			if err == gorm.ErrRecordNotFound {
				observer = models.Observer{TaskID: taskID, UserID: *input.ObserverUserID}
				if err := s.db.Create(&observer).Error; err != nil {
					return nil, err
				}
			} else if err != nil {
				return nil, err
			} else {
				observer.UserID = *input.ObserverUserID
				if err := s.db.Save(&observer).Error; err != nil {
					return nil, err
				}
			}
		}
	}

	s.notifier.Notify("Task Updated", fmt.Sprintf("Task %d updated.", taskID), "taskUpdate", task.AssignedTo)
	return &task, nil
}

// canChangeStage проверяет право менять этап задачи
func canChangeStage(actor *models.User, task *models.Task, newStage int) error {
	isAssigned := task.AssignedBy == actor.ID || task.AssignedTo == actor.ID
	if !isAssigned && !actor.IsDeptHead() && !actor.IsBoard() {
		return ErrPermissionDenied
	}
	// Перенос в архив доступен только руководителю отдела или правлению,
	// даже если задача назначена на самого актора
	if newStage == models.StageArchived && !actor.IsDeptHead() && !actor.IsBoard() {
		return ErrPermissionDenied
	}
	return nil
}

// ChangeStage переводит задачу на новый этап, пишет журнал и уведомляет
// другую сторону назначения
func (s *TaskService) ChangeStage(actor *models.User, taskID uint, newStage int) (*models.Task, error) {
	if newStage < models.StageToDo || newStage > models.StageArchived {
		return nil, ErrValidation
	}

	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := canChangeStage(actor, &task, newStage); err != nil {
		return nil, err
	}

	prevStage := task.Stage
	err := s.db.Transaction(func(tx *gorm.DB) error {
		task.Stage = newStage
		task.UpdateUserID = actor.ID
		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		logEntry := models.ActivityLog{
			TaskID:      task.ID,
			UserID:      actor.ID,
			Stage:       newStage,
			Type:        models.ActivityTypeStage,
			Description: fmt.Sprintf("Durum Güncellemesi:  %s >> %s", models.StageLabel(prevStage), models.StageLabel(newStage)),
			AssignedBy:  task.AssignedBy,
			AssignedTo:  task.AssignedTo,
			TriggeredBy: actor.DisplayName(),
			TaskName:    task.Name,
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, err
	}

	// Уведомляем другую сторону назначения
	target := task.AssignedBy
	if task.AssignedBy == actor.ID {
		target = task.AssignedTo
	}
	s.notifier.Notify("Task Stage Update",
		fmt.Sprintf("Task %d moved to stage %d", taskID, newStage), "taskUpdate", target)

	return &task, nil
}

// ToggleCompletion меняет статус выполнения; доступно только постановщику
func (s *TaskService) ToggleCompletion(actor *models.User, taskID uint, complete bool) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if task.AssignedBy != actor.ID {
		return nil, ErrPermissionDenied
	}

	now := time.Now()
	description := fmt.Sprintf("Görev %s tarafından onaylandı", actor.DisplayName())
	if !complete {
		description = fmt.Sprintf("Görev %s tarafından tekrar açıldı", actor.DisplayName())
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		task.IsComplete = complete
		if complete {
			task.Stage = models.StageDone
			task.FinishDate = &now
		} else {
			task.Stage = models.StageInProgress
			task.FinishDate = nil
		}
		task.UpdateUserID = actor.ID
		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		logEntry := models.ActivityLog{
			TaskID:      task.ID,
			UserID:      actor.ID,
			Stage:       task.Stage,
			Type:        models.ActivityTypeComment,
			Description: description,
			AssignedBy:  task.AssignedBy,
			AssignedTo:  task.AssignedTo,
			TriggeredBy: actor.DisplayName(),
			TaskName:    task.Name,
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, err
	}

	status := "completed"
	if !complete {
		status = "reopened"
	}
	s.notifier.Notify("Task Completion",
		fmt.Sprintf("Task %d %s", taskID, status), "taskComplete", task.AssignedTo)

	return &task, nil
}

// DeactivateTask снимает задачу с доски, не удаляя ее
func (s *TaskService) DeactivateTask(actor *models.User, taskID uint) (*models.Task, error) {
	if !actor.IsDeptHead() && !actor.IsBoard() {
		return nil, ErrPermissionDenied
	}

	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	task.IsActive = false
	task.UpdateUserID = actor.ID
	if err := s.db.Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// SetDeleted меняет флаг мягкого удаления; строка никогда не удаляется физически
func (s *TaskService) SetDeleted(actor *models.User, taskID uint, deleted bool) (*models.Task, error) {
	if !actor.IsDeptHead() && !actor.IsBoard() {
		return nil, ErrPermissionDenied
	}

	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	task.IsDeleted = deleted
	task.UpdateUserID = actor.ID
	if err := s.db.Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// CheckTaskAuth проверяет, может ли пользователь создавать задачи в проекте
func (s *TaskService) CheckTaskAuth(actor *models.User, projectID uint) (bool, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, ErrNotFound
		}
		return false, err
	}
	return project.ManagerID == actor.ID || actor.IsBoard(), nil
}
