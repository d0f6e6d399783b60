package main

import (
	"testing"

	"coreops-backend/models"
	"coreops-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestCreateTaskForbiddenForRegularUser(t *testing.T) {
	db := setupTestDB()
	member, _, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	_, err := tasks.CreateTask(member, services.CreateTaskInput{
		ProjectID:  1,
		AssignedTo: member.ID,
		Name:       "Test task",
	})
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}

func TestCreateTaskWithObserver(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	task, err := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:      1,
		AssignedTo:     member.ID,
		Name:           "Test task",
		ObserverUserID: head.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, head.ID, task.AssignedBy)
	assert.NotNil(t, task.StartDate)

	var observer models.Observer
	assert.NoError(t, db.Where("task_id = ?", task.ID).First(&observer).Error)
	assert.Equal(t, head.ID, observer.UserID)
}

func TestCreateTaskRollsBackOnObserverFailure(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	failWritesTo(db, "observers")

	_, err := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:      1,
		AssignedTo:     member.ID,
		Name:           "Test task",
		ObserverUserID: head.ID,
	})
	assert.Error(t, err)

	// Откат убирает и саму задачу
	var count int64
	db.Model(&models.Task{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestChangeStageWritesActivityLog(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	task, err := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:  1,
		AssignedTo: member.ID,
		Name:       "Test task",
	})
	assert.NoError(t, err)

	updated, err := tasks.ChangeStage(member, task.ID, models.StageInProgress)
	assert.NoError(t, err)
	assert.Equal(t, models.StageInProgress, updated.Stage)

	var logEntry models.ActivityLog
	assert.NoError(t, db.Where("task_id = ?", task.ID).First(&logEntry).Error)
	assert.Equal(t, models.ActivityTypeStage, logEntry.Type)
	assert.Equal(t, "Durum Güncellemesi:  Yapılacak Görevler >> Devam Eden", logEntry.Description)
	assert.Equal(t, "Test Member", logEntry.TriggeredBy)
	assert.Equal(t, "Test task", logEntry.TaskName)
}

func TestChangeStageValidation(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	task, _ := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:  1,
		AssignedTo: member.ID,
		Name:       "Test task",
	})

	_, err := tasks.ChangeStage(member, task.ID, 7)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = tasks.ChangeStage(member, task.ID, -1)
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestArchiveRequiresHeadEvenForAssignee(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	task, _ := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:  1,
		AssignedTo: member.ID,
		Name:       "Test task",
	})

	// Исполнитель может двигать этапы, но не в архив
	_, err := tasks.ChangeStage(member, task.ID, models.StageArchived)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)

	updated, err := tasks.ChangeStage(head, task.ID, models.StageArchived)
	assert.NoError(t, err)
	assert.Equal(t, models.StageArchived, updated.Stage)
}

func TestChangeStageDeniedForOutsider(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	outsider := models.User{
		UserName: "outsider", PasswordHash: "h",
		Role: models.RoleUser, DepartmentRole: models.DeptRoleMember, IsActive: true,
		Name: "Out",
	}
	db.Create(&outsider)

	task, _ := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:  1,
		AssignedTo: member.ID,
		Name:       "Test task",
	})

	_, err := tasks.ChangeStage(&outsider, task.ID, models.StageInProgress)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}

func TestToggleCompletionAssignerOnly(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	task, _ := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:  1,
		AssignedTo: member.ID,
		Name:       "Test task",
	})

	// Исполнитель не может подтвердить выполнение
	_, err := tasks.ToggleCompletion(member, task.ID, true)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)

	updated, err := tasks.ToggleCompletion(head, task.ID, true)
	assert.NoError(t, err)
	assert.True(t, updated.IsComplete)
	assert.Equal(t, models.StageDone, updated.Stage)
	assert.NotNil(t, updated.FinishDate)

	// Повторное открытие возвращает задачу в работу
	updated, err = tasks.ToggleCompletion(head, task.ID, false)
	assert.NoError(t, err)
	assert.False(t, updated.IsComplete)
	assert.Equal(t, models.StageInProgress, updated.Stage)
	assert.Nil(t, updated.FinishDate)

	var logs []models.ActivityLog
	db.Where("task_id = ? AND type = ?", task.ID, models.ActivityTypeComment).Find(&logs)
	assert.Len(t, logs, 2)
	assert.Equal(t, "Görev Test Head tarafından onaylandı", logs[0].Description)
	assert.Equal(t, "Görev Test Head tarafından tekrar açıldı", logs[1].Description)
}

func TestSetDeletedAndRestore(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	task, _ := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:  1,
		AssignedTo: member.ID,
		Name:       "Test task",
	})

	_, err := tasks.SetDeleted(member, task.ID, true)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)

	updated, err := tasks.SetDeleted(head, task.ID, true)
	assert.NoError(t, err)
	assert.True(t, updated.IsDeleted)

	// Удаленная задача не попадает в выборки
	views, err := tasks.GetTasks(member.ID, 0)
	assert.NoError(t, err)
	assert.Len(t, views, 0)

	// Строка остается в базе и восстанавливается
	updated, err = tasks.SetDeleted(head, task.ID, false)
	assert.NoError(t, err)
	assert.False(t, updated.IsDeleted)

	views, err = tasks.GetTasks(member.ID, 0)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "Test Head", views[0].AssignedByName)
	assert.Equal(t, "Test Member", views[0].AssignedToName)
}

func TestObservedTasks(t *testing.T) {
	db := setupTestDB()
	member, head, board := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)

	task, _ := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:      1,
		AssignedTo:     member.ID,
		Name:           "Watched task",
		ObserverUserID: board.ID,
	})

	views, err := tasks.GetObservedTasks(board.ID)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, task.ID, views[0].ID)
	assert.Equal(t, "Test Board", views[0].ObserverName)

	views, err = tasks.GetObservedTasks(member.ID)
	assert.NoError(t, err)
	assert.Len(t, views, 0)
}
