package main

import (
	"testing"

	"coreops-backend/models"
	"coreops-backend/services"

	"github.com/stretchr/testify/assert"
)

func seedActivity(t *testing.T) (*services.ActivityLogService, *models.User, *models.User, *models.Task) {
	t.Helper()
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)
	logs := services.NewActivityLogService(db)

	task, err := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:  1,
		AssignedTo: member.ID,
		Name:       "Seeded task",
	})
	assert.NoError(t, err)

	_, err = tasks.ChangeStage(member, task.ID, models.StageInProgress)
	assert.NoError(t, err)

	return logs, member, head, task
}

func TestGetUserLogs(t *testing.T) {
	logs, member, head, _ := seedActivity(t)

	own, err := logs.GetUserLogs(member.ID, 0)
	assert.NoError(t, err)
	assert.Len(t, own, 1)

	// У постановщика записей нет - смену этапа сделал исполнитель
	_, err = logs.GetUserLogs(head.ID, 0)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestActivityFeedScopedForRegularUser(t *testing.T) {
	logs, member, _, _ := seedActivity(t)

	feed, err := logs.GetActivityFeed(member)
	assert.NoError(t, err)
	assert.Len(t, feed, 1)
	assert.Equal(t, "Test Member", feed[0].UserName)
	assert.Equal(t, "Test Head", feed[0].AssignedByName)
	assert.Equal(t, "Test Member", feed[0].AssignedToName)
}

func TestActivityFeedHidesForeignEventsFromRegularUser(t *testing.T) {
	db := setupTestDB()
	member, head, board := createTestUsers(db)
	notifier, _ := newTestNotifier()
	tasks := services.NewTaskService(db, notifier)
	logs := services.NewActivityLogService(db)

	// Событие между руководителем и правлением
	task, _ := tasks.CreateTask(head, services.CreateTaskInput{
		ProjectID:  1,
		AssignedTo: board.ID,
		Name:       "Foreign task",
	})
	tasks.ChangeStage(head, task.ID, models.StageInProgress)

	feed, err := logs.GetActivityFeed(member)
	assert.NoError(t, err)
	assert.Len(t, feed, 0)

	// Правление видит всё
	feed, err = logs.GetActivityFeed(board)
	assert.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestUpdateAndDeleteLogOwnerOnly(t *testing.T) {
	logs, member, head, _ := seedActivity(t)

	own, _ := logs.GetUserLogs(member.ID, 0)
	logID := own[0].ID

	// Чужую запись нельзя ни править, ни удалять
	_, err := logs.UpdateDescription(head.ID, logID, "edited")
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, logs.DeleteLog(head.ID, logID), services.ErrNotFound)

	updated, err := logs.UpdateDescription(member.ID, logID, "edited")
	assert.NoError(t, err)
	assert.Equal(t, "edited", updated.Description)

	assert.NoError(t, logs.DeleteLog(member.ID, logID))
	_, err = logs.GetUserLogs(member.ID, 0)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
