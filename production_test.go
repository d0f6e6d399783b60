package main

import (
	"testing"

	"coreops-backend/models"
	"coreops-backend/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func setupProduction(t *testing.T) (*services.ProductionService, *models.User, *models.Machine, *models.Material) {
	t.Helper()
	db := setupTestDB()
	_, _, board := createTestUsers(db)
	authz := services.NewAuthorizationService(db)
	production := services.NewProductionService(db, authz)

	machine, err := production.CreateMachine(board, "Press 1", "")
	assert.NoError(t, err)
	material, err := production.CreateMaterial(board, "Sheet Metal", "kg")
	assert.NoError(t, err)

	return production, board, machine, material
}

func TestUpsertRecordValidation(t *testing.T) {
	production, board, machine, material := setupProduction(t)

	// Неверная смена
	_, err := production.UpsertRecord(board, services.UpsertRecordInput{
		MachineID:  machine.ID,
		MaterialID: material.ID,
		ProdDate:   "2026-08-01",
		Shift:      "D",
		Quantity:   decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	// Неверная дата
	_, err = production.UpsertRecord(board, services.UpsertRecordInput{
		MachineID:  machine.ID,
		MaterialID: material.ID,
		ProdDate:   "01.08.2026",
		Shift:      "A",
		Quantity:   decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	// Отрицательное количество
	_, err = production.UpsertRecord(board, services.UpsertRecordInput{
		MachineID:  machine.ID,
		MaterialID: material.ID,
		ProdDate:   "2026-08-01",
		Shift:      "A",
		Quantity:   decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	// Несуществующий станок
	_, err = production.UpsertRecord(board, services.UpsertRecordInput{
		MachineID:  999,
		MaterialID: material.ID,
		ProdDate:   "2026-08-01",
		Shift:      "A",
		Quantity:   decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpsertRecordUpdatesSameKey(t *testing.T) {
	production, board, machine, material := setupProduction(t)

	input := services.UpsertRecordInput{
		MachineID:  machine.ID,
		MaterialID: material.ID,
		ProdDate:   "2026-08-01",
		Shift:      "A",
		Quantity:   decimal.NewFromInt(100),
	}
	first, err := production.UpsertRecord(board, input)
	assert.NoError(t, err)

	// Повторная запись по тому же ключу обновляет строку, а не создает новую
	input.Quantity = decimal.NewFromInt(150)
	second, err := production.UpsertRecord(board, input)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Quantity.Equal(decimal.NewFromInt(150)))

	records, err := production.ListRecords(services.RecordFilter{})
	assert.NoError(t, err)
	assert.Len(t, records, 1)

	// Другая смена по тому же станку и дате - отдельная строка
	input.Shift = "B"
	third, err := production.UpsertRecord(board, input)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestProductionLogDeltas(t *testing.T) {
	production, board, machine, material := setupProduction(t)

	input := services.UpsertRecordInput{
		MachineID:  machine.ID,
		MaterialID: material.ID,
		ProdDate:   "2026-08-01",
		Shift:      "A",
		Quantity:   decimal.NewFromInt(100),
	}
	record, _ := production.UpsertRecord(board, input)

	input.Quantity = decimal.NewFromInt(70)
	production.UpsertRecord(board, input)

	logs, err := production.ListLogs(services.ProductionLogFilter{})
	assert.NoError(t, err)
	assert.Len(t, logs, 2)

	// Журнал отсортирован от новых к старым
	updateLog := logs[0]
	createLog := logs[1]

	assert.Equal(t, models.ProductionActionCreate, createLog.Action)
	assert.Nil(t, createLog.PreviousQuantity)
	assert.True(t, createLog.NewQuantity.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Press 1", createLog.MachineName)
	assert.Equal(t, "Sheet Metal", createLog.MaterialName)

	assert.Equal(t, models.ProductionActionUpdate, updateLog.Action)
	assert.True(t, updateLog.PreviousQuantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, updateLog.NewQuantity.Equal(decimal.NewFromInt(70)))
	assert.True(t, updateLog.QuantityChanged.Equal(decimal.NewFromInt(-30)))

	// Удаление фиксирует обнуление
	assert.NoError(t, production.DeleteRecord(board, record.ID))
	logs, _ = production.ListLogs(services.ProductionLogFilter{
		Action: models.ProductionActionDelete,
	})
	assert.Len(t, logs, 1)
	assert.True(t, logs[0].PreviousQuantity.Equal(decimal.NewFromInt(70)))
	assert.True(t, logs[0].NewQuantity.IsZero())
	assert.True(t, logs[0].QuantityChanged.Equal(decimal.NewFromInt(-70)))
}

func TestDeletedRecordRevivesOnUpsert(t *testing.T) {
	production, board, machine, material := setupProduction(t)

	input := services.UpsertRecordInput{
		MachineID:  machine.ID,
		MaterialID: material.ID,
		ProdDate:   "2026-08-01",
		Shift:      "C",
		Quantity:   decimal.NewFromInt(40),
	}
	record, _ := production.UpsertRecord(board, input)
	assert.NoError(t, production.DeleteRecord(board, record.ID))

	records, _ := production.ListRecords(services.RecordFilter{})
	assert.Len(t, records, 0)

	// Новая запись по тому же ключу оживляет строку
	input.Quantity = decimal.NewFromInt(55)
	revived, err := production.UpsertRecord(board, input)
	assert.NoError(t, err)
	assert.Equal(t, record.ID, revived.ID)
	assert.False(t, revived.IsDeleted)

	records, _ = production.ListRecords(services.RecordFilter{})
	assert.Len(t, records, 1)
}

func TestProductionTotals(t *testing.T) {
	production, board, machine, material := setupProduction(t)

	dates := []string{"2026-08-01", "2026-08-01", "2026-08-02"}
	shifts := []string{"A", "B", "A"}
	quantities := []int64{100, 50, 25}
	for i := range dates {
		_, err := production.UpsertRecord(board, services.UpsertRecordInput{
			MachineID:  machine.ID,
			MaterialID: material.ID,
			ProdDate:   dates[i],
			Shift:      shifts[i],
			Quantity:   decimal.NewFromInt(quantities[i]),
		})
		assert.NoError(t, err)
	}

	daily, err := production.DailyTotals("", "")
	assert.NoError(t, err)
	assert.Len(t, daily, 2)
	assert.Equal(t, "2026-08-01", daily[0].ProdDate)
	assert.True(t, daily[0].TotalQuantity.Equal(decimal.NewFromInt(150)))
	assert.True(t, daily[1].TotalQuantity.Equal(decimal.NewFromInt(25)))

	machines, err := production.MachineTotals("", "")
	assert.NoError(t, err)
	assert.Len(t, machines, 1)
	assert.Equal(t, "Press 1", machines[0].MachineName)
	assert.True(t, machines[0].TotalQuantity.Equal(decimal.NewFromInt(175)))

	materials, err := production.MaterialTotals("2026-08-02", "")
	assert.NoError(t, err)
	assert.Len(t, materials, 1)
	assert.Equal(t, "kg", materials[0].Unit)
	assert.True(t, materials[0].TotalQuantity.Equal(decimal.NewFromInt(25)))
}

func TestProductionRequiresDomainAccess(t *testing.T) {
	db := setupTestDB()
	member, _, _ := createTestUsers(db)
	authz := services.NewAuthorizationService(db)
	production := services.NewProductionService(db, authz)

	_, err := production.CreateMachine(member, "Press 1", "")
	assert.ErrorIs(t, err, services.ErrPermissionDenied)

	_, _, err = authz.Grant(models.DomainProduction, []uint{member.ID})
	assert.NoError(t, err)

	_, err = production.CreateMachine(member, "Press 1", "")
	assert.NoError(t, err)
}
