package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate навешивает блокировку строки внутри транзакции.
// SQLite не поддерживает FOR UPDATE: там пишет только один писатель,
// поэтому блокировка не требуется.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
