package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Действия журнала производства
const (
	ProductionActionCreate = "CREATE"
	ProductionActionUpdate = "UPDATE"
	ProductionActionDelete = "DELETE"
)

// Смены производства
var ValidShifts = map[string]bool{"A": true, "B": true, "C": true}

// Machine представляет производственный станок
type Machine struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;default:''"`
	IsDeleted   bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Material представляет производимый материал
type Material struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Unit      string    `json:"unit" gorm:"size:32;default:''"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductionRecord представляет накопитель выработки.
// Строка уникальна по (станок, материал, дата, смена); повторная запись по
// тому же ключу обновляет количество, а не создаёт новую строку.
type ProductionRecord struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	MachineID  uint            `json:"machine_id" gorm:"index:idx_prod_key,unique;not null"`
	MaterialID uint            `json:"material_id" gorm:"index:idx_prod_key,unique;not null"`
	ProdDate   string          `json:"prod_date" gorm:"size:10;index:idx_prod_key,unique;not null"` // YYYY-MM-DD
	Shift      string          `json:"shift" gorm:"size:1;index:idx_prod_key,unique;not null"`
	Quantity   decimal.Decimal `json:"quantity" gorm:"type:decimal(18,3);default:0"`
	Notes      string          `json:"notes" gorm:"type:text;default:''"`
	IsDeleted  bool            `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Связи
	Machine  *Machine  `json:"machine" gorm:"foreignKey:MachineID"`
	Material *Material `json:"material" gorm:"foreignKey:MaterialID"`
}

// ProductionLog представляет неизменяемую запись об изменении выработки
type ProductionLog struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	RecordID         uint             `json:"record_id" gorm:"index;not null"`
	MachineID        uint             `json:"machine_id" gorm:"index"`
	MaterialID       uint             `json:"material_id" gorm:"index"`
	MachineName      string           `json:"machine_name" gorm:"size:255"`  // снимок названия станка
	MaterialName     string           `json:"material_name" gorm:"size:255"` // снимок названия материала
	ProdDate         string           `json:"prod_date" gorm:"size:10"`
	Shift            string           `json:"shift" gorm:"size:1"`
	UserID           uint             `json:"user_id" gorm:"index"`
	UserName         string           `json:"user_name" gorm:"size:255"`
	Action           string           `json:"action" gorm:"size:32;index;not null"`
	PreviousQuantity *decimal.Decimal `json:"previous_quantity" gorm:"type:decimal(18,3)"`
	NewQuantity      decimal.Decimal  `json:"new_quantity" gorm:"type:decimal(18,3)"`
	QuantityChanged  decimal.Decimal  `json:"quantity_changed" gorm:"type:decimal(18,3)"`
	Details          string           `json:"details" gorm:"type:text;default:''"`
	CreatedAt        time.Time        `json:"created_at" gorm:"index"`
}

// DailyTotal представляет суммарную выработку за день
type DailyTotal struct {
	ProdDate      string          `json:"prod_date"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// MachineTotal представляет суммарную выработку станка
type MachineTotal struct {
	MachineID     uint            `json:"machine_id"`
	MachineName   string          `json:"machine_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// MaterialTotal представляет суммарную выработку по материалу
type MaterialTotal struct {
	MaterialID    uint            `json:"material_id"`
	MaterialName  string          `json:"material_name"`
	Unit          string          `json:"unit"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// BeforeCreate хук для установки времени создания
func (m *Machine) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (m *Machine) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate хук для установки времени создания
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate хук для установки времени создания
func (r *ProductionRecord) BeforeCreate(tx *gorm.DB) error {
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (r *ProductionRecord) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate хук для установки времени создания
func (l *ProductionLog) BeforeCreate(tx *gorm.DB) error {
	l.CreatedAt = time.Now()
	return nil
}
