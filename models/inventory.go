package models

import (
	"time"

	"gorm.io/gorm"
)

// Действия журнала склада
const (
	InventoryActionCreate   = "CREATE"
	InventoryActionUpdate   = "UPDATE"
	InventoryActionDelete   = "DELETE"
	InventoryActionStockOut = "STOCK_OUT"
)

// InventoryItem представляет складскую позицию
type InventoryItem struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ItemName        string    `json:"item_name" gorm:"size:255;not null;index"`
	CategoryID      uint      `json:"category_id" gorm:"index"`
	LocationID      uint      `json:"location_id" gorm:"index"`
	Description     string    `json:"description" gorm:"type:text;default:''"`
	QuantityInStock int       `json:"quantity_in_stock" gorm:"default:0"`
	ReorderLevel    int       `json:"reorder_level" gorm:"default:0"`
	Barcode         string    `json:"barcode" gorm:"size:255;default:''"`
	IsDeleted       bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Связи
	Category *InventoryCategory `json:"category" gorm:"foreignKey:CategoryID"`
	Location *InventoryLocation `json:"location" gorm:"foreignKey:LocationID"`
}

// InventoryCategory представляет категорию складских позиций
type InventoryCategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;default:''"`
	IsDeleted   bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InventoryLocation представляет место хранения
type InventoryLocation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;default:''"`
	Coordinates string    `json:"coordinates" gorm:"size:255;default:''"`
	IsDeleted   bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InventoryLog представляет неизменяемую запись о движении склада.
// PreviousQuantity + QuantityChanged всегда равно NewQuantity;
// для создания позиции PreviousQuantity отсутствует.
type InventoryLog struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	InventoryID      uint      `json:"inventory_id" gorm:"index;not null"`
	InventoryName    string    `json:"inventory_name" gorm:"size:255"` // снимок названия на момент операции
	UserID           uint      `json:"user_id" gorm:"index"`
	UserName         string    `json:"user_name" gorm:"size:255"` // снимок имени на момент операции
	Action           string    `json:"action" gorm:"size:32;index;not null"`
	PreviousQuantity *int      `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	QuantityChanged  int       `json:"quantity_changed"`
	Details          string    `json:"details" gorm:"type:text;default:''"`
	CreatedAt        time.Time `json:"created_at" gorm:"index"`
}

// BeforeCreate хук для установки времени создания
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (i *InventoryItem) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate хук для установки времени создания
func (c *InventoryCategory) BeforeCreate(tx *gorm.DB) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate хук для установки времени создания
func (l *InventoryLocation) BeforeCreate(tx *gorm.DB) error {
	l.CreatedAt = time.Now()
	l.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate хук для установки времени создания
func (l *InventoryLog) BeforeCreate(tx *gorm.DB) error {
	l.CreatedAt = time.Now()
	return nil
}
