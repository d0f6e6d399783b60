package services

import (
	"fmt"
	"time"

	"coreops-backend/models"

	"gorm.io/gorm"
)

// InventoryService реализует складской учет: каждое изменение количества
// атомарно пишет ровно одну строку журнала вместе с изменением данных
type InventoryService struct {
	db    *gorm.DB
	authz *AuthorizationService
}

// NewInventoryService создает новый сервис склада
func NewInventoryService(db *gorm.DB, authz *AuthorizationService) *InventoryService {
	return &InventoryService{db: db, authz: authz}
}

// requireAuth проверяет доступ актора к складскому домену
func (s *InventoryService) requireAuth(actor *models.User) error {
	ok, err := s.authz.IsAuthorized(models.DomainInventory, actor.ID, actor.Role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}

// CreateItemInput описывает данные новой складской позиции
type CreateItemInput struct {
	ItemName        string `json:"item_name"`
	CategoryID      uint   `json:"category_id"`
	LocationID      uint   `json:"location_id"`
	Description     string `json:"description"`
	QuantityInStock int    `json:"quantity_in_stock"`
	ReorderLevel    int    `json:"reorder_level"`
	Barcode         string `json:"barcode"`
}

// UpdateItemInput описывает изменяемые поля позиции
type UpdateItemInput struct {
	ItemName        *string `json:"item_name"`
	CategoryID      *uint   `json:"category_id"`
	LocationID      *uint   `json:"location_id"`
	Description     *string `json:"description"`
	QuantityInStock *int    `json:"quantity_in_stock"`
	ReorderLevel    *int    `json:"reorder_level"`
	Barcode         *string `json:"barcode"`
}

// InventoryLogFilter описывает фильтры выборки журнала
type InventoryLogFilter struct {
	Action        string
	InventoryName string
	UserName      string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// ListItems возвращает живые складские позиции со связями
func (s *InventoryService) ListItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.Preload("Category").Preload("Location").
		Where("is_deleted = ?", false).
		Find(&items).Error
	return items, err
}

// GetItem возвращает позицию по идентификатору
func (s *InventoryService) GetItem(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.db.Preload("Category").Preload("Location").First(&item, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// SearchItems ищет живые позиции по подстроке названия
func (s *InventoryService) SearchItems(query string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.Preload("Category").Preload("Location").
		Where("item_name LIKE ? AND is_deleted = ?", "%"+query+"%", false).
		Find(&items).Error
	return items, err
}

// CreateItem создает позицию и журнальную запись в одной транзакции
func (s *InventoryService) CreateItem(actor *models.User, input CreateItemInput) (*models.InventoryItem, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	if input.ItemName == "" {
		return nil, ErrValidation
	}

	item := models.InventoryItem{
		ItemName:        input.ItemName,
		CategoryID:      input.CategoryID,
		LocationID:      input.LocationID,
		Description:     input.Description,
		QuantityInStock: input.QuantityInStock,
		ReorderLevel:    input.ReorderLevel,
		Barcode:         input.Barcode,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		logEntry := models.InventoryLog{
			InventoryID:     item.ID,
			InventoryName:   item.ItemName,
			UserID:          actor.ID,
			UserName:        actor.DisplayName(),
			Action:          models.InventoryActionCreate,
			NewQuantity:     item.QuantityInStock,
			QuantityChanged: item.QuantityInStock,
			Details:         fmt.Sprintf("%s tarafından %s eklendi.", actor.DisplayName(), item.ItemName),
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem обновляет позицию; разница количества фиксируется в журнале
func (s *InventoryService) UpdateItem(actor *models.User, id uint, input UpdateItemInput) (*models.InventoryItem, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}

	var item models.InventoryItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&item, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if item.IsDeleted {
			return ErrNotFound
		}

		prevQty := item.QuantityInStock
		prevName := item.ItemName

		if input.ItemName != nil {
			item.ItemName = *input.ItemName
		}
		if input.CategoryID != nil {
			item.CategoryID = *input.CategoryID
		}
		if input.LocationID != nil {
			item.LocationID = *input.LocationID
		}
		if input.Description != nil {
			item.Description = *input.Description
		}
		if input.QuantityInStock != nil {
			item.QuantityInStock = *input.QuantityInStock
		}
		if input.ReorderLevel != nil {
			item.ReorderLevel = *input.ReorderLevel
		}
		if input.Barcode != nil {
			item.Barcode = *input.Barcode
		}
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		logEntry := models.InventoryLog{
			InventoryID:      item.ID,
			InventoryName:    item.ItemName,
			UserID:           actor.ID,
			UserName:         actor.DisplayName(),
			Action:           models.InventoryActionUpdate,
			PreviousQuantity: &prevQty,
			NewQuantity:      item.QuantityInStock,
			QuantityChanged:  item.QuantityInStock - prevQty,
			Details:          fmt.Sprintf("%s tarafından '%s' güncellendi.", actor.DisplayName(), prevName),
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem мягко удаляет позицию; журнал фиксирует обнуление остатка
func (s *InventoryService) DeleteItem(actor *models.User, id uint) error {
	if err := s.requireAuth(actor); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := lockForUpdate(tx).First(&item, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if item.IsDeleted {
			return ErrNotFound
		}

		prevQty := item.QuantityInStock
		item.IsDeleted = true
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		logEntry := models.InventoryLog{
			InventoryID:      item.ID,
			InventoryName:    item.ItemName,
			UserID:           actor.ID,
			UserName:         actor.DisplayName(),
			Action:           models.InventoryActionDelete,
			PreviousQuantity: &prevQty,
			NewQuantity:      0,
			QuantityChanged:  -prevQty,
			Details:          fmt.Sprintf("%s silme işlemi uyguladı: %s", actor.DisplayName(), item.ItemName),
		}
		return tx.Create(&logEntry).Error
	})
}

// StockOut списывает количество со склада.
// Количество должно быть положительным целым и не превышать остаток.
func (s *InventoryService) StockOut(actor *models.User, id uint, quantity int, purpose string) (*models.InventoryItem, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrValidation
	}

	var item models.InventoryItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&item, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if item.IsDeleted {
			return ErrNotFound
		}
		if item.QuantityInStock < quantity {
			return ErrInsufficientStock
		}

		prevQty := item.QuantityInStock
		item.QuantityInStock = prevQty - quantity
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		logEntry := models.InventoryLog{
			InventoryID:      item.ID,
			InventoryName:    item.ItemName,
			UserID:           actor.ID,
			UserName:         actor.DisplayName(),
			Action:           models.InventoryActionStockOut,
			PreviousQuantity: &prevQty,
			NewQuantity:      item.QuantityInStock,
			QuantityChanged:  -quantity,
			Details:          purpose,
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListLogs возвращает журнал склада с необязательными фильтрами
func (s *InventoryService) ListLogs(filter InventoryLogFilter) ([]models.InventoryLog, error) {
	query := s.db.Order("created_at DESC")
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.InventoryName != "" {
		query = query.Where("inventory_name LIKE ?", "%"+filter.InventoryName+"%")
	}
	if filter.UserName != "" {
		query = query.Where("user_name LIKE ?", "%"+filter.UserName+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	var logs []models.InventoryLog
	err := query.Find(&logs).Error
	return logs, err
}

// ListCategories возвращает живые категории
func (s *InventoryService) ListCategories() ([]models.InventoryCategory, error) {
	var categories []models.InventoryCategory
	err := s.db.Where("is_deleted = ?", false).Find(&categories).Error
	return categories, err
}

// CreateCategory создает категорию
func (s *InventoryService) CreateCategory(actor *models.User, name, description string) (*models.InventoryCategory, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrValidation
	}
	category := models.InventoryCategory{Name: name, Description: description}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory обновляет категорию
func (s *InventoryService) UpdateCategory(actor *models.User, id uint, name, description string) (*models.InventoryCategory, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	var category models.InventoryCategory
	if err := s.db.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name != "" {
		category.Name = name
	}
	category.Description = description
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory мягко удаляет категорию
func (s *InventoryService) DeleteCategory(actor *models.User, id uint) error {
	if err := s.requireAuth(actor); err != nil {
		return err
	}
	result := s.db.Model(&models.InventoryCategory{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLocations возвращает живые места хранения
func (s *InventoryService) ListLocations() ([]models.InventoryLocation, error) {
	var locations []models.InventoryLocation
	err := s.db.Where("is_deleted = ?", false).Find(&locations).Error
	return locations, err
}

// CreateLocation создает место хранения
func (s *InventoryService) CreateLocation(actor *models.User, name, description, coordinates string) (*models.InventoryLocation, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrValidation
	}
	location := models.InventoryLocation{Name: name, Description: description, Coordinates: coordinates}
	if err := s.db.Create(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// UpdateLocation обновляет место хранения
func (s *InventoryService) UpdateLocation(actor *models.User, id uint, name, description, coordinates string) (*models.InventoryLocation, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	var location models.InventoryLocation
	if err := s.db.First(&location, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name != "" {
		location.Name = name
	}
	location.Description = description
	location.Coordinates = coordinates
	if err := s.db.Save(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// DeleteLocation мягко удаляет место хранения
func (s *InventoryService) DeleteLocation(actor *models.User, id uint) error {
	if err := s.requireAuth(actor); err != nil {
		return err
	}
	result := s.db.Model(&models.InventoryLocation{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
