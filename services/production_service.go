package services

import (
	"fmt"
	"time"

	"coreops-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductionService реализует учет выработки. Строка выработки уникальна по
// ключу (станок, материал, дата, смена): повторная запись по тому же ключу
// обновляет количество под блокировкой строки
type ProductionService struct {
	db    *gorm.DB
	authz *AuthorizationService
}

// NewProductionService создает новый сервис производства
func NewProductionService(db *gorm.DB, authz *AuthorizationService) *ProductionService {
	return &ProductionService{db: db, authz: authz}
}

// requireAuth проверяет доступ актора к производственному домену
func (s *ProductionService) requireAuth(actor *models.User) error {
	ok, err := s.authz.IsAuthorized(models.DomainProduction, actor.ID, actor.Role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}

// UpsertRecordInput описывает одну запись выработки
type UpsertRecordInput struct {
	MachineID  uint            `json:"machine_id"`
	MaterialID uint            `json:"material_id"`
	ProdDate   string          `json:"prod_date"` // YYYY-MM-DD
	Shift      string          `json:"shift"`
	Quantity   decimal.Decimal `json:"quantity"`
	Notes      string          `json:"notes"`
}

// RecordFilter описывает фильтры выборки записей выработки
type RecordFilter struct {
	MachineID  uint
	MaterialID uint
	DateFrom   string
	DateTo     string
	Shift      string
}

// ProductionLogFilter описывает фильтры выборки журнала производства
type ProductionLogFilter struct {
	Action       string
	MachineName  string
	MaterialName string
	UserName     string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// validateRecordKey проверяет составной ключ записи выработки
func validateRecordKey(input UpsertRecordInput) error {
	if input.MachineID == 0 || input.MaterialID == 0 {
		return ErrValidation
	}
	if _, err := time.Parse("2006-01-02", input.ProdDate); err != nil {
		return ErrValidation
	}
	if !models.ValidShifts[input.Shift] {
		return ErrValidation
	}
	return nil
}

// UpsertRecord записывает выработку. Если по ключу уже есть живая строка,
// количество обновляется; иначе создается новая запись. Мягко удаленная
// строка по тому же ключу оживает с новым количеством.
func (s *ProductionService) UpsertRecord(actor *models.User, input UpsertRecordInput) (*models.ProductionRecord, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	if err := validateRecordKey(input); err != nil {
		return nil, err
	}
	if input.Quantity.IsNegative() {
		return nil, ErrValidation
	}

	var machine models.Machine
	if err := s.db.First(&machine, input.MachineID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var material models.Material
	if err := s.db.First(&material, input.MaterialID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var record models.ProductionRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("machine_id = ? AND material_id = ? AND prod_date = ? AND shift = ?",
				input.MachineID, input.MaterialID, input.ProdDate, input.Shift).
			First(&record).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == gorm.ErrRecordNotFound {
			record = models.ProductionRecord{
				MachineID:  input.MachineID,
				MaterialID: input.MaterialID,
				ProdDate:   input.ProdDate,
				Shift:      input.Shift,
				Quantity:   input.Quantity,
				Notes:      input.Notes,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			logEntry := models.ProductionLog{
				RecordID:        record.ID,
				MachineID:       machine.ID,
				MaterialID:      material.ID,
				MachineName:     machine.Name,
				MaterialName:    material.Name,
				ProdDate:        record.ProdDate,
				Shift:           record.Shift,
				UserID:          actor.ID,
				UserName:        actor.DisplayName(),
				Action:          models.ProductionActionCreate,
				NewQuantity:     record.Quantity,
				QuantityChanged: record.Quantity,
				Details: fmt.Sprintf("%s: %s / %s için üretim kaydı oluşturuldu.",
					actor.DisplayName(), machine.Name, material.Name),
			}
			return tx.Create(&logEntry).Error
		}

		prevQty := record.Quantity
		wasDeleted := record.IsDeleted
		record.Quantity = input.Quantity
		record.Notes = input.Notes
		record.IsDeleted = false
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		if wasDeleted {
			// удаленная строка учитывается как нулевой остаток
			prevQty = decimal.Zero
		}
		logEntry := models.ProductionLog{
			RecordID:         record.ID,
			MachineID:        machine.ID,
			MaterialID:       material.ID,
			MachineName:      machine.Name,
			MaterialName:     material.Name,
			ProdDate:         record.ProdDate,
			Shift:            record.Shift,
			UserID:           actor.ID,
			UserName:         actor.DisplayName(),
			Action:           models.ProductionActionUpdate,
			PreviousQuantity: &prevQty,
			NewQuantity:      record.Quantity,
			QuantityChanged:  record.Quantity.Sub(prevQty),
			Details: fmt.Sprintf("%s: %s / %s üretim kaydı güncellendi.",
				actor.DisplayName(), machine.Name, material.Name),
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRecord мягко удаляет запись выработки; журнал фиксирует обнуление
func (s *ProductionService) DeleteRecord(actor *models.User, id uint) error {
	if err := s.requireAuth(actor); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var record models.ProductionRecord
		if err := lockForUpdate(tx).Preload("Machine").Preload("Material").
			First(&record, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if record.IsDeleted {
			return ErrNotFound
		}

		prevQty := record.Quantity
		record.IsDeleted = true
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		machineName, materialName := "", ""
		if record.Machine != nil {
			machineName = record.Machine.Name
		}
		if record.Material != nil {
			materialName = record.Material.Name
		}
		logEntry := models.ProductionLog{
			RecordID:         record.ID,
			MachineID:        record.MachineID,
			MaterialID:       record.MaterialID,
			MachineName:      machineName,
			MaterialName:     materialName,
			ProdDate:         record.ProdDate,
			Shift:            record.Shift,
			UserID:           actor.ID,
			UserName:         actor.DisplayName(),
			Action:           models.ProductionActionDelete,
			PreviousQuantity: &prevQty,
			NewQuantity:      decimal.Zero,
			QuantityChanged:  prevQty.Neg(),
			Details: fmt.Sprintf("%s üretim kaydını sildi: %s / %s %s %s",
				actor.DisplayName(), machineName, materialName, record.ProdDate, record.Shift),
		}
		return tx.Create(&logEntry).Error
	})
}

// ListRecords возвращает живые записи выработки по фильтрам
func (s *ProductionService) ListRecords(filter RecordFilter) ([]models.ProductionRecord, error) {
	query := s.db.Preload("Machine").Preload("Material").
		Where("is_deleted = ?", false)
	if filter.MachineID != 0 {
		query = query.Where("machine_id = ?", filter.MachineID)
	}
	if filter.MaterialID != 0 {
		query = query.Where("material_id = ?", filter.MaterialID)
	}
	if filter.DateFrom != "" {
		query = query.Where("prod_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("prod_date <= ?", filter.DateTo)
	}
	if filter.Shift != "" {
		query = query.Where("shift = ?", filter.Shift)
	}

	var records []models.ProductionRecord
	err := query.Order("prod_date DESC, shift ASC").Find(&records).Error
	return records, err
}

// ListLogs возвращает журнал производства с необязательными фильтрами
func (s *ProductionService) ListLogs(filter ProductionLogFilter) ([]models.ProductionLog, error) {
	query := s.db.Order("created_at DESC")
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.MachineName != "" {
		query = query.Where("machine_name LIKE ?", "%"+filter.MachineName+"%")
	}
	if filter.MaterialName != "" {
		query = query.Where("material_name LIKE ?", "%"+filter.MaterialName+"%")
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

	var logs []models.ProductionLog
	err := query.Find(&logs).Error
	return logs, err
}

// DailyTotals возвращает суммарную выработку по дням за период
func (s *ProductionService) DailyTotals(dateFrom, dateTo string) ([]models.DailyTotal, error) {
	query := s.db.Model(&models.ProductionRecord{}).
		Select("prod_date, SUM(quantity) AS total_quantity").
		Where("is_deleted = ?", false)
	if dateFrom != "" {
		query = query.Where("prod_date >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("prod_date <= ?", dateTo)
	}

	var totals []models.DailyTotal
	err := query.Group("prod_date").Order("prod_date ASC").Scan(&totals).Error
	return totals, err
}

// MachineTotals возвращает суммарную выработку по станкам за период
func (s *ProductionService) MachineTotals(dateFrom, dateTo string) ([]models.MachineTotal, error) {
	query := s.db.Model(&models.ProductionRecord{}).
		Select("production_records.machine_id, machines.name AS machine_name, SUM(production_records.quantity) AS total_quantity").
		Joins("JOIN machines ON machines.id = production_records.machine_id").
		Where("production_records.is_deleted = ?", false)
	if dateFrom != "" {
		query = query.Where("production_records.prod_date >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("production_records.prod_date <= ?", dateTo)
	}

	var totals []models.MachineTotal
	err := query.Group("production_records.machine_id, machines.name").
		Order("total_quantity DESC").Scan(&totals).Error
	return totals, err
}

// MaterialTotals возвращает суммарную выработку по материалам за период
func (s *ProductionService) MaterialTotals(dateFrom, dateTo string) ([]models.MaterialTotal, error) {
	query := s.db.Model(&models.ProductionRecord{}).
		Select("production_records.material_id, materials.name AS material_name, materials.unit, SUM(production_records.quantity) AS total_quantity").
		Joins("JOIN materials ON materials.id = production_records.material_id").
		Where("production_records.is_deleted = ?", false)
	if dateFrom != "" {
		query = query.Where("production_records.prod_date >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("production_records.prod_date <= ?", dateTo)
	}

	var totals []models.MaterialTotal
	err := query.Group("production_records.material_id, materials.name, materials.unit").
		Order("total_quantity DESC").Scan(&totals).Error
	return totals, err
}

// ListMachines возвращает живые станки
func (s *ProductionService) ListMachines() ([]models.Machine, error) {
	var machines []models.Machine
	err := s.db.Where("is_deleted = ?", false).Find(&machines).Error
	return machines, err
}

// CreateMachine создает станок
func (s *ProductionService) CreateMachine(actor *models.User, name, description string) (*models.Machine, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrValidation
	}
	machine := models.Machine{Name: name, Description: description}
	if err := s.db.Create(&machine).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

// UpdateMachine обновляет станок
func (s *ProductionService) UpdateMachine(actor *models.User, id uint, name, description string) (*models.Machine, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	var machine models.Machine
	if err := s.db.First(&machine, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name != "" {
		machine.Name = name
	}
	machine.Description = description
	if err := s.db.Save(&machine).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

// DeleteMachine мягко удаляет станок
func (s *ProductionService) DeleteMachine(actor *models.User, id uint) error {
	if err := s.requireAuth(actor); err != nil {
		return err
	}
	result := s.db.Model(&models.Machine{}).
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

// ListMaterials возвращает живые материалы
func (s *ProductionService) ListMaterials() ([]models.Material, error) {
	var materials []models.Material
	err := s.db.Where("is_deleted = ?", false).Find(&materials).Error
	return materials, err
}

// CreateMaterial создает материал
func (s *ProductionService) CreateMaterial(actor *models.User, name, unit string) (*models.Material, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrValidation
	}
	material := models.Material{Name: name, Unit: unit}
	if err := s.db.Create(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

// UpdateMaterial обновляет материал
func (s *ProductionService) UpdateMaterial(actor *models.User, id uint, name, unit string) (*models.Material, error) {
	if err := s.requireAuth(actor); err != nil {
		return nil, err
	}
	var material models.Material
	if err := s.db.First(&material, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name != "" {
		material.Name = name
	}
	material.Unit = unit
	if err := s.db.Save(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

// DeleteMaterial мягко удаляет материал
func (s *ProductionService) DeleteMaterial(actor *models.User, id uint) error {
	if err := s.requireAuth(actor); err != nil {
		return err
	}
	result := s.db.Model(&models.Material{}).
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
