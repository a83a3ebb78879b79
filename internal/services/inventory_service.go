package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrIMEITaken       = errors.New("this IMEI already exists in the system")
	ErrSIMTaken        = errors.New("this SIM number already exists in the system")
	ErrUnitUnavailable = errors.New("the selected unit is no longer in stock")
)

// searchMinChars keeps live-search queries from scanning the whole table on
// every keystroke.
const searchMinChars = 3

// searchLimit caps live-search results.
const searchLimit = 5

// InventoryService tracks hardware units (trackers and SIM cards) through
// IN_STOCK -> INSTALLED. A unit is attached to at most one job, enforced by
// the conditional claim updates; units never return to stock automatically.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

func (s *InventoryService) AddDevice(imei string) (*models.Device, error) {
	if len(imei) < 5 {
		return nil, errors.New("invalid IMEI, it is too short")
	}

	var existing models.Device
	if err := s.db.Where("imei = ?", imei).First(&existing).Error; err == nil {
		return nil, ErrIMEITaken
	}

	device := models.Device{
		ID:     uuid.New(),
		IMEI:   imei,
		Status: models.UnitInStock,
	}
	if err := s.db.Create(&device).Error; err != nil {
		return nil, fmt.Errorf("failed to add device: %w", err)
	}
	return &device, nil
}

func (s *InventoryService) AddSimCard(simNumber, network string) (*models.SimCard, error) {
	if len(simNumber) < 10 {
		return nil, errors.New("invalid SIM number")
	}

	var existing models.SimCard
	if err := s.db.Where("sim_number = ?", simNumber).First(&existing).Error; err == nil {
		return nil, ErrSIMTaken
	}

	sim := models.SimCard{
		ID:        uuid.New(),
		SimNumber: simNumber,
		Network:   network,
		Status:    models.UnitInStock,
	}
	if err := s.db.Create(&sim).Error; err != nil {
		return nil, fmt.Errorf("failed to add SIM card: %w", err)
	}
	return &sim, nil
}

// SearchAvailableDevices returns up to searchLimit in-stock trackers whose
// IMEI contains the query. Queries shorter than searchMinChars fail closed.
func (s *InventoryService) SearchAvailableDevices(query string) ([]models.Device, error) {
	if len(query) < searchMinChars {
		return []models.Device{}, nil
	}
	var devices []models.Device
	err := s.db.Where("status = ? AND imei LIKE ?", models.UnitInStock, "%"+query+"%").
		Limit(searchLimit).
		Find(&devices).Error
	return devices, err
}

func (s *InventoryService) SearchAvailableSimCards(query string) ([]models.SimCard, error) {
	if len(query) < searchMinChars {
		return []models.SimCard{}, nil
	}
	var sims []models.SimCard
	err := s.db.Where("status = ? AND sim_number LIKE ?", models.UnitInStock, "%"+query+"%").
		Limit(searchLimit).
		Find(&sims).Error
	return sims, err
}

// Summary returns in-stock / installed counts for the inventory dashboard.
func (s *InventoryService) Summary() (map[string]int64, error) {
	out := make(map[string]int64, 4)

	counts := []struct {
		key   string
		model interface{}
		state models.UnitStatus
	}{
		{"devices_in_stock", &models.Device{}, models.UnitInStock},
		{"devices_installed", &models.Device{}, models.UnitInstalled},
		{"sims_in_stock", &models.SimCard{}, models.UnitInStock},
		{"sims_installed", &models.SimCard{}, models.UnitInstalled},
	}
	for _, c := range counts {
		var n int64
		if err := s.db.Model(c.model).Where("status = ?", c.state).Count(&n).Error; err != nil {
			return nil, err
		}
		out[c.key] = n
	}
	return out, nil
}

// claimDevice conditionally flips a tracker to INSTALLED for jobID. The
// status check and the write are one UPDATE so two concurrent submissions
// cannot both take the same unit. Only called inside the install-submission
// transaction.
func (s *InventoryService) claimDevice(tx *gorm.DB, deviceID, jobID uuid.UUID) error {
	res := tx.Model(&models.Device{}).
		Where("id = ? AND status = ?", deviceID, models.UnitInStock).
		Updates(map[string]interface{}{
			"status": models.UnitInstalled,
			"job_id": jobID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUnitUnavailable
	}
	return nil
}

func (s *InventoryService) claimSimCard(tx *gorm.DB, simCardID, jobID uuid.UUID) error {
	res := tx.Model(&models.SimCard{}).
		Where("id = ? AND status = ?", simCardID, models.UnitInStock).
		Updates(map[string]interface{}{
			"status": models.UnitInstalled,
			"job_id": jobID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUnitUnavailable
	}
	return nil
}
