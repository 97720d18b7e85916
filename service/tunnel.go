package service

import (
	"github.com/igor04091968/tun-status/database"
	"github.com/igor04091968/tun-status/database/model"
)

// TunnelService owns the persisted tunnel declarations. The diagnostic
// engine consumes read-only snapshots through Snapshot; the CRUD half serves
// the management API only and never touches processes.
type TunnelService struct {
	SettingService
}

func NewTunnelService() *TunnelService {
	return &TunnelService{}
}

func (s *TunnelService) GetAll() ([]model.TunnelConfig, error) {
	db := database.GetDB()
	var configs []model.TunnelConfig
	err := db.Order("id").Find(&configs).Error
	return configs, err
}

func (s *TunnelService) Get(id uint) (*model.TunnelConfig, error) {
	db := database.GetDB()
	var config model.TunnelConfig
	err := db.First(&config, id).Error
	return &config, err
}

func (s *TunnelService) GetByKey(role string, sectionID string) (*model.TunnelConfig, error) {
	db := database.GetDB()
	var config model.TunnelConfig
	err := db.Where("role = ? AND section_id = ?", role, sectionID).First(&config).Error
	return &config, err
}

func (s *TunnelService) Save(config *model.TunnelConfig) error {
	db := database.GetDB()
	if config.ID == 0 {
		return db.Create(config).Error
	}
	return db.Save(config).Error
}

func (s *TunnelService) Delete(id uint) error {
	db := database.GetDB()
	return db.Delete(&model.TunnelConfig{}, id).Error
}

// Snapshot returns a point-in-time view of all declared tunnels together
// with the global enable flag, in stable configuration order.
func (s *TunnelService) Snapshot() ([]model.TunnelConfig, bool, error) {
	configs, err := s.GetAll()
	if err != nil {
		return nil, false, err
	}
	globalEnabled, err := s.GetGlobalEnabled()
	if err != nil {
		return nil, false, err
	}
	return configs, globalEnabled, nil
}
