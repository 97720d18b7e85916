package service

import (
	"strconv"
	"time"

	"github.com/igor04091968/tun-status/database"
	"github.com/igor04091968/tun-status/database/model"
	"github.com/igor04091968/tun-status/util/common"
)

var defaultSettings = map[string]string{
	"globalEnabled":  "true",
	"webListen":      ":8080",
	"sessionMaxAge":  "3600",
	"statusInterval": "5",
	"logInterval":    "10",
	"logMaxLines":    "120",
	"logMinLevel":    "info",
	"logTag":         "udp2raw",
	"serviceName":    "udp2raw",
	"historyAge":     "7",
	"timeLocation":   "Local",
}

type SettingService struct{}

func (s *SettingService) GetSetting(key string) (string, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if database.IsNotFound(err) {
		value, ok := defaultSettings[key]
		if !ok {
			return "", common.NewError("unknown setting key: %s", key)
		}
		return value, nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) SetSetting(key string, value string) error {
	if _, ok := defaultSettings[key]; !ok {
		return common.NewError("unknown setting key: %s", key)
	}
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getInt(key string) (int, error) {
	value, err := s.GetSetting(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	value, err := s.GetSetting(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(value)
}

func (s *SettingService) GetGlobalEnabled() (bool, error) {
	return s.getBool("globalEnabled")
}

func (s *SettingService) SetGlobalEnabled(enabled bool) error {
	return s.SetSetting("globalEnabled", strconv.FormatBool(enabled))
}

func (s *SettingService) GetWebListen() (string, error) {
	return s.GetSetting("webListen")
}

func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetStatusInterval() (time.Duration, error) {
	secs, err := s.getInt("statusInterval")
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

func (s *SettingService) GetLogInterval() (time.Duration, error) {
	secs, err := s.getInt("logInterval")
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

func (s *SettingService) GetLogMaxLines() (int, error) {
	return s.getInt("logMaxLines")
}

func (s *SettingService) GetLogMinLevel() (string, error) {
	return s.GetSetting("logMinLevel")
}

// GetLogTag returns the syslog tag the wrapped tool logs under.
func (s *SettingService) GetLogTag() (string, error) {
	return s.GetSetting("logTag")
}

// GetServiceName returns the process name the supervisor runs tunnels as.
func (s *SettingService) GetServiceName() (string, error) {
	return s.GetSetting("serviceName")
}

// GetHistoryAge returns how many days of status history to keep.
func (s *SettingService) GetHistoryAge() (int, error) {
	return s.getInt("historyAge")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.GetSetting("timeLocation")
	if err != nil {
		return nil, err
	}
	return time.LoadLocation(l)
}
