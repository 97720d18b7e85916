package telegram

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Enabled  bool    `yaml:"enabled"`
	BotToken string  `yaml:"bot_token"`
	AdminIDs []int64 `yaml:"admin_ids"`
}

// LoadConfig reads the bot configuration from a yaml file. A missing file is
// reported as-is so the caller can treat it as "bot disabled".
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) isAdmin(id int64) bool {
	for _, adminID := range c.AdminIDs {
		if adminID == id {
			return true
		}
	}
	return false
}
