package model

// TunnelConfig is the persisted declaration of one obfuscation tunnel. The
// diagnostic engine only ever reads these rows; start/stop is the job of the
// external supervisor.
type TunnelConfig struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	SectionID  string `json:"sectionId" gorm:"uniqueIndex:idx_tunnel_key;not null"` // stable config-section id
	Role       string `json:"role" gorm:"uniqueIndex:idx_tunnel_key;not null"`      // "client" or "server"
	Alias      string `json:"alias"`
	Enabled    bool   `json:"enabled"`
	LocalAddr  string `json:"localAddr"`
	RemoteAddr string `json:"remoteAddr"`
	RawMode    string `json:"rawMode"`    // "faketcp", "udp", "icmp"
	CipherMode string `json:"cipherMode"` // declared crypto mode tag
	Remark     string `json:"remark"`
}

func (t *TunnelConfig) TableName() string {
	return "tunnel_configs"
}

// Key is the composite identity used to match live instances against
// declared tunnels.
func (t *TunnelConfig) Key() string {
	return t.Role + "+" + t.SectionID
}
