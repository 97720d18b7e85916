package model

type Setting struct {
	Id    uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"unique"`
	Value string `json:"value"`
}

type User struct {
	Id       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// StatusRecord is one persisted summary of a published status snapshot,
// written periodically by the history cron job.
type StatusRecord struct {
	ID       uint  `json:"id" gorm:"primaryKey;autoIncrement"`
	DateTime int64 `json:"dateTime" gorm:"index"`
	Total    int   `json:"total"`
	Running  int   `json:"running"`
	Active   int   `json:"active"` // live instances, matched or not
	Degraded bool  `json:"degraded"`
}
