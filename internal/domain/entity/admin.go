package entity

import "time"

// AdminSession marks a user as allowed to upload catalogs and wipe state.
type AdminSession struct {
	UserID       int64
	IsAdmin      bool
	LoginTime    time.Time
	LastActivity time.Time
}

// AdminAction is one audit-log entry for an administrative operation.
type AdminAction struct {
	ID        string
	UserID    int64
	Action    string // "login", "upload_catalog", "clean_all"
	Details   string
	Timestamp time.Time
}
