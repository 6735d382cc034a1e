package core

import "time"

// BackupType tags why a snapshot was taken.
type BackupType string

const (
	BackupEdit     BackupType = "edit_backup"
	BackupDeletion BackupType = "deletion_backup"
)

// BackupRecord is an immutable snapshot of a note taken before a destructive
// mutation. The ledger owns these exclusively; nothing restores them
// automatically.
type BackupRecord struct {
	BackupID  string     `json:"backupId"`
	Note      Note       `json:"note"`
	Timestamp time.Time  `json:"timestamp"`
	Type      BackupType `json:"type"`
}
