package settings

import "time"

// Backup metadata keys.
const (
	BackupTimestampKey = "backup_timestamp"
	BackupVersionKey   = "backup_version"
	BackupVersion      = "1.0"
)

// Backup returns a copy of doc stamped with the backup metadata.
func Backup(doc Document, now time.Time) Document {
	out := doc.Clone()
	out[BackupTimestampKey] = now.Format(time.RFC3339)
	out[BackupVersionKey] = BackupVersion
	return out
}

// StripBackupMeta returns a copy of doc without the backup metadata keys.
func StripBackupMeta(doc Document) Document {
	out := doc.Clone()
	delete(out, BackupTimestampKey)
	delete(out, BackupVersionKey)
	return out
}

// BackupFilename names a backup download.
func BackupFilename(now time.Time) string {
	return "rollup_backup_" + now.Format("20060102_150405") + ".json"
}
