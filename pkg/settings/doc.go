// Package settings persists the saved state of the rollup form.
//
// A Document is an opaque JSON object. Stores load and save it as a whole:
//
//	store := settings.NewFileStore("form_data.json")
//	doc, err := store.Load(ctx) // empty Document when nothing was saved yet
//	doc["CustomerName_0"] = "Acme"
//	err = store.Save(ctx, doc)
//
// ObjectStore keeps the document in a file.Storage backend (local directory
// or S3) instead of a fixed path.
//
// Backups are the document plus two metadata keys, backup_timestamp and
// backup_version. StripBackupMeta removes them again before a restore.
package settings
