// Package generator builds a zip of draft emails from a form submission.
//
// Each Generate call works in its own directory below the configured work
// root, so concurrent requests never see each other's files. The directory
// is removed before Generate returns; the archive is handed back in memory.
//
//	gen := generator.New(generator.Config{
//		TemplatePath: "template.html",
//		WorkDir:      "/tmp/rollup",
//	}, generator.WithLogger(log))
//
//	batch, err := gen.Generate(ctx, r.PostForm)
//	// batch.ArchiveName == "Rollup_Messages_01-15-2024.zip"
//
// Preview returns the same draft headers without reading the template or
// touching disk. WithRetention additionally copies every archive into a
// file.Storage.
package generator
