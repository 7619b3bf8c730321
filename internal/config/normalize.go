package config

// normalize expands and absolutizes every path field so the rest of the
// program never sees a relative or ~-prefixed path.
func (c *Config) normalize() error {
	sourceDir, err := expandPath(c.Paths.SourceDir)
	if err != nil {
		return err
	}
	archiveDir, err := expandPath(c.Paths.ArchiveDir)
	if err != nil {
		return err
	}
	logDir, err := expandPath(c.Paths.LogDir)
	if err != nil {
		return err
	}

	c.Paths.SourceDir = sourceDir
	c.Paths.ArchiveDir = archiveDir
	c.Paths.LogDir = logDir
	return nil
}
