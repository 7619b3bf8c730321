package config

const (
	defaultSourceDir       = "./images"
	defaultArchiveDir      = "./posted"
	defaultCaption         = "#photo #bot"
	defaultIntervalMinutes = 15
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:  defaultSourceDir,
			ArchiveDir: defaultArchiveDir,
		},
		Post: Post{
			Caption: defaultCaption,
		},
		Schedule: Schedule{
			IntervalMinutes: defaultIntervalMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
