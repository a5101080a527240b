package config

import "time"

const (
	DefaultInterval = 36 * time.Hour
	DefaultDaysAgo  = 7
	DefaultPattern  = "*.*"

	StrategyLastAccess = "last-access"
	StrategyModified   = "modified"
)

type Config struct {
	Service  ServiceConfig  `yaml:"service" toml:"service"`
	Schedule ScheduleConfig `yaml:"schedule" toml:"schedule"`
	Sweep    SweepConfig    `yaml:"sweep" toml:"sweep"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Status   StatusConfig   `yaml:"status" toml:"status"`
}

type ServiceConfig struct {
	Name        string `yaml:"name" toml:"name"`
	DisplayName string `yaml:"displayName" toml:"displayName"`
	Description string `yaml:"description" toml:"description"`
}

type ScheduleConfig struct {
	Interval   time.Duration `yaml:"interval" toml:"interval"`     // e.g. 36h
	RunOnStart bool          `yaml:"runOnStart" toml:"runOnStart"` // fire one run right after start
}

type SweepConfig struct {
	Root      string `yaml:"root" toml:"root"`           // empty = OS temp dir
	Pattern   string `yaml:"pattern" toml:"pattern"`     // doublestar glob, "*.*" = every file
	Recursive bool   `yaml:"recursive" toml:"recursive"`
	DaysAgo   int    `yaml:"daysAgo" toml:"daysAgo"`     // delete when age in days > daysAgo
	Strategy  string `yaml:"strategy" toml:"strategy"`   // "last-access", "modified"
	KeepRoot  bool   `yaml:"keepRoot" toml:"keepRoot"`
	DryRun    bool   `yaml:"dryRun" toml:"dryRun"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`   // "info", "debug", etc.
	Format     string `yaml:"format" toml:"format"` // "json", "console"
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB" toml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups" toml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays" toml:"maxAgeDays"`
	Compress   bool   `yaml:"compress" toml:"compress"`
}

type StatusConfig struct {
	Listen string `yaml:"listen" toml:"listen"` // empty disables the status server
}

// Default returns the configuration used for any key the file leaves out.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        "tempsweep",
			DisplayName: "Temp Folder Sweeper",
			Description: "Deletes stale files from the temp directory and prunes empty folders",
		},
		Schedule: ScheduleConfig{
			Interval:   DefaultInterval,
			RunOnStart: true,
		},
		Sweep: SweepConfig{
			Pattern:   DefaultPattern,
			Recursive: true,
			DaysAgo:   DefaultDaysAgo,
			Strategy:  StrategyLastAccess,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}
