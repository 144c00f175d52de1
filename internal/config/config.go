// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Defs    DefsConfig    `yaml:"defs"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir         string `yaml:"dir"`          // Destination directory for OBJ files
	WriteInfo   bool   `yaml:"write_info"`   // Write a per-model _info.txt summary
	WriteReport bool   `yaml:"write_report"` // Write a batch summary report file
}

// DefsConfig holds external definitions-table settings.
type DefsConfig struct {
	// Path to MeshDefs.lua; empty means look next to the inputs and in
	// the working directory.
	MeshDefs string `yaml:"mesh_defs"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:         ".",
			WriteInfo:   false,
			WriteReport: true,
		},
		Defs: DefsConfig{
			MeshDefs: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
