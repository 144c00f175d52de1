package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagOutput  = flag.String("o", "", "Output directory for converted files")
	flagDefs    = flag.String("defs", "", "Path to MeshDefs.lua")
	flagInfo    = flag.Bool("info", false, "Write a per-model info summary file")
	flagNoRep   = flag.Bool("no-report", false, "Skip the batch summary report file")
	flagLogFile = flag.String("log-file", "", "Write logs to this file with rotation")
	flagWrite   = flag.Bool("write-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// WriteConfigRequested reports whether -write-config was given.
func WriteConfigRequested() bool {
	return *flagWrite
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOutput != "" {
		cfg.Output.Dir = *flagOutput
	}
	if *flagDefs != "" {
		cfg.Defs.MeshDefs = *flagDefs
	}
	if *flagInfo {
		cfg.Output.WriteInfo = true
	}
	if *flagNoRep {
		cfg.Output.WriteReport = false
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
