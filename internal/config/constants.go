package config

const (
	// Configuration file paths
	ConfigPathCatalog = "configs/catalog.json"

	// Reminder sweep defaults
	DefaultSweepInterval = "15m"
	DefaultSweepBudget   = "5m"

	// DefaultLogDir is where session log files are written
	DefaultLogDir = "logs"
)
