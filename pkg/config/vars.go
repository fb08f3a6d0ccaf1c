package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gngenomes"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gngenomes by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gngenomes by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// TaxdumpDir returns the directory for the taxonomy dump and its
// extracted files.
// Returns ~/.cache/gngenomes/taxdump by default.
func TaxdumpDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "taxdump")
}

// CatalogDir returns the directory for assembly catalogs.
// Returns ~/.cache/gngenomes/catalogs by default.
func CatalogDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "catalogs")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gngenomes/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gngenomes/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
