// Package iofs prepares the file system layout of gngenomes: config, cache
// and log directories and the default config.yaml.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gnsys"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates all directories used by gngenomes under homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.TaxdumpDir(homeDir),
		config.CatalogDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// touchDir creates dir with its parents. An existing directory is left
// as is.
func touchDir(dir string) error {
	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml unless the file exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
