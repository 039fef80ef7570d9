// Package runner scans many source files concurrently, carrying each
// documentation comment through extraction, normalization, tokenization
// and tree building.
package runner

import (
	"slices"

	"github.com/spf13/afero"

	"github.com/yaklabco/doclex/pkg/config"
)

// Options controls multi-file scanning behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) considered
	// source files. Defaults to config.DefaultExtensions.
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Fs is the filesystem files are discovered on and read from.
	// Defaults to the OS filesystem.
	Fs afero.Fs
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{
		Paths:  paths,
		Config: cfg,
	}
	if cfg != nil {
		opts.Extensions = slices.Clone(cfg.Extensions)
		opts.ExcludeGlobs = slices.Clone(cfg.Ignore)
		opts.Jobs = cfg.Jobs
	}
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveFs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
