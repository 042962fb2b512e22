// Package config provides configuration management for GitGovernance.
// Configuration is loaded from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (GITGOV_*)
// 3. Project config (.gitgov/config.yaml in cwd)
// 4. Home config (~/.gitgov/config.yaml)
// 5. Defaults
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all GitGovernance configuration.
type Config struct {
	// Output controls the default output format (table, jsonl, markdown).
	Output string `yaml:"output" json:"output"`

	// BasePath is the project's .gitgov directory (default: .gitgov).
	BasePath string `yaml:"base_path" json:"base_path"`

	// Verbose enables verbose output.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Store settings
	Store StoreConfig `yaml:"store" json:"store"`

	// Workflow settings
	Workflow WorkflowConfig `yaml:"workflow" json:"workflow"`

	// Project settings
	Project ProjectConfig `yaml:"project" json:"project"`
}

// StoreConfig controls how record stores are constructed.
type StoreConfig struct {
	// Extension is the file extension record files are written with.
	// Default: ".json"
	Extension string `yaml:"extension" json:"extension"`

	// CreateIfMissing creates BasePath's record directories on first use
	// instead of requiring them to already exist.
	CreateIfMissing bool `yaml:"create_if_missing" json:"create_if_missing"`

	// Serializer selects the on-disk record encoding: "json" (default) or
	// "yaml". Checksums are always computed over canonical JSON regardless
	// of which serializer is used to persist the file.
	Serializer string `yaml:"serializer" json:"serializer"`

	// DeepClone enables defensive deep-cloning of values returned by an
	// in-memory store, trading a JSON round-trip per Get/Put for immunity
	// to callers mutating a returned record in place. Irrelevant to the
	// filesystem backend, which already round-trips through disk.
	DeepClone bool `yaml:"deep_clone" json:"deep_clone"`
}

// WorkflowConfig points at the methodology document governing task
// transitions.
type WorkflowConfig struct {
	// Methodology is the path to a methodology YAML file. Empty means fall
	// back to the built-in default methodology.
	Methodology string `yaml:"methodology" json:"methodology"`
}

// ProjectConfig identifies the project and the protocol it speaks.
type ProjectConfig struct {
	// Name is the project's display name.
	Name string `yaml:"name" json:"name"`

	// RootCycleID is the id of the cycle every top-level cycle nests under,
	// if the project uses one.
	RootCycleID string `yaml:"root_cycle_id" json:"root_cycle_id"`

	// ProtocolVersion pins the envelope protocol version new records are
	// stamped with.
	ProtocolVersion int `yaml:"protocol_version" json:"protocol_version"`
}

// Default config values (used in resolution and validation).
const (
	defaultOutput          = "table"
	defaultBasePath        = ".gitgov"
	defaultExtension       = ".json"
	defaultSerializer      = "json"
	defaultProtocolVersion = 1
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output:   defaultOutput,
		BasePath: defaultBasePath,
		Verbose:  false,
		Store: StoreConfig{
			Extension:       defaultExtension,
			CreateIfMissing: true,
			Serializer:      defaultSerializer,
			DeepClone:       true,
		},
		Workflow: WorkflowConfig{
			Methodology: "",
		},
		Project: ProjectConfig{
			ProtocolVersion: defaultProtocolVersion,
		},
	}
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	homeConfig, _ := loadFromPath(homeConfigPath())
	if homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	projectConfig, _ := loadFromPath(projectConfigPath())
	if projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	cfg = applyEnv(cfg)

	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gitgov", "config.yaml")
}

// projectConfigPath returns the project config path.
func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("GITGOV_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".gitgov", "config.yaml")
}

// loadFromPath loads config from a YAML file.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("GITGOV_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("GITGOV_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv("GITGOV_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("GITGOV_STORE_EXTENSION"); v != "" {
		cfg.Store.Extension = v
	}
	if v := os.Getenv("GITGOV_STORE_SERIALIZER"); v != "" {
		cfg.Store.Serializer = v
	}
	if v := os.Getenv("GITGOV_WORKFLOW_METHODOLOGY"); v != "" {
		cfg.Workflow.Methodology = v
	}
	if v := os.Getenv("GITGOV_PROJECT_NAME"); v != "" {
		cfg.Project.Name = v
	}
	if v := os.Getenv("GITGOV_PROJECT_ROOT_CYCLE_ID"); v != "" {
		cfg.Project.RootCycleID = v
	}
	return cfg
}

// merge merges src into dst, with src values taking precedence.
func merge(dst, src *Config) *Config {
	if src.Output != "" {
		dst.Output = src.Output
	}
	if src.BasePath != "" {
		dst.BasePath = src.BasePath
	}
	if src.Verbose {
		dst.Verbose = true
	}
	if src.Store.Extension != "" {
		dst.Store.Extension = src.Store.Extension
	}
	if src.Store.Serializer != "" {
		dst.Store.Serializer = src.Store.Serializer
	}
	if src.Store.CreateIfMissing {
		dst.Store.CreateIfMissing = true
	}
	if src.Store.DeepClone {
		dst.Store.DeepClone = true
	}
	if src.Workflow.Methodology != "" {
		dst.Workflow.Methodology = src.Workflow.Methodology
	}
	if src.Project.Name != "" {
		dst.Project.Name = src.Project.Name
	}
	if src.Project.RootCycleID != "" {
		dst.Project.RootCycleID = src.Project.RootCycleID
	}
	if src.Project.ProtocolVersion != 0 {
		dst.Project.ProtocolVersion = src.Project.ProtocolVersion
	}
	return dst
}

// Source represents where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceHome    Source = "~/.gitgov/config.yaml"
	SourceProject Source = ".gitgov/config.yaml"
	SourceEnv     Source = "environment"
	SourceFlag    Source = "flag"
)

// resolved pairs a value with the precedence tier it was resolved from, so
// a diagnostics command can show the user where each setting came from.
type resolved struct {
	Value  interface{} `json:"value"`
	Source Source      `json:"source"`
}

// getEnvString returns the value and whether the env var was set.
func getEnvString(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

// resolveStringField resolves a string through the precedence chain.
func resolveStringField(home, project, env, flag, def string) resolved {
	result := resolved{Value: def, Source: SourceDefault}
	if home != "" {
		result = resolved{Value: home, Source: SourceHome}
	}
	if project != "" {
		result = resolved{Value: project, Source: SourceProject}
	}
	if env != "" {
		result = resolved{Value: env, Source: SourceEnv}
	}
	if flag != "" {
		result = resolved{Value: flag, Source: SourceFlag}
	}
	return result
}

// ResolvedConfig shows config values with their sources.
type ResolvedConfig struct {
	Output             resolved `json:"output"`
	BasePath           resolved `json:"base_path"`
	Verbose            resolved `json:"verbose"`
	StoreExtension     resolved `json:"store_extension"`
	StoreSerializer    resolved `json:"store_serializer"`
	WorkflowMethodology resolved `json:"workflow_methodology"`
	ProjectName        resolved `json:"project_name"`
}

// Resolve returns configuration with source tracking.
// Uses precedence chain: flags > env > project > home > defaults.
func Resolve(flagOutput, flagBasePath string, flagVerbose bool) *ResolvedConfig {
	homeConfig, _ := loadFromPath(homeConfigPath())
	projectConfig, _ := loadFromPath(projectConfigPath())

	var homeOutput, homeBasePath, homeExt, homeSer, homeMethodology, homeProjectName string
	var homeVerbose bool
	if homeConfig != nil {
		homeOutput = homeConfig.Output
		homeBasePath = homeConfig.BasePath
		homeVerbose = homeConfig.Verbose
		homeExt = homeConfig.Store.Extension
		homeSer = homeConfig.Store.Serializer
		homeMethodology = homeConfig.Workflow.Methodology
		homeProjectName = homeConfig.Project.Name
	}

	var projectOutput, projectBasePath, projectExt, projectSer, projectMethodology, projectProjectName string
	var projectVerbose bool
	if projectConfig != nil {
		projectOutput = projectConfig.Output
		projectBasePath = projectConfig.BasePath
		projectVerbose = projectConfig.Verbose
		projectExt = projectConfig.Store.Extension
		projectSer = projectConfig.Store.Serializer
		projectMethodology = projectConfig.Workflow.Methodology
		projectProjectName = projectConfig.Project.Name
	}

	envOutput, _ := getEnvString("GITGOV_OUTPUT")
	envBasePath, _ := getEnvString("GITGOV_BASE_PATH")
	envVerboseRaw, envVerboseSet := getEnvString("GITGOV_VERBOSE")
	envVerbose := envVerboseSet && (envVerboseRaw == "true" || envVerboseRaw == "1")
	envExt, _ := getEnvString("GITGOV_STORE_EXTENSION")
	envSer, _ := getEnvString("GITGOV_STORE_SERIALIZER")
	envMethodology, _ := getEnvString("GITGOV_WORKFLOW_METHODOLOGY")
	envProjectName, _ := getEnvString("GITGOV_PROJECT_NAME")

	rc := &ResolvedConfig{
		Output:              resolveStringField(homeOutput, projectOutput, envOutput, flagOutput, defaultOutput),
		BasePath:            resolveStringField(homeBasePath, projectBasePath, envBasePath, flagBasePath, defaultBasePath),
		Verbose:             resolved{Value: false, Source: SourceDefault},
		StoreExtension:      resolveStringField(homeExt, projectExt, envExt, "", defaultExtension),
		StoreSerializer:     resolveStringField(homeSer, projectSer, envSer, "", defaultSerializer),
		WorkflowMethodology: resolveStringField(homeMethodology, projectMethodology, envMethodology, "", ""),
		ProjectName:         resolveStringField(homeProjectName, projectProjectName, envProjectName, "", ""),
	}

	if homeVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceHome}
	}
	if projectVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceProject}
	}
	if envVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceEnv}
	}
	if flagVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceFlag}
	}

	return rc
}
