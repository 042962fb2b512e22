package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output != "table" {
		t.Errorf("Default Output = %q, want %q", cfg.Output, "table")
	}
	if cfg.BasePath != ".gitgov" {
		t.Errorf("Default BasePath = %q, want %q", cfg.BasePath, ".gitgov")
	}
	if cfg.Verbose {
		t.Error("Default Verbose = true, want false")
	}
	if cfg.Store.Extension != ".json" {
		t.Errorf("Default Store.Extension = %q, want %q", cfg.Store.Extension, ".json")
	}
	if !cfg.Store.CreateIfMissing {
		t.Error("Default Store.CreateIfMissing = false, want true")
	}
	if cfg.Store.Serializer != "json" {
		t.Errorf("Default Store.Serializer = %q, want %q", cfg.Store.Serializer, "json")
	}
	if cfg.Workflow.Methodology != "" {
		t.Errorf("Default Workflow.Methodology = %q, want empty (use built-in)", cfg.Workflow.Methodology)
	}
	if cfg.Project.ProtocolVersion != 1 {
		t.Errorf("Default Project.ProtocolVersion = %d, want 1", cfg.Project.ProtocolVersion)
	}
}

func TestMerge(t *testing.T) {
	dst := Default()
	src := &Config{
		Output:   "json",
		BasePath: "/custom/path",
	}

	result := merge(dst, src)

	if result.Output != "json" {
		t.Errorf("merge Output = %q, want %q", result.Output, "json")
	}
	if result.BasePath != "/custom/path" {
		t.Errorf("merge BasePath = %q, want %q", result.BasePath, "/custom/path")
	}
	// Defaults should be preserved when not overridden.
	if result.Store.Extension != ".json" {
		t.Errorf("merge preserved Store.Extension = %q, want %q", result.Store.Extension, ".json")
	}
}

func TestMerge_ProjectFields(t *testing.T) {
	dst := Default()
	src := &Config{
		Project: ProjectConfig{
			Name:        "GitGovernance Core",
			RootCycleID: "1700000000-cycle-root",
		},
		Workflow: WorkflowConfig{Methodology: "/etc/gitgov/methodology.yaml"},
	}

	result := merge(dst, src)
	if result.Project.Name != "GitGovernance Core" {
		t.Errorf("merge Project.Name = %q", result.Project.Name)
	}
	if result.Project.RootCycleID != "1700000000-cycle-root" {
		t.Errorf("merge Project.RootCycleID = %q", result.Project.RootCycleID)
	}
	if result.Workflow.Methodology != "/etc/gitgov/methodology.yaml" {
		t.Errorf("merge Workflow.Methodology = %q", result.Workflow.Methodology)
	}
	// ProtocolVersion default preserved since src leaves it at the zero value.
	if result.Project.ProtocolVersion != 1 {
		t.Errorf("merge Project.ProtocolVersion = %d, want 1", result.Project.ProtocolVersion)
	}
}

func withEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		orig, had := os.LookupEnv(k)
		if err := os.Setenv(k, v); err != nil {
			t.Fatalf("Setenv(%s): %v", k, err)
		}
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(k, orig)
			} else {
				_ = os.Unsetenv(k)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	withEnv(t, map[string]string{
		"GITGOV_OUTPUT":       "json",
		"GITGOV_VERBOSE":      "true",
		"GITGOV_BASE_PATH":    "/tmp/gitgov",
		"GITGOV_PROJECT_NAME": "Env Project",
	})

	cfg := applyEnv(Default())
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	if cfg.BasePath != "/tmp/gitgov" {
		t.Errorf("BasePath = %q, want /tmp/gitgov", cfg.BasePath)
	}
	if cfg.Project.Name != "Env Project" {
		t.Errorf("Project.Name = %q, want Env Project", cfg.Project.Name)
	}
}

func TestApplyEnv_LeavesUnsetFieldsAlone(t *testing.T) {
	for _, k := range []string{"GITGOV_OUTPUT", "GITGOV_VERBOSE", "GITGOV_BASE_PATH"} {
		orig, had := os.LookupEnv(k)
		_ = os.Unsetenv(k)
		if had {
			t.Cleanup(func() { _ = os.Setenv(k, orig) })
		}
	}

	cfg := applyEnv(Default())
	if cfg.Output != defaultOutput || cfg.BasePath != defaultBasePath || cfg.Verbose {
		t.Errorf("applyEnv mutated config with no env set: %+v", cfg)
	}
}

func writeYAML(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_ProjectOverridesHome(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()

	if err := os.MkdirAll(filepath.Join(home, ".gitgov"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeYAML(t, filepath.Join(home, ".gitgov", "config.yaml"), "output: yaml\nbase_path: /home/path\n")
	writeYAML(t, filepath.Join(project, "config.yaml"), "output: json\n")

	origHome, hadHome := os.LookupEnv("HOME")
	_ = os.Setenv("HOME", home)
	t.Cleanup(func() {
		if hadHome {
			_ = os.Setenv("HOME", origHome)
		} else {
			_ = os.Unsetenv("HOME")
		}
	})
	withEnv(t, map[string]string{"GITGOV_CONFIG": filepath.Join(project, "config.yaml")})

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want project's json to win over home's yaml", cfg.Output)
	}
	if cfg.BasePath != "/home/path" {
		t.Errorf("BasePath = %q, want home's value since project didn't set it", cfg.BasePath)
	}
}

func TestResolve_PrecedenceChain(t *testing.T) {
	withEnv(t, map[string]string{"GITGOV_OUTPUT": "yaml"})
	rc := Resolve("json", "", false)
	if rc.Output.Value != "json" || rc.Output.Source != SourceFlag {
		t.Errorf("Output = %+v, want flag json to win over env yaml", rc.Output)
	}
}

func TestResolve_FallsBackToDefault(t *testing.T) {
	for _, k := range []string{"GITGOV_OUTPUT", "GITGOV_BASE_PATH", "GITGOV_VERBOSE"} {
		_ = os.Unsetenv(k)
	}
	rc := Resolve("", "", false)
	if rc.Output.Value != defaultOutput || rc.Output.Source != SourceDefault {
		t.Errorf("Output = %+v, want default", rc.Output)
	}
	if rc.BasePath.Value != defaultBasePath || rc.BasePath.Source != SourceDefault {
		t.Errorf("BasePath = %+v, want default", rc.BasePath)
	}
}
