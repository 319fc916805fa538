package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cardgen/internal/differ"
	"cardgen/internal/project"
)

// workersEnv overrides [run].jobs; --jobs still wins.
const workersEnv = "CARDGEN_WORKERS"

// settings is the merged run configuration:
// flags > CARDGEN_WORKERS (jobs only) > cardgen.toml > defaults.
type settings struct {
	project.Config

	ConfigPath     string // пусто, если манифест не найден
	Filter         differ.Category
	Cache          bool
	Signatures     bool
	UI             progressMode
	Quiet          bool
	Timings        bool
	MaxDiagnostics int
}

// resolveSettings merges the manifest, the environment and the flags of cmd.
// wd is where the manifest search starts.
func resolveSettings(cmd *cobra.Command, getenv func(string) string, wd string) (*settings, error) {
	flags := cmd.Flags()
	s := &settings{Config: project.DefaultConfig()}

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	var manifest *project.Manifest
	if configPath != "" {
		manifest, err = project.LoadManifestFile(configPath)
	} else {
		manifest, _, err = project.LoadManifest(wd)
	}
	if err != nil {
		return nil, err
	}
	if manifest != nil {
		s.Config = manifest.Config
		s.ConfigPath = manifest.Path
		s.Run.Old = manifest.Resolve(s.Run.Old)
		s.Run.New = manifest.Resolve(s.Run.New)
		s.Run.Out = manifest.Resolve(s.Run.Out)
	}

	if v := strings.TrimSpace(getenv(workersEnv)); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 0 {
			return nil, &project.ConfigError{Path: workersEnv, Err: fmt.Errorf("want a non-negative integer, got %q", v)}
		}
		s.Run.Jobs = n
	}

	for name, dst := range map[string]*string{
		"old":     &s.Run.Old,
		"new":     &s.Run.New,
		"out":     &s.Run.Out,
		"old-tag": &s.Run.OldTag,
		"new-tag": &s.Run.NewTag,
	} {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, err
		}
	}
	if flags.Changed("jobs") {
		if s.Run.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, err
		}
		if s.Run.Jobs < 0 {
			return nil, usageError(fmt.Errorf("--jobs must be >= 0, got %d", s.Run.Jobs))
		}
	}

	var missing []string
	for _, p := range []struct{ flag, val string }{{"--old", s.Run.Old}, {"--new", s.Run.New}, {"--out", s.Run.Out}} {
		if p.val == "" {
			missing = append(missing, p.flag)
		}
	}
	if len(missing) > 0 {
		return nil, usageError(fmt.Errorf("missing required %s", strings.Join(missing, ", ")))
	}
	if err := s.Validate(); err != nil {
		return nil, &project.ConfigError{Path: "flags", Err: err}
	}

	filter, err := flags.GetString("filter")
	if err != nil {
		return nil, err
	}
	if filter != "" {
		if s.Filter, err = differ.ParseCategory(filter); err != nil {
			return nil, usageError(fmt.Errorf("--filter: %w", err))
		}
	}

	if s.Cache, err = flags.GetBool("cache"); err != nil {
		return nil, err
	}
	noSig, err := flags.GetBool("no-signatures")
	if err != nil {
		return nil, err
	}
	s.Signatures = !noSig

	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return nil, err
	}
	if s.UI, err = parseProgressMode(uiFlag); err != nil {
		return nil, usageError(err)
	}

	pf := cmd.Root().PersistentFlags()
	if s.Quiet, err = pf.GetBool("quiet"); err != nil {
		return nil, err
	}
	if s.Timings, err = pf.GetBool("timings"); err != nil {
		return nil, err
	}
	if s.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return nil, err
	}
	return s, nil
}
