package app

import (
	"fmt"
	"io"
	"os"

	"github.com/tturner/disgo/internal/config"
)

// RunConfigInit writes the default config file.
func RunConfigInit(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote default config to %s\n", path)
	return nil
}

// RunConfigShow prints the effective config: the file, or the built-in
// defaults, with defaults applied. TOML files are shown as TOML.
func RunConfigShow(w io.Writer, path string) error {
	cfg, err := loadConfig(CommonOptions{ConfigPath: path})
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg, config.FormatFor(path))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// RunConfigValidate loads path and reports whether it is valid.
func RunConfigValidate(w io.Writer, path string) error {
	cfg, err := config.LoadConfig(path, false)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s is valid: exercise %d, %s on port %d, %d emit profiles\n",
		path, cfg.Exercise.ExerciseID, cfg.Network.Mode, cfg.Network.Port, len(cfg.Emit))
	return nil
}
