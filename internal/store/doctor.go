package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"deskfolio/internal/theme"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Add appends an issue.
func (r *DoctorReport) Add(level DoctorIssueLevel, code, path, format string, args ...any) {
	r.Issues = append(r.Issues, DoctorIssue{
		Level:   level,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	})
}

var ErrDoctorIssuesFound = errors.New("doctor: issues found")

// DoctorConfig checks config.json and the prefs database. The returned config is
// nil when the file could not be parsed.
func DoctorConfig(ctx context.Context) (*Config, DoctorReport) {
	var r DoctorReport

	path, err := ConfigPath()
	if err != nil {
		r.Add(DoctorIssueLevelError, "config_dir", "", "resolve config dir: %v", err)
		return nil, r.orEmpty()
	}

	cfg, err := LoadConfig()
	if err != nil {
		r.Add(DoctorIssueLevelError, "config_invalid", path, "%v", err)
		return nil, r.orEmpty()
	}

	if _, ok := theme.ParseMode(cfg.Theme); !ok {
		r.Add(DoctorIssueLevelError, "config_theme", path, "theme %q is not light|dark|auto", cfg.Theme)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Sidebar)) {
	case "", "switch", "jump":
	default:
		r.Add(DoctorIssueLevelError, "config_sidebar", path, "sidebar %q is not switch|jump", cfg.Sidebar)
	}
	if cfg.CellWidth < 0 || cfg.CellHeight < 0 {
		r.Add(DoctorIssueLevelError, "config_cell_size", path, "cell size %dx%d must not be negative", cfg.CellWidth, cfg.CellHeight)
	} else if (cfg.CellWidth == 0) != (cfg.CellHeight == 0) {
		r.Add(DoctorIssueLevelWarn, "config_cell_size", path, "only one of cellWidth/cellHeight is set; the other uses the default")
	}
	if c := strings.TrimSpace(cfg.Catalog); c != "" {
		if _, err := os.Stat(c); err != nil {
			r.Add(DoctorIssueLevelError, "config_catalog", path, "catalog %s: %v", c, err)
		}
	}

	prefs, err := DefaultPrefs()
	if err == nil {
		_, err = prefs.Theme(ctx)
	}
	if err != nil {
		r.Add(DoctorIssueLevelWarn, "prefs_unavailable", prefs.path(), "theme toggles will not persist: %v", err)
	}

	return cfg, r.orEmpty()
}

func (r DoctorReport) orEmpty() DoctorReport {
	if r.Issues == nil {
		r.Issues = []DoctorIssue{}
	}
	return r
}
