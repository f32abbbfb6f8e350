package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/docmineai/docmine/constants"
	"github.com/docmineai/docmine/internal/common"
)

// ScanStats summarizes one directory scan.
type ScanStats struct {
	Scanned   int
	Matched   int
	Oversized int
}

// Scan lists the supported files directly under root, grouped by
// format. Hidden files, subdirectories and files over maxFileSizeMB
// are skipped. A missing root is the fatal docs-dir error.
func Scan(root string, maxFileSizeMB int, logger *slog.Logger) (map[constants.Format][]string, ScanStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, ScanStats{}, fmt.Errorf("%w: %s", common.ErrDocsDirNotFound, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, ScanStats{}, fmt.Errorf("%w: %s", common.ErrDocsDirNotFound, root)
	}

	byFormat := map[constants.Format][]string{}
	var stats ScanStats

	for _, entry := range entries {
		stats.Scanned++
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		format, ok := constants.MapExtToFormat(filepath.Ext(entry.Name()))
		if !ok {
			continue
		}

		path := filepath.Join(root, entry.Name())
		if !validateFileSize(path, maxFileSizeMB, logger) {
			stats.Oversized++
			continue
		}

		byFormat[format] = append(byFormat[format], path)
		stats.Matched++
	}

	logger.Info("ingest.scan.ok", "root", root, "scanned", stats.Scanned, "matched", stats.Matched)
	for _, f := range constants.Formats {
		if n := len(byFormat[f]); n > 0 {
			logger.Info("ingest.scan.format", "format", f, "files", n)
		}
	}
	return byFormat, stats, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// validateFileSize checks a file against the configured size cap.
func validateFileSize(path string, maxSizeMB int, logger *slog.Logger) bool {
	st, err := os.Stat(path)
	if err != nil {
		logger.Warn("ingest.stat_failed", "path", path, "error", err)
		return false
	}
	sizeMB := float64(st.Size()) / (1024 * 1024)
	if sizeMB > float64(maxSizeMB) {
		logger.Warn("ingest.file_oversized",
			"path", path,
			"size_mb", fmt.Sprintf("%.1f", sizeMB),
			"limit_mb", maxSizeMB,
		)
		return false
	}
	return true
}
