package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LeagueDataDirs lists the per-league directories created under Paths.Data.
var LeagueDataDirs = []string{"nba", "nhl", "mlb", "nfl", "ufc"}

// Paths holds the file-system layout of the backend. All paths are absolute.
type Paths struct {
	Root       string
	Logs       string
	Data       string
	Migrations string
}

// ResolvePaths builds the layout below root. An empty root means the working directory.
func ResolvePaths(root string) (Paths, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Paths{}, fmt.Errorf("작업 디렉터리 확인 실패: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, fmt.Errorf("루트 경로 변환 실패: %s: %w", root, err)
	}

	return Paths{
		Root:       abs,
		Logs:       filepath.Join(abs, "logs"),
		Data:       filepath.Join(abs, "data"),
		Migrations: filepath.Join(abs, "migrations", "versions"),
	}, nil
}

// LeagueData returns the data directory of a league, e.g. data/nba.
func (p Paths) LeagueData(league string) string {
	return filepath.Join(p.Data, strings.ToLower(league))
}

// LogFile resolves a log file name inside the log directory.
// Absolute names are returned unchanged.
func (p Paths) LogFile(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Logs, name)
}

// EnsureDirs creates the log, data and per-league data directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.Logs, p.Data}
	for _, league := range LeagueDataDirs {
		dirs = append(dirs, p.LeagueData(league))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("디렉터리 생성 실패: %s: %w", dir, err)
		}
	}
	return nil
}
