// Package backup creates and restores timestamped snapshots of the store
// file. Snapshots are plain file copies kept next to the store under a
// backups directory, pruned to the most recent few.
package backup

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mkarlsen/tally/internal/constants"
)

const (
	backupDirName    = "backups"
	backupTimeLayout = "20060102-150405"
)

// Info describes a single backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for one store path. It works for both
// store kinds; SQLite backups are additionally integrity-checked.
type Manager struct {
	storePath string
	backupDir string
}

func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), backupDirName),
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the store file and prunes old backups. The caller
// must ensure no live SQLite handle is writing while the copy runs.
func (m *Manager) CreateBackup() (string, error) {
	if _, err := os.Stat(m.storePath); err != nil {
		return "", fmt.Errorf("store file not found at %s: %w", m.storePath, err)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", constants.AppName, time.Now().Format(backupTimeLayout), filepath.Ext(m.storePath))
	dest := filepath.Join(m.backupDir, name)

	if err := copyFile(m.storePath, dest); err != nil {
		return "", fmt.Errorf("failed to copy store file: %w", err)
	}

	if filepath.Ext(dest) == ".db" {
		if err := verifySQLite(dest); err != nil {
			_ = os.Remove(dest)
			return "", fmt.Errorf("backup failed integrity check: %w", err)
		}
	}

	if err := m.pruneBackups(); err != nil {
		return dest, fmt.Errorf("backup created but pruning failed: %w", err)
	}

	return dest, nil
}

// ListBackups returns available backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), constants.AppName+"-") {
			continue
		}

		ts, ok := parseBackupTimestamp(entry.Name())
		if !ok {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat backup %s: %w", entry.Name(), err)
		}

		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// RestoreBackup replaces the store file with the given backup. The current
// store file, if present, is kept aside as <store>.pre-restore until the
// copy succeeds.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup not found at %s: %w", backupPath, err)
	}

	if filepath.Ext(backupPath) == ".db" {
		if err := verifySQLite(backupPath); err != nil {
			return fmt.Errorf("refusing to restore corrupt backup: %w", err)
		}
	}

	aside := m.storePath + ".pre-restore"
	hadStore := false
	if _, err := os.Stat(m.storePath); err == nil {
		hadStore = true
		if err := os.Rename(m.storePath, aside); err != nil {
			return fmt.Errorf("failed to set aside current store: %w", err)
		}
	}

	if err := copyFile(backupPath, m.storePath); err != nil {
		if hadStore {
			_ = os.Rename(aside, m.storePath)
		}
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	if hadStore {
		_ = os.Remove(aside)
	}
	return nil
}

func (m *Manager) pruneBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

func parseBackupTimestamp(name string) (time.Time, bool) {
	name = strings.TrimPrefix(name, constants.AppName+"-")
	name = strings.TrimSuffix(name, filepath.Ext(name))
	ts, err := time.ParseInLocation(backupTimeLayout, name, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func verifySQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check reported: %s", result)
	}
	return nil
}
