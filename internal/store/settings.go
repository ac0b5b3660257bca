package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// GetSetting returns one runtime setting.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("setting not found: %s", key)
		}
		return "", err
	}
	return value, nil
}

// GetSettingFloat returns one runtime setting parsed as a float. The
// second return reports whether the setting exists and parses.
func (s *Store) GetSettingFloat(key string) (float64, bool) {
	value, err := s.GetSetting(key)
	if err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SetSetting stores one runtime setting.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// SetSettingFloat stores one runtime setting from a float.
func (s *Store) SetSettingFloat(key string, value float64) error {
	return s.SetSetting(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// GetAllSettings returns every runtime setting.
func (s *Store) GetAllSettings() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	return settings, rows.Err()
}
