package database

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

var _ SettingsRepository = (*SettingsRepositoryImpl)(nil)

// SettingsRepositoryImpl stores settings as a key/value table.
type SettingsRepositoryImpl struct {
	db *DB
}

func NewSettingsRepository(db *DB) *SettingsRepositoryImpl {
	return &SettingsRepositoryImpl{db: db}
}

func (r *SettingsRepositoryImpl) LoadSettings() (*StoredSettings, error) {
	rows, err := r.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	defer rows.Close()

	settings := &StoredSettings{}
	var legacyFeedURL string

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan settings row: %w", err)
		}

		switch key {
		case settingFeedServerURL:
			settings.FeedServerURL = value
		case settingGistURLLegacy:
			legacyFeedURL = value
		case settingLLMEndpoint:
			settings.LLMEndpoint = value
		case settingLLMAPIKey:
			settings.LLMAPIKey = value
		case settingLLMModel:
			settings.LLMModel = value
		case settingLLMModels:
			var models []string
			if err := json.Unmarshal([]byte(value), &models); err != nil {
				slog.Warn("Ignoring malformed stored model list", "error", err)
				continue
			}
			settings.LLMModels = models
		case settingTheme:
			settings.Theme = value
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings rows: %w", err)
	}

	if settings.FeedServerURL == "" {
		settings.FeedServerURL = legacyFeedURL
	}

	return settings, nil
}

func (r *SettingsRepositoryImpl) SetFeedServerURL(url string) error {
	return r.upsert(settingFeedServerURL, url)
}

func (r *SettingsRepositoryImpl) SetLLMEndpoint(endpoint string) error {
	return r.upsert(settingLLMEndpoint, endpoint)
}

func (r *SettingsRepositoryImpl) SetLLMAPIKey(apiKey string) error {
	return r.upsert(settingLLMAPIKey, apiKey)
}

func (r *SettingsRepositoryImpl) SetLLMModel(model string) error {
	return r.upsert(settingLLMModel, model)
}

func (r *SettingsRepositoryImpl) SetLLMModels(models []string) error {
	value, err := json.Marshal(models)
	if err != nil {
		return fmt.Errorf("failed to encode model list: %w", err)
	}
	return r.upsert(settingLLMModels, string(value))
}

func (r *SettingsRepositoryImpl) SetTheme(theme string) error {
	return r.upsert(settingTheme, theme)
}

func (r *SettingsRepositoryImpl) upsert(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}
