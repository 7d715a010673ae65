package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/scbizu/umbreon/app/feed"
)

var _ ItemRepository = (*ItemRepositoryImpl)(nil)

// ItemRepositoryImpl persists the feed item cache as a full-replace
// snapshot of the last successful sync.
type ItemRepositoryImpl struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepositoryImpl {
	return &ItemRepositoryImpl{db: db}
}

func (r *ItemRepositoryImpl) LoadAll() ([]feed.Item, error) {
	rows, err := r.db.Query(`
		SELECT id, title, summary, full_content, summarized, source,
		       published_at, published_ts, link, author, avatar_url, tags
		FROM feeds
		ORDER BY published_ts DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed items: %w", err)
	}
	defer rows.Close()

	var items []feed.Item
	for rows.Next() {
		var (
			item       feed.Item
			source     string
			summarized int64
			avatarURL  sql.NullString
			tags       sql.NullString
		)
		err := rows.Scan(&item.ID, &item.Title, &item.Summary, &item.FullContent,
			&summarized, &source, &item.PublishedAt, &item.PublishedTS,
			&item.Link, &item.Author, &avatarURL, &tags)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed item row: %w", err)
		}

		item.Summarized = summarized != 0
		item.Source = feed.SourceFromValue(source)
		item.AvatarURL = avatarURL.String
		item.Tags = splitTags(tags.String)

		// Re-derive the display date so redisplay stays deterministic
		// even for rows written before a rendering change.
		item.PublishedAt = feed.FormatDateUTC8(item.PublishedTS)

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed item rows: %w", err)
	}

	return items, nil
}

func (r *ItemRepositoryImpl) ReplaceAll(items []feed.Item) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM feeds"); err != nil {
		return fmt.Errorf("failed to clear feeds: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO feeds (
			id, title, summary, full_content, summarized, source,
			published_at, published_ts, link, author, avatar_url, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		summarized := 0
		if item.Summarized {
			summarized = 1
		}
		avatarURL := sql.NullString{String: item.AvatarURL, Valid: item.AvatarURL != ""}

		_, err := stmt.Exec(item.ID, item.Title, item.Summary, item.FullContent,
			summarized, string(item.Source), item.PublishedAt, item.PublishedTS,
			item.Link, item.Author, avatarURL, strings.Join(item.Tags, ","))
		if err != nil {
			return fmt.Errorf("failed to insert feed item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feeds: %w", err)
	}

	return nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
