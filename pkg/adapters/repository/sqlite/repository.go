package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	// A single local connection serializes writers instead of failing with SQLITE_BUSY
	if driverName == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		original_url TEXT NOT NULL,
		short_code TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		click_count INTEGER NOT NULL DEFAULT 0,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		link_id TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		country TEXT NOT NULL DEFAULT '',
		device_type TEXT NOT NULL DEFAULT '',
		referrer TEXT NOT NULL DEFAULT '',
		client JSON,
		FOREIGN KEY(link_id) REFERENCES links(id)
	);
	CREATE INDEX IF NOT EXISTS idx_events_link_id ON events(link_id, seq);
	`
	_, err := db.Exec(query)
	return err
}

const linkColumns = `id, original_url, short_code, title, description, click_count, is_active, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanLink(s scanner) (*domain.Link, error) {
	var l domain.Link
	var createdAt int64
	if err := s.Scan(&l.ID, &l.OriginalURL, &l.ShortCode, &l.Title, &l.Description, &l.ClickCount, &l.IsActive, &createdAt); err != nil {
		return nil, err
	}
	l.CreatedAt = time.Unix(0, createdAt).UTC()
	return &l, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, link *domain.Link) error {
	query := `INSERT INTO links (` + linkColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		link.ID, link.OriginalURL, link.ShortCode, link.Title, link.Description,
		link.ClickCount, link.IsActive, link.CreatedAt.UnixNano(),
	)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "constraint failed: links.short_code"):
			return domain.ErrDuplicateCode
		case strings.Contains(msg, "constraint failed: links.id"):
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) getOne(ctx context.Context, where string, arg any) (*domain.Link, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+linkColumns+` FROM links WHERE `+where, arg)
	link, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*domain.Link, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *SQLiteRepository) GetByShortCode(ctx context.Context, code string) (*domain.Link, error) {
	return r.getOne(ctx, "short_code = ?", code)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Link, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+linkColumns+` FROM links ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

func (r *SQLiteRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE links SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links`).Scan(&count)
	return count, err
}

func (r *SQLiteRepository) Append(ctx context.Context, event *domain.Event) error {
	clientJSON, err := json.Marshal(event.Client)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Link must exist and be active
	var active bool
	err = tx.QueryRowContext(ctx, `SELECT is_active FROM links WHERE id = ?`, event.LinkID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if !active {
		return domain.ErrLinkInactive
	}

	// 2. Insert Event Record
	queryEvent := `INSERT INTO events (id, link_id, created_at, country, device_type, referrer, client) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, queryEvent,
		event.ID, event.LinkID, event.Timestamp.UnixNano(),
		event.Country, event.DeviceType, event.Referrer, string(clientJSON),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	// 3. Increment Link Clicks Counter
	if _, err = tx.ExecContext(ctx, `UPDATE links SET click_count = click_count + 1 WHERE id = ?`, event.LinkID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) ListEvents(ctx context.Context, linkID string) ([]domain.Event, error) {
	query := `SELECT id, link_id, created_at, country, device_type, referrer, client FROM events`
	args := []any{}
	if linkID != "" {
		query += ` WHERE link_id = ?`
		args = append(args, linkID)
	}
	query += ` ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		var createdAt int64
		var clientJSON sql.NullString
		if err := rows.Scan(&e.ID, &e.LinkID, &createdAt, &e.Country, &e.DeviceType, &e.Referrer, &clientJSON); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(0, createdAt).UTC()
		if clientJSON.Valid && clientJSON.String != "" {
			if err := json.Unmarshal([]byte(clientJSON.String), &e.Client); err != nil {
				return nil, fmt.Errorf("decode client info of event %s: %w", e.ID, err)
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ensure interface compliance
var _ ports.Store = (*SQLiteRepository)(nil)
