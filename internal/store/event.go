package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kekirawacc/kccweb/internal/model"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

func scanEvent(scanner interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	err := scanner.Scan(&e.ID, &e.Title, &e.Slug, &e.Description, &e.Location, &e.StartDate, &e.EndDate,
		&e.CoverImage, &e.Category, &e.Status, &e.PublishedAt, &e.ClubID, &e.CreatedByID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

const eventCols = `id, title, slug, description, location, start_date, end_date, cover_image, category, status, published_at, club_id, created_by_id, created_at, updated_at`

func (s *EventStore) Create(e *model.Event) (*model.Event, error) {
	slug, err := uniqueSlug(s.db, "events", Slugify(e.Title), 0)
	if err != nil {
		return nil, err
	}
	publishedAt := e.PublishedAt
	if e.Status == model.StatusPublished && publishedAt == nil {
		now := time.Now().UTC()
		publishedAt = &now
	}
	result, err := s.db.Exec(
		`INSERT INTO events (title, slug, description, location, start_date, end_date, cover_image, category, status, published_at, club_id, created_by_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, slug, e.Description, e.Location, e.StartDate, e.EndDate, e.CoverImage, e.Category, e.Status, publishedAt, e.ClubID, e.CreatedByID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *EventStore) GetByID(id int64) (*model.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *EventStore) GetBySlug(slug string) (*model.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM events WHERE slug = ?`, slug)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return e, nil
}

// List returns events by start date, soonest first. createdByID 0 means all.
func (s *EventStore) List(createdByID int64) ([]model.Event, error) {
	query := `SELECT ` + eventCols + ` FROM events`
	var args []any
	if createdByID != 0 {
		query += ` WHERE created_by_id = ?`
		args = append(args, createdByID)
	}
	query += ` ORDER BY start_date DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *EventStore) Update(id int64, e *model.Event) (*model.Event, error) {
	slug, err := uniqueSlug(s.db, "events", Slugify(e.Title), id)
	if err != nil {
		return nil, err
	}
	publishedAt := e.PublishedAt
	if e.Status == model.StatusPublished && publishedAt == nil {
		now := time.Now().UTC()
		publishedAt = &now
	}
	_, err = s.db.Exec(
		`UPDATE events SET title = ?, slug = ?, description = ?, location = ?, start_date = ?, end_date = ?,
		 cover_image = ?, category = ?, status = ?, published_at = ?, club_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		e.Title, slug, e.Description, e.Location, e.StartDate, e.EndDate, e.CoverImage, e.Category, e.Status, publishedAt, e.ClubID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return s.GetByID(id)
}

func (s *EventStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
