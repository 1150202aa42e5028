package store

import (
	"database/sql"
	"fmt"

	"github.com/kekirawacc/kccweb/internal/model"
)

type AlumniStore struct {
	db *sql.DB
}

func NewAlumniStore(db *sql.DB) *AlumniStore {
	return &AlumniStore{db: db}
}

func scanAlumni(scanner interface{ Scan(...any) error }) (*model.Alumni, error) {
	var a model.Alumni
	err := scanner.Scan(&a.ID, &a.Name, &a.Slug, &a.GradYear, &a.PhotoURL, &a.Headline,
		&a.Bio, &a.Achievements, &a.IsFeatured, &a.Category, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const alumniCols = `id, name, slug, grad_year, photo_url, headline, bio, achievements, is_featured, category, created_at, updated_at`

func (s *AlumniStore) Create(a *model.Alumni) (*model.Alumni, error) {
	slug, err := uniqueSlug(s.db, "alumni", Slugify(a.Name), 0)
	if err != nil {
		return nil, err
	}
	result, err := s.db.Exec(
		`INSERT INTO alumni (name, slug, grad_year, photo_url, headline, bio, achievements, is_featured, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, slug, a.GradYear, a.PhotoURL, a.Headline, a.Bio, a.Achievements, a.IsFeatured, a.Category,
	)
	if err != nil {
		return nil, fmt.Errorf("insert alumni: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *AlumniStore) GetByID(id int64) (*model.Alumni, error) {
	row := s.db.QueryRow(`SELECT `+alumniCols+` FROM alumni WHERE id = ?`, id)
	a, err := scanAlumni(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get alumni: %w", err)
	}
	return a, nil
}

func (s *AlumniStore) List() ([]model.Alumni, error) {
	rows, err := s.db.Query(`SELECT ` + alumniCols + ` FROM alumni ORDER BY grad_year DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list alumni: %w", err)
	}
	defer rows.Close()

	var alumni []model.Alumni
	for rows.Next() {
		a, err := scanAlumni(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alumni: %w", err)
		}
		alumni = append(alumni, *a)
	}
	return alumni, rows.Err()
}

func (s *AlumniStore) Update(id int64, a *model.Alumni) (*model.Alumni, error) {
	slug, err := uniqueSlug(s.db, "alumni", Slugify(a.Name), id)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`UPDATE alumni SET name = ?, slug = ?, grad_year = ?, photo_url = ?, headline = ?,
		 bio = ?, achievements = ?, is_featured = ?, category = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		a.Name, slug, a.GradYear, a.PhotoURL, a.Headline, a.Bio, a.Achievements, a.IsFeatured, a.Category, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update alumni: %w", err)
	}
	return s.GetByID(id)
}

func (s *AlumniStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM alumni WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete alumni: %w", err)
	}
	return nil
}
