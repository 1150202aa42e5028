package store

import (
	"database/sql"
	"fmt"

	"github.com/kekirawacc/kccweb/internal/model"
)

type ClubStore struct {
	db *sql.DB
}

func NewClubStore(db *sql.DB) *ClubStore {
	return &ClubStore{db: db}
}

func scanClub(scanner interface{ Scan(...any) error }) (*model.Club, error) {
	var c model.Club
	err := scanner.Scan(&c.ID, &c.Name, &c.Slug, &c.ShortName, &c.Category, &c.Description,
		&c.CoverImage, &c.LogoImage, &c.TeacherInCharge, &c.CommitteeMembers, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const clubCols = `id, name, slug, short_name, category, description, cover_image, logo_image, teacher_in_charge, committee_members, created_at, updated_at`

func (s *ClubStore) Create(c *model.Club) (*model.Club, error) {
	slug, err := uniqueSlug(s.db, "clubs", Slugify(c.Name), 0)
	if err != nil {
		return nil, err
	}
	result, err := s.db.Exec(
		`INSERT INTO clubs (name, slug, short_name, category, description, cover_image, logo_image, teacher_in_charge, committee_members)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, slug, c.ShortName, c.Category, c.Description, c.CoverImage, c.LogoImage, c.TeacherInCharge, c.CommitteeMembers,
	)
	if err != nil {
		return nil, fmt.Errorf("insert club: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ClubStore) GetByID(id int64) (*model.Club, error) {
	row := s.db.QueryRow(`SELECT `+clubCols+` FROM clubs WHERE id = ?`, id)
	c, err := scanClub(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}
	return c, nil
}

func (s *ClubStore) GetBySlug(slug string) (*model.Club, error) {
	row := s.db.QueryRow(`SELECT `+clubCols+` FROM clubs WHERE slug = ?`, slug)
	c, err := scanClub(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get club by slug: %w", err)
	}
	return c, nil
}

func (s *ClubStore) List() ([]model.Club, error) {
	rows, err := s.db.Query(`SELECT ` + clubCols + ` FROM clubs ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []model.Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		clubs = append(clubs, *c)
	}
	return clubs, rows.Err()
}

func (s *ClubStore) Update(id int64, c *model.Club) (*model.Club, error) {
	slug, err := uniqueSlug(s.db, "clubs", Slugify(c.Name), id)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`UPDATE clubs SET name = ?, slug = ?, short_name = ?, category = ?, description = ?,
		 cover_image = ?, logo_image = ?, teacher_in_charge = ?, committee_members = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c.Name, slug, c.ShortName, c.Category, c.Description, c.CoverImage, c.LogoImage,
		c.TeacherInCharge, c.CommitteeMembers, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update club: %w", err)
	}
	return s.GetByID(id)
}

func (s *ClubStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM clubs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	return nil
}
