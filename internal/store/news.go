package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kekirawacc/kccweb/internal/model"
)

type NewsStore struct {
	db *sql.DB
}

func NewNewsStore(db *sql.DB) *NewsStore {
	return &NewsStore{db: db}
}

func scanNewsPost(scanner interface{ Scan(...any) error }) (*model.NewsPost, error) {
	var p model.NewsPost
	err := scanner.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.MetaKeywords, &p.Content,
		&p.CoverImage, &p.Status, &p.PublishedAt, &p.AuthorID, &p.ClubID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const newsCols = `id, title, slug, excerpt, meta_keywords, content, cover_image, status, published_at, author_id, club_id, created_at, updated_at`

func (s *NewsStore) Create(p *model.NewsPost) (*model.NewsPost, error) {
	slug, err := uniqueSlug(s.db, "news_posts", Slugify(p.Title), 0)
	if err != nil {
		return nil, err
	}
	publishedAt := p.PublishedAt
	if p.Status == model.StatusPublished && publishedAt == nil {
		now := time.Now().UTC()
		publishedAt = &now
	}
	result, err := s.db.Exec(
		`INSERT INTO news_posts (title, slug, excerpt, meta_keywords, content, cover_image, status, published_at, author_id, club_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, slug, p.Excerpt, p.MetaKeywords, p.Content, p.CoverImage, p.Status, publishedAt, p.AuthorID, p.ClubID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert news post: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *NewsStore) GetByID(id int64) (*model.NewsPost, error) {
	row := s.db.QueryRow(`SELECT `+newsCols+` FROM news_posts WHERE id = ?`, id)
	p, err := scanNewsPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get news post: %w", err)
	}
	return p, nil
}

func (s *NewsStore) GetBySlug(slug string) (*model.NewsPost, error) {
	row := s.db.QueryRow(`SELECT `+newsCols+` FROM news_posts WHERE slug = ?`, slug)
	p, err := scanNewsPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get news post by slug: %w", err)
	}
	return p, nil
}

// List returns posts newest first. authorID 0 means all authors.
func (s *NewsStore) List(authorID int64) ([]model.NewsPost, error) {
	query := `SELECT ` + newsCols + ` FROM news_posts`
	var args []any
	if authorID != 0 {
		query += ` WHERE author_id = ?`
		args = append(args, authorID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list news posts: %w", err)
	}
	defer rows.Close()

	var posts []model.NewsPost
	for rows.Next() {
		p, err := scanNewsPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (s *NewsStore) Update(id int64, p *model.NewsPost) (*model.NewsPost, error) {
	slug, err := uniqueSlug(s.db, "news_posts", Slugify(p.Title), id)
	if err != nil {
		return nil, err
	}
	publishedAt := p.PublishedAt
	if p.Status == model.StatusPublished && publishedAt == nil {
		now := time.Now().UTC()
		publishedAt = &now
	}
	_, err = s.db.Exec(
		`UPDATE news_posts SET title = ?, slug = ?, excerpt = ?, meta_keywords = ?, content = ?,
		 cover_image = ?, status = ?, published_at = ?, club_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.Title, slug, p.Excerpt, p.MetaKeywords, p.Content, p.CoverImage, p.Status, publishedAt, p.ClubID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update news post: %w", err)
	}
	return s.GetByID(id)
}

func (s *NewsStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM news_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete news post: %w", err)
	}
	return nil
}
