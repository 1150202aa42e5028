package model

import "time"

// PublishStatus is the visibility state of news posts and events.
type PublishStatus string

const (
	StatusDraft     PublishStatus = "DRAFT"
	StatusPublished PublishStatus = "PUBLISHED"
)

type Club struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	ShortName        string    `json:"short_name"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	CoverImage       string    `json:"cover_image"`
	LogoImage        string    `json:"logo_image"`
	TeacherInCharge  string    `json:"teacher_in_charge"`
	CommitteeMembers string    `json:"committee_members"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type NewsPost struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Excerpt      string        `json:"excerpt"`
	MetaKeywords string        `json:"meta_keywords"`
	Content      string        `json:"content"`
	CoverImage   string        `json:"cover_image"`
	Status       PublishStatus `json:"status"`
	PublishedAt  *time.Time    `json:"published_at"`
	AuthorID     int64         `json:"author_id"`
	ClubID       *int64        `json:"club_id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type Event struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	CoverImage  string        `json:"cover_image"`
	Category    string        `json:"category"`
	Status      PublishStatus `json:"status"`
	PublishedAt *time.Time    `json:"published_at"`
	ClubID      *int64        `json:"club_id"`
	CreatedByID int64         `json:"created_by_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Alumni struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	GradYear     int       `json:"grad_year"`
	PhotoURL     string    `json:"photo_url"`
	Headline     string    `json:"headline"`
	Bio          string    `json:"bio"`
	Achievements string    `json:"achievements"`
	IsFeatured   bool      `json:"is_featured"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StaffMember struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	PhotoURL      string    `json:"photo_url"`
	RoleTitle     string    `json:"role_title"`
	Department    string    `json:"department"`
	IsInAdminPage bool      `json:"is_in_admin_page"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
