package store

import (
	"testing"

	"github.com/kekirawacc/kccweb/internal/database"
	"github.com/kekirawacc/kccweb/internal/model"
)

func setupNewsTestDB(t *testing.T) (*NewsStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewNewsStore(db), NewUserStore(db)
}

func TestNewsCreateDraft(t *testing.T) {
	ns, us := setupNewsTestDB(t)

	u, _ := us.Create("Alice Perera", "alice@example.com", "pw", model.RoleAuthor, nil)
	p, err := ns.Create(&model.NewsPost{Title: "Term Opens Monday", AuthorID: u.ID})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if p.Slug != "term-opens-monday" {
		t.Errorf("slug = %q, want %q", p.Slug, "term-opens-monday")
	}
	if p.Status != model.StatusDraft {
		t.Errorf("status = %q, want DRAFT", p.Status)
	}
	if p.PublishedAt != nil {
		t.Error("draft must not carry a publish timestamp")
	}
}

func TestNewsPublishStampsPublishedAt(t *testing.T) {
	ns, us := setupNewsTestDB(t)

	u, _ := us.Create("Alice Perera", "alice@example.com", "pw", model.RoleAuthor, nil)
	p, err := ns.Create(&model.NewsPost{
		Title:    "Sports Meet Results",
		Status:   model.StatusPublished,
		AuthorID: u.ID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if p.PublishedAt == nil {
		t.Fatal("published post must carry a publish timestamp")
	}

	// Republishing keeps the original timestamp
	updated, err := ns.Update(p.ID, &model.NewsPost{
		Title:       "Sports Meet Results",
		Status:      model.StatusPublished,
		PublishedAt: p.PublishedAt,
	})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(*p.PublishedAt) {
		t.Errorf("published_at changed on update: %v -> %v", p.PublishedAt, updated.PublishedAt)
	}
}

func TestNewsListByAuthor(t *testing.T) {
	ns, us := setupNewsTestDB(t)

	alice, _ := us.Create("Alice Perera", "alice@example.com", "pw", model.RoleAuthor, nil)
	bob, _ := us.Create("Bob Silva", "bob@example.com", "pw", model.RoleAuthor, nil)

	ns.Create(&model.NewsPost{Title: "Post A", AuthorID: alice.ID})
	ns.Create(&model.NewsPost{Title: "Post B", AuthorID: bob.ID})
	ns.Create(&model.NewsPost{Title: "Post C", AuthorID: alice.ID})

	all, err := ns.List(0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all posts = %d, want 3", len(all))
	}

	mine, err := ns.List(alice.ID)
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("alice's posts = %d, want 2", len(mine))
	}
	for _, p := range mine {
		if p.AuthorID != alice.ID {
			t.Errorf("post %q has author %d, want %d", p.Title, p.AuthorID, alice.ID)
		}
	}
}
