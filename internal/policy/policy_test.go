package policy

import (
	"testing"

	"github.com/quillpress/quillpress/internal/model"
)

var (
	alice = model.Identity{Email: "alice@prisma.io", Name: "Alice"}
	bob   = model.Identity{Email: "bob@prisma.io", Name: "Bob"}
)

func draftBy(email string) *model.Post {
	return &model.Post{
		ID:        "post-1",
		Title:     "My draft",
		Published: false,
		Author:    &model.Author{Name: "Alice", Email: email},
	}
}

func publishedBy(email string) *model.Post {
	p := draftBy(email)
	p.Published = true
	return p
}

func orphanPost(published bool) *model.Post {
	return &model.Post{ID: "post-2", Title: "Orphan", Published: published}
}

func TestCanRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity model.Identity
		post     *model.Post
		want     bool
	}{
		{"anonymous_published", model.Anonymous, publishedBy(alice.Email), true},
		{"anonymous_draft", model.Anonymous, draftBy(alice.Email), false},
		{"owner_draft", alice, draftBy(alice.Email), true},
		{"non_owner_draft", bob, draftBy(alice.Email), false},
		{"non_owner_published", bob, publishedBy(alice.Email), true},
		{"orphan_published", model.Anonymous, orphanPost(true), true},
		{"orphan_draft_authenticated", alice, orphanPost(false), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanRead(test.identity, test.post); got != test.want {
				t.Errorf("CanRead = %v, want %v", got, test.want)
			}
		})
	}
}

// Anonymous readability must equal the published flag exactly.
func TestCanRead_AnonymousEqualsPublished(t *testing.T) {
	t.Parallel()

	posts := []*model.Post{
		draftBy(alice.Email),
		publishedBy(alice.Email),
		orphanPost(false),
		orphanPost(true),
	}

	for _, p := range posts {
		if got := CanRead(model.Anonymous, p); got != p.Published {
			t.Errorf("CanRead(Anonymous, %q) = %v, want %v", p.ID, got, p.Published)
		}
	}
}

func TestCanPublish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity model.Identity
		post     *model.Post
		want     bool
	}{
		{"owner_draft", alice, draftBy(alice.Email), true},
		{"owner_already_published", alice, publishedBy(alice.Email), false},
		{"non_owner_draft", bob, draftBy(alice.Email), false},
		{"anonymous_draft", model.Anonymous, draftBy(alice.Email), false},
		{"orphan_draft", alice, orphanPost(false), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanPublish(test.identity, test.post); got != test.want {
				t.Errorf("CanPublish = %v, want %v", got, test.want)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity model.Identity
		post     *model.Post
		want     bool
	}{
		{"owner_draft", alice, draftBy(alice.Email), true},
		{"owner_published", alice, publishedBy(alice.Email), true},
		{"non_owner_draft", bob, draftBy(alice.Email), false},
		{"non_owner_published", bob, publishedBy(alice.Email), false},
		{"anonymous", model.Anonymous, publishedBy(alice.Email), false},
		{"orphan", alice, orphanPost(true), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanDelete(test.identity, test.post); got != test.want {
				t.Errorf("CanDelete = %v, want %v", got, test.want)
			}
		})
	}
}

func TestCanCreate(t *testing.T) {
	t.Parallel()

	if CanCreate(model.Anonymous) {
		t.Error("anonymous callers must not create posts")
	}
	if !CanCreate(alice) {
		t.Error("authenticated callers may create posts")
	}
}

func TestOwns_FailsClosed(t *testing.T) {
	t.Parallel()

	// Missing owner record: nobody owns the post.
	if Owns(alice, orphanPost(false)) {
		t.Error("ownership must fail closed for a missing author")
	}

	// Anonymous never owns anything, even an empty-email author record.
	weird := &model.Post{ID: "post-3", Author: &model.Author{Name: "x", Email: ""}}
	if Owns(model.Anonymous, weird) {
		t.Error("anonymous must not match an empty author email")
	}
}

func TestAllows(t *testing.T) {
	t.Parallel()

	draft := draftBy(alice.Email)

	tests := []struct {
		name     string
		identity model.Identity
		action   Action
		want     bool
	}{
		{"read_owner", alice, ActionRead, true},
		{"read_other", bob, ActionRead, false},
		{"publish_owner", alice, ActionPublish, true},
		{"delete_owner", alice, ActionDelete, true},
		{"unknown_action", alice, Action("archive"), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Allows(test.identity, draft, test.action); got != test.want {
				t.Errorf("Allows(%s) = %v, want %v", test.action, got, test.want)
			}
		})
	}
}

func TestNextState(t *testing.T) {
	t.Parallel()

	draft := draftBy(alice.Email)
	published := publishedBy(alice.Email)

	if got := NextState(draft, ActionPublish); got != model.PostStatePublished {
		t.Errorf("publish from draft = %s, want %s", got, model.PostStatePublished)
	}
	if got := NextState(draft, ActionDelete); got != model.PostStateDeleted {
		t.Errorf("delete from draft = %s, want %s", got, model.PostStateDeleted)
	}
	if got := NextState(published, ActionDelete); got != model.PostStateDeleted {
		t.Errorf("delete from published = %s, want %s", got, model.PostStateDeleted)
	}
	if got := NextState(published, ActionRead); got != model.PostStatePublished {
		t.Errorf("read must not transition, got %s", got)
	}
}
