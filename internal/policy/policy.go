// Package policy implements the post lifecycle state machine and the
// access-control predicates evaluated before every read of non-public
// content and before every mutation.
//
// The predicates are pure functions over an explicit identity value and a
// freshly loaded post. They are the authoritative server-side check; any
// conditional rendering a client does is advisory only.
package policy

import "github.com/quillpress/quillpress/internal/model"

// Action is a requested operation on a post.
type Action string

const (
	ActionRead    Action = "read"
	ActionPublish Action = "publish"
	ActionDelete  Action = "delete"
)

// Owns reports whether the identity owns the post. Ownership is keyed on
// the author's email and fails closed: an anonymous caller owns nothing,
// and a post whose owner record is gone belongs to nobody.
func Owns(identity model.Identity, post *model.Post) bool {
	if identity.IsAnonymous() {
		return false
	}
	email := post.AuthorEmail()
	if email == "" {
		return false
	}
	return email == identity.Email
}

// CanRead reports whether the identity may read the post. Published posts
// are public; drafts are visible only to their owner.
func CanRead(identity model.Identity, post *model.Post) bool {
	if post.Published {
		return true
	}
	return Owns(identity, post)
}

// CanPublish reports whether the identity may publish the post. Only the
// owner may publish, and only from the draft state; published is a
// forward-only flag with no reverse transition.
func CanPublish(identity model.Identity, post *model.Post) bool {
	return post.State() == model.PostStateDraft && Owns(identity, post)
}

// CanDelete reports whether the identity may delete the post. The owner
// may delete from either live state.
func CanDelete(identity model.Identity, post *model.Post) bool {
	return Owns(identity, post)
}

// CanCreate reports whether the identity may create a post. Any
// authenticated user may; the creator becomes the owner.
func CanCreate(identity model.Identity) bool {
	return !identity.IsAnonymous()
}

// Allows evaluates the predicate for the given action.
func Allows(identity model.Identity, post *model.Post, action Action) bool {
	switch action {
	case ActionRead:
		return CanRead(identity, post)
	case ActionPublish:
		return CanPublish(identity, post)
	case ActionDelete:
		return CanDelete(identity, post)
	default:
		return false
	}
}

// NextState returns the state the post enters when the action is applied.
// Publish moves a draft to published; delete is terminal from both live
// states. Read does not transition.
func NextState(post *model.Post, action Action) model.PostState {
	switch action {
	case ActionPublish:
		return model.PostStatePublished
	case ActionDelete:
		return model.PostStateDeleted
	default:
		return post.State()
	}
}
