package services

import "github.com/orenolabs/academy-board/models"

// Action enumerates everything a user can ask to do to board content.
type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionDelete
	ActionPinToggle
	ActionCommentCreate
	ActionCommentDelete
)

// Evaluate is the authorization decision for (actor, board, action, owner).
// It is pure: no side effects on allow or deny, and a denial is always a
// distinguishable ErrForbidden. ownerID is the author of the target post or
// comment; it is ignored for create actions.
//
// The full rule table, in precedence order:
//   - anonymous actors are denied everything
//   - FAQ create/update/delete: admin only
//   - review create: any authenticated user
//   - review update: owner only
//   - review delete: owner or admin
//   - pin toggle: admin only, review board only
//   - comment create: any authenticated user
//   - comment delete: comment author only (deliberately no admin override)
func Evaluate(actor *models.Profile, board string, action Action, ownerID string) error {
	if actor == nil {
		return forbiddenf("sign-in required")
	}

	switch action {
	case ActionCreate:
		if board == models.BoardFAQ && !actor.IsAdmin() {
			return forbiddenf("only admins may write FAQ posts")
		}
		return nil

	case ActionUpdate:
		if board == models.BoardFAQ {
			if !actor.IsAdmin() {
				return forbiddenf("only admins may edit FAQ posts")
			}
			return nil
		}
		if actor.ID != ownerID {
			return forbiddenf("you can only edit your own posts")
		}
		return nil

	case ActionDelete:
		if board == models.BoardFAQ {
			if !actor.IsAdmin() {
				return forbiddenf("only admins may delete FAQ posts")
			}
			return nil
		}
		if actor.ID == ownerID || actor.IsAdmin() {
			return nil
		}
		return forbiddenf("you can only delete your own posts")

	case ActionPinToggle:
		if board != models.BoardReview {
			return forbiddenf("pinning is only defined for the review board")
		}
		if !actor.IsAdmin() {
			return forbiddenf("only admins may pin posts")
		}
		return nil

	case ActionCommentCreate:
		return nil

	case ActionCommentDelete:
		if actor.ID != ownerID {
			return forbiddenf("you can only delete your own comments")
		}
		return nil
	}

	return forbiddenf("unknown action")
}
