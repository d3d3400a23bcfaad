package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orenolabs/academy-board/models"
)

var (
	testAdmin = &models.Profile{ID: "admin-1", Role: models.RoleAdmin}
	testOwner = &models.Profile{ID: "owner-1", Role: models.RoleUser}
	testOther = &models.Profile{ID: "other-1", Role: models.RoleUser}
)

func TestEvaluateRuleTable(t *testing.T) {
	cases := []struct {
		name    string
		actor   *models.Profile
		board   string
		action  Action
		ownerID string
		allowed bool
	}{
		{"anonymous create review", nil, models.BoardReview, ActionCreate, "", false},
		{"anonymous comment", nil, models.BoardReview, ActionCommentCreate, "", false},
		{"anonymous delete own-looking post", nil, models.BoardReview, ActionDelete, "", false},

		{"user creates review", testOther, models.BoardReview, ActionCreate, "", true},
		{"admin creates review", testAdmin, models.BoardReview, ActionCreate, "", true},
		{"user creates faq", testOther, models.BoardFAQ, ActionCreate, "", false},
		{"admin creates faq", testAdmin, models.BoardFAQ, ActionCreate, "", true},

		{"owner edits review", testOwner, models.BoardReview, ActionUpdate, "owner-1", true},
		{"non-owner edits review", testOther, models.BoardReview, ActionUpdate, "owner-1", false},
		{"admin edits someone's review", testAdmin, models.BoardReview, ActionUpdate, "owner-1", false},
		{"admin edits faq", testAdmin, models.BoardFAQ, ActionUpdate, "owner-1", true},
		{"user edits faq", testOther, models.BoardFAQ, ActionUpdate, "other-1", false},

		{"owner deletes review", testOwner, models.BoardReview, ActionDelete, "owner-1", true},
		{"admin deletes someone's review", testAdmin, models.BoardReview, ActionDelete, "owner-1", true},
		{"non-owner deletes review", testOther, models.BoardReview, ActionDelete, "owner-1", false},
		{"admin deletes faq", testAdmin, models.BoardFAQ, ActionDelete, "owner-1", true},
		{"user deletes faq", testOther, models.BoardFAQ, ActionDelete, "other-1", false},

		{"admin pins review", testAdmin, models.BoardReview, ActionPinToggle, "owner-1", true},
		{"user pins review", testOther, models.BoardReview, ActionPinToggle, "owner-1", false},
		{"owner pins own review", testOwner, models.BoardReview, ActionPinToggle, "owner-1", false},
		{"admin pins faq", testAdmin, models.BoardFAQ, ActionPinToggle, "owner-1", false},

		{"user comments on review", testOther, models.BoardReview, ActionCommentCreate, "", true},
		{"user comments on faq", testOther, models.BoardFAQ, ActionCommentCreate, "", true},

		{"author deletes own comment", testOwner, models.BoardReview, ActionCommentDelete, "owner-1", true},
		{"other deletes comment", testOther, models.BoardReview, ActionCommentDelete, "owner-1", false},
		// Post deletion has an admin override, comment deletion does not.
		{"admin deletes someone's comment", testAdmin, models.BoardReview, ActionCommentDelete, "owner-1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Evaluate(tc.actor, tc.board, tc.action, tc.ownerID)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrForbidden), "expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestEvaluateIsPureOnDeny(t *testing.T) {
	actor := &models.Profile{ID: "u-1", Role: models.RoleUser}

	first := Evaluate(actor, models.BoardFAQ, ActionCreate, "")
	second := Evaluate(actor, models.BoardFAQ, ActionCreate, "")

	assert.True(t, errors.Is(first, ErrForbidden))
	assert.Equal(t, first.Error(), second.Error())
	assert.Equal(t, models.RoleUser, actor.Role)
}
