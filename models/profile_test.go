package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShownNameFallback(t *testing.T) {
	assert.Equal(t, "nick", (&Profile{DisplayName: "nick", Name: "Nicholas"}).ShownName())
	assert.Equal(t, "Nicholas", (&Profile{Name: "Nicholas"}).ShownName())
	assert.Equal(t, "unknown", (&Profile{}).ShownName())
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&Profile{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Profile{Role: RoleUser}).IsAdmin())
	assert.False(t, (&Profile{}).IsAdmin())
}

func TestValidBoard(t *testing.T) {
	assert.True(t, ValidBoard(BoardFAQ))
	assert.True(t, ValidBoard(BoardReview))
	assert.False(t, ValidBoard(""))
	assert.False(t, ValidBoard("announcements"))
}
