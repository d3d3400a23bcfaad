package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orenolabs/academy-board/models"
	"github.com/orenolabs/academy-board/repository"
)

func newLifecycleFixture() (*Lifecycle, *mockPostRepo, *mockCommentRepo, *mockAttachmentRepo, *mockBlobStore) {
	posts := new(mockPostRepo)
	comments := new(mockCommentRepo)
	attachments := new(mockAttachmentRepo)
	blobs := new(mockBlobStore)
	return NewLifecycle(posts, comments, attachments, blobs, nil), posts, comments, attachments, blobs
}

func TestCreatePostValidationRunsBeforeStores(t *testing.T) {
	svc, posts, _, _, blobs := newLifecycleFixture()

	_, err := svc.CreatePost(testOwner, models.BoardReview, "   ", "body", nil)

	assert.True(t, errors.Is(err, ErrValidation))
	posts.AssertNotCalled(t, "Create")
	blobs.AssertNotCalled(t, "Upload")
}

func TestCreatePostAuthorizationRunsBeforeStores(t *testing.T) {
	svc, posts, _, _, blobs := newLifecycleFixture()

	_, err := svc.CreatePost(testOwner, models.BoardFAQ, "title", "body", nil)

	assert.True(t, errors.Is(err, ErrForbidden))
	posts.AssertNotCalled(t, "Create")
	blobs.AssertNotCalled(t, "Upload")
}

func TestCreatePostAttachmentCapsCheckedBeforeUpload(t *testing.T) {
	svc, posts, _, _, blobs := newLifecycleFixture()

	files := make([]AttachmentUpload, MaxAttachments+1)
	for i := range files {
		files[i] = AttachmentUpload{FileName: "a.png", Size: 10, Reader: strings.NewReader("x")}
	}
	_, err := svc.CreatePost(testOwner, models.BoardReview, "t", "c", files)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.CreatePost(testOwner, models.BoardReview, "t", "c", []AttachmentUpload{
		{FileName: "big.zip", Size: MaxAttachmentSize + 1, Reader: strings.NewReader("x")},
	})
	assert.True(t, errors.Is(err, ErrValidation))

	blobs.AssertNotCalled(t, "Upload")
	posts.AssertNotCalled(t, "Create")
}

func TestCreatePostAttachmentsOnlyOnReviewBoard(t *testing.T) {
	svc, posts, _, _, _ := newLifecycleFixture()

	_, err := svc.CreatePost(testAdmin, models.BoardFAQ, "t", "c", []AttachmentUpload{
		{FileName: "a.png", Size: 10, Reader: strings.NewReader("x")},
	})

	assert.True(t, errors.Is(err, ErrValidation))
	posts.AssertNotCalled(t, "Create")
}

func TestCreatePostUploadsAndRecordsAttachments(t *testing.T) {
	svc, posts, _, attachments, blobs := newLifecycleFixture()

	posts.On("Create", mock.AnythingOfType("*models.Post")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Post).ID = 42
	}).Return(nil)
	blobs.On("Upload", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "posts/42/") && strings.HasSuffix(key, ".png")
	}), mock.Anything, "image/png").Return("https://cdn.example.com/a.png", nil)
	attachments.On("Create", mock.AnythingOfType("*models.Attachment")).Return(nil)

	post, err := svc.CreatePost(testOwner, models.BoardReview, "t", "c", []AttachmentUpload{
		{FileName: "shot.png", Size: 10, ContentType: "image/png", Reader: strings.NewReader("x")},
	})
	require.NoError(t, err)

	require.Len(t, post.Attachments, 1)
	assert.Equal(t, "https://cdn.example.com/a.png", post.Attachments[0].FileURL)
	assert.Equal(t, "shot.png", post.Attachments[0].FileName)
	assert.NotEmpty(t, post.Attachments[0].StorageKey)
	posts.AssertExpectations(t)
	blobs.AssertExpectations(t)
	attachments.AssertExpectations(t)
}

func TestCreatePostUploadFailureAborts(t *testing.T) {
	svc, posts, _, attachments, blobs := newLifecycleFixture()

	posts.On("Create", mock.Anything).Return(nil)
	blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unreachable"))

	_, err := svc.CreatePost(testOwner, models.BoardReview, "t", "c", []AttachmentUpload{
		{FileName: "a.png", Size: 10, Reader: strings.NewReader("x")},
	})

	assert.Error(t, err)
	attachments.AssertNotCalled(t, "Create")
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	svc, posts, _, _, _ := newLifecycleFixture()
	posts.On("Get", models.BoardReview, uint(1)).
		Return(&models.Post{ID: 1, Board: models.BoardReview, UserID: "owner-1"}, nil)

	_, err := svc.UpdatePost(testOther, models.BoardReview, 1, "t", "c")
	assert.True(t, errors.Is(err, ErrForbidden))
	posts.AssertNotCalled(t, "UpdateFields")

	// Even an admin cannot edit someone else's review.
	_, err = svc.UpdatePost(testAdmin, models.BoardReview, 1, "t", "c")
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestUpdatePostSanitizesMarkup(t *testing.T) {
	svc, posts, _, _, _ := newLifecycleFixture()
	posts.On("Get", models.BoardReview, uint(1)).
		Return(&models.Post{ID: 1, Board: models.BoardReview, UserID: "owner-1"}, nil)
	posts.On("UpdateFields", uint(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
		return !strings.Contains(fields["content"].(string), "<script>")
	})).Return(nil)

	post, err := svc.UpdatePost(testOwner, models.BoardReview, 1, "title", `hello <script>alert(1)</script>`)
	require.NoError(t, err)

	assert.NotContains(t, post.Content, "<script>")
	posts.AssertExpectations(t)
}

func TestDeletePostCascadeOrder(t *testing.T) {
	svc, posts, comments, attachments, blobs := newLifecycleFixture()

	var order []string
	posts.On("Get", models.BoardReview, uint(9)).
		Return(&models.Post{ID: 9, Board: models.BoardReview, UserID: "owner-1"}, nil)
	attachments.On("ListByPost", uint(9)).
		Return([]models.Attachment{{ID: 1, PostID: 9, StorageKey: "posts/9/a.png"}}, nil)
	blobs.On("Remove", []string{"posts/9/a.png"}).Run(func(mock.Arguments) {
		order = append(order, "blobs")
	}).Return(nil)
	attachments.On("DeleteByPost", uint(9)).Run(func(mock.Arguments) {
		order = append(order, "attachments")
	}).Return(nil)
	comments.On("DeleteByPost", uint(9)).Run(func(mock.Arguments) {
		order = append(order, "comments")
	}).Return(nil)
	posts.On("Delete", uint(9)).Run(func(mock.Arguments) {
		order = append(order, "post")
	}).Return(nil)

	require.NoError(t, svc.DeletePost(testOwner, models.BoardReview, 9))
	assert.Equal(t, []string{"blobs", "attachments", "comments", "post"}, order)
}

func TestDeletePostBlobFailureDoesNotStopCascade(t *testing.T) {
	svc, posts, comments, attachments, blobs := newLifecycleFixture()

	posts.On("Get", models.BoardReview, uint(9)).
		Return(&models.Post{ID: 9, Board: models.BoardReview, UserID: "owner-1"}, nil)
	attachments.On("ListByPost", uint(9)).
		Return([]models.Attachment{{ID: 1, PostID: 9, StorageKey: "posts/9/a.png"}}, nil)
	blobs.On("Remove", mock.Anything).Return(errors.New("bucket unreachable"))
	attachments.On("DeleteByPost", uint(9)).Return(nil)
	comments.On("DeleteByPost", uint(9)).Return(nil)
	posts.On("Delete", uint(9)).Return(nil)

	assert.NoError(t, svc.DeletePost(testOwner, models.BoardReview, 9))
	posts.AssertExpectations(t)
}

func TestDeletePostRecordFailureAborts(t *testing.T) {
	svc, posts, comments, attachments, _ := newLifecycleFixture()

	posts.On("Get", models.BoardReview, uint(9)).
		Return(&models.Post{ID: 9, Board: models.BoardReview, UserID: "owner-1"}, nil)
	attachments.On("ListByPost", uint(9)).Return([]models.Attachment{}, nil)
	attachments.On("DeleteByPost", uint(9)).Return(nil)
	comments.On("DeleteByPost", uint(9)).Return(errors.New("deadlock"))

	assert.Error(t, svc.DeletePost(testOwner, models.BoardReview, 9))
	posts.AssertNotCalled(t, "Delete", uint(9))
}

func TestDeletePostMissing(t *testing.T) {
	svc, posts, _, _, _ := newLifecycleFixture()
	posts.On("Get", models.BoardReview, uint(404)).Return(nil, repository.ErrNotFound)

	err := svc.DeletePost(testOwner, models.BoardReview, 404)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTogglePinFlipsAndRestores(t *testing.T) {
	svc, posts, _, _, _ := newLifecycleFixture()

	state := false
	posts.On("Get", models.BoardReview, uint(3)).Return(&models.Post{ID: 3, Board: models.BoardReview, UserID: "owner-1", IsPinned: false}, nil).Once()
	posts.On("UpdateFields", uint(3), map[string]interface{}{"is_pinned": true}).Run(func(mock.Arguments) {
		state = true
	}).Return(nil).Once()
	posts.On("Get", models.BoardReview, uint(3)).Return(&models.Post{ID: 3, Board: models.BoardReview, UserID: "owner-1", IsPinned: true}, nil).Once()
	posts.On("UpdateFields", uint(3), map[string]interface{}{"is_pinned": false}).Run(func(mock.Arguments) {
		state = false
	}).Return(nil).Once()

	pinned, err := svc.TogglePin(testAdmin, 3)
	require.NoError(t, err)
	assert.True(t, pinned)

	pinned, err = svc.TogglePin(testAdmin, 3)
	require.NoError(t, err)
	assert.False(t, pinned)
	assert.False(t, state)
	posts.AssertExpectations(t)
}

func TestTogglePinRequiresAdmin(t *testing.T) {
	svc, posts, _, _, _ := newLifecycleFixture()
	posts.On("Get", models.BoardReview, uint(3)).
		Return(&models.Post{ID: 3, Board: models.BoardReview, UserID: "owner-1"}, nil)

	_, err := svc.TogglePin(testOwner, 3)
	assert.True(t, errors.Is(err, ErrForbidden))
	posts.AssertNotCalled(t, "UpdateFields")
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	svc, posts, comments, _, _ := newLifecycleFixture()
	posts.On("Get", models.BoardFAQ, uint(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.CreateComment(testOwner, models.BoardFAQ, 404, "hello")
	assert.True(t, errors.Is(err, ErrNotFound))
	comments.AssertNotCalled(t, "Create")
}

func TestCreateCommentAnyAuthenticatedUser(t *testing.T) {
	svc, posts, comments, _, _ := newLifecycleFixture()
	posts.On("Get", models.BoardFAQ, uint(1)).
		Return(&models.Post{ID: 1, Board: models.BoardFAQ, UserID: "admin-1"}, nil)
	comments.On("Create", mock.AnythingOfType("*models.Comment")).Return(nil)

	comment, err := svc.CreateComment(testOther, models.BoardFAQ, 1, "thanks")
	require.NoError(t, err)
	assert.Equal(t, "other-1", comment.UserID)
	assert.Equal(t, uint(1), comment.PostID)
}

func TestDeleteCommentAuthorOnlyNoAdminOverride(t *testing.T) {
	svc, _, comments, _, _ := newLifecycleFixture()
	comments.On("Get", uint(5)).Return(&models.Comment{ID: 5, UserID: "owner-1"}, nil)

	err := svc.DeleteComment(testAdmin, 5)
	assert.True(t, errors.Is(err, ErrForbidden))
	comments.AssertNotCalled(t, "Delete")

	comments.On("Delete", uint(5)).Return(nil)
	assert.NoError(t, svc.DeleteComment(testOwner, 5))
}
