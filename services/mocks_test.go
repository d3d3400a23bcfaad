package services

import (
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/orenolabs/academy-board/models"
)

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) ListPinned(board string) ([]models.Post, error) {
	args := m.Called(board)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *mockPostRepo) ListPage(board, keyword string, excludePinned bool, offset, limit int) ([]models.Post, int64, error) {
	args := m.Called(board, keyword, excludePinned, offset, limit)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) Get(board string, id uint) (*models.Post, error) {
	args := m.Called(board, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockPostRepo) Create(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *mockPostRepo) UpdateFields(id uint, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *mockPostRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) ListByPost(postID uint) ([]models.Comment, error) {
	args := m.Called(postID)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

func (m *mockCommentRepo) Get(id uint) (*models.Comment, error) {
	args := m.Called(id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentRepo) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *mockCommentRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockCommentRepo) DeleteByPost(postID uint) error {
	args := m.Called(postID)
	return args.Error(0)
}

type mockAttachmentRepo struct {
	mock.Mock
}

func (m *mockAttachmentRepo) ListByPost(postID uint) ([]models.Attachment, error) {
	args := m.Called(postID)
	atts, _ := args.Get(0).([]models.Attachment)
	return atts, args.Error(1)
}

func (m *mockAttachmentRepo) Create(att *models.Attachment) error {
	args := m.Called(att)
	return args.Error(0)
}

func (m *mockAttachmentRepo) DeleteByPost(postID uint) error {
	args := m.Called(postID)
	return args.Error(0)
}

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Upload(key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(key, r, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockBlobStore) Remove(keys []string) error {
	args := m.Called(keys)
	return args.Error(0)
}
