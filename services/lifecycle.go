package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orenolabs/academy-board/models"
	"github.com/orenolabs/academy-board/repository"
	"github.com/orenolabs/academy-board/utils"
)

// Attachment limits, enforced before the first blob upload begins.
const (
	MaxAttachments    = 5
	MaxAttachmentSize = 50 << 20 // 50 MB per file
)

// BlobStore is the blob storage collaborator for attachments and avatars.
type BlobStore interface {
	Upload(key string, r io.Reader, contentType string) (string, error)
	Remove(keys []string) error
}

// AttachmentUpload carries one incoming file for a review post.
type AttachmentUpload struct {
	FileName    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// Lifecycle runs every board mutation: validation first, then authorization,
// then the store mutation chain in strict order.
type Lifecycle struct {
	posts       repository.PostRepository
	comments    repository.CommentRepository
	attachments repository.AttachmentRepository
	blobs       BlobStore
	log         *zap.SugaredLogger
}

// NewLifecycle wires the mutation service. A nil logger falls back to a no-op.
func NewLifecycle(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	attachments repository.AttachmentRepository,
	blobs BlobStore,
	log *zap.SugaredLogger,
) *Lifecycle {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Lifecycle{
		posts:       posts,
		comments:    comments,
		attachments: attachments,
		blobs:       blobs,
		log:         log,
	}
}

// CreatePost validates, authorizes, inserts the post, then uploads each
// attachment and records it, strictly in that order, aborting the remaining
// chain on the first failure.
func (s *Lifecycle) CreatePost(actor *models.Profile, board, title, content string, files []AttachmentUpload) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validationf("title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, validationf("content cannot be empty")
	}
	if len(files) > 0 && board != models.BoardReview {
		return nil, validationf("attachments are only supported on the review board")
	}
	if len(files) > MaxAttachments {
		return nil, validationf("at most %d attachments per post", MaxAttachments)
	}
	for _, f := range files {
		if f.Size > MaxAttachmentSize {
			return nil, validationf("file %s exceeds the 50MB limit", f.FileName)
		}
	}

	if err := Evaluate(actor, board, ActionCreate, ""); err != nil {
		return nil, err
	}

	post := &models.Post{
		Board:   board,
		UserID:  actor.ID,
		Title:   utils.Sanitize(title),
		Content: utils.Sanitize(content),
	}
	if err := s.posts.Create(post); err != nil {
		return nil, mapStoreErr("create post", err)
	}

	for _, f := range files {
		key := fmt.Sprintf("posts/%d/%s%s", post.ID, uuid.NewString(), filepath.Ext(f.FileName))
		url, err := s.blobs.Upload(key, f.Reader, f.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload attachment %s: %w", f.FileName, err)
		}
		att := &models.Attachment{
			PostID:     post.ID,
			FileURL:    url,
			FileName:   f.FileName,
			FileSize:   f.Size,
			FileType:   f.ContentType,
			StorageKey: key,
		}
		if err := s.attachments.Create(att); err != nil {
			return nil, mapStoreErr("create attachment record", err)
		}
		post.Attachments = append(post.Attachments, *att)
	}

	return post, nil
}

// UpdatePost edits title and content only; the author reference and creation
// timestamp are immutable.
func (s *Lifecycle) UpdatePost(actor *models.Profile, board string, id uint, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validationf("title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, validationf("content cannot be empty")
	}

	post, err := s.posts.Get(board, id)
	if err != nil {
		return nil, mapStoreErr("load post", err)
	}
	if err := Evaluate(actor, board, ActionUpdate, post.UserID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":   utils.Sanitize(title),
		"content": utils.Sanitize(content),
	}
	if err := s.posts.UpdateFields(id, fields); err != nil {
		return nil, mapStoreErr("update post", err)
	}

	post.Title = fields["title"].(string)
	post.Content = fields["content"].(string)
	return post, nil
}

// DeletePost cascades: blobs (best-effort), attachment records, comment
// records, then the post record. A blob failure is logged and does not stop
// the cascade; any record-deletion failure aborts the remaining chain.
func (s *Lifecycle) DeletePost(actor *models.Profile, board string, id uint) error {
	post, err := s.posts.Get(board, id)
	if err != nil {
		return mapStoreErr("load post", err)
	}
	if err := Evaluate(actor, board, ActionDelete, post.UserID); err != nil {
		return err
	}

	atts, err := s.attachments.ListByPost(id)
	if err != nil {
		return mapStoreErr("list attachments", err)
	}
	if len(atts) > 0 {
		keys := make([]string, 0, len(atts))
		for _, a := range atts {
			if a.StorageKey != "" {
				keys = append(keys, a.StorageKey)
			}
		}
		if err := s.blobs.Remove(keys); err != nil {
			s.log.Warnf("blob cleanup failed for post %d: %v", id, err)
		}
	}

	if err := s.attachments.DeleteByPost(id); err != nil {
		return mapStoreErr("delete attachment records", err)
	}
	if err := s.comments.DeleteByPost(id); err != nil {
		return mapStoreErr("delete comments", err)
	}
	if err := s.posts.Delete(id); err != nil {
		return mapStoreErr("delete post", err)
	}
	return nil
}

// TogglePin flips the pinned flag on a review post and returns the new state.
// Authorization is re-verified here regardless of any client-side confirmation.
func (s *Lifecycle) TogglePin(actor *models.Profile, id uint) (bool, error) {
	post, err := s.posts.Get(models.BoardReview, id)
	if err != nil {
		return false, mapStoreErr("load post", err)
	}
	if err := Evaluate(actor, models.BoardReview, ActionPinToggle, post.UserID); err != nil {
		return false, err
	}

	next := !post.IsPinned
	if err := s.posts.UpdateFields(id, map[string]interface{}{"is_pinned": next}); err != nil {
		return false, mapStoreErr("update pin state", err)
	}
	return next, nil
}

// CreateComment appends a comment to an existing post.
func (s *Lifecycle) CreateComment(actor *models.Profile, board string, postID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationf("content cannot be empty")
	}

	post, err := s.posts.Get(board, postID)
	if err != nil {
		return nil, mapStoreErr("load post", err)
	}
	if err := Evaluate(actor, board, ActionCommentCreate, ""); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  actor.ID,
		Content: utils.Sanitize(content),
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, mapStoreErr("create comment", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the comment's author may delete it;
// unlike posts there is no admin override.
func (s *Lifecycle) DeleteComment(actor *models.Profile, commentID uint) error {
	comment, err := s.comments.Get(commentID)
	if err != nil {
		return mapStoreErr("load comment", err)
	}
	if err := Evaluate(actor, "", ActionCommentDelete, comment.UserID); err != nil {
		return err
	}
	if err := s.comments.Delete(commentID); err != nil {
		return mapStoreErr("delete comment", err)
	}
	return nil
}
