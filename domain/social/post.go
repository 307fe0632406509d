package social

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "snapboard-backend/pkg/errors"
)

// Comment text longer than maxCommentInput is cut to commentTruncateLen.
const (
	maxCommentInput    = 200
	commentTruncateLen = 75
)

// allowedImageExtensions is the upload allow-list
var allowedImageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

// Comment is authored on a post and owned by it
type Comment struct {
	AuthorID  string
	PostID    string
	Text      string
	CreatedAt time.Time
}

// Post is an image with a caption owned exclusively by its creating
// account. Comments are embedded newest first.
type Post struct {
	id        string
	ownerID   string
	imageRef  string
	caption   string
	comments  []Comment
	createdAt time.Time
}

// NewPost creates a post after checking the image reference against the
// upload allow-list
func NewPost(ownerID, imageRef, caption string) (*Post, error) {
	if ownerID == "" {
		return nil, pkgerrors.NewValidationError("ownerID cannot be empty")
	}
	if imageRef == "" {
		return nil, pkgerrors.NewValidationError("image reference cannot be empty")
	}
	if !HasAllowedImageExtension(imageRef) {
		return nil, pkgerrors.NewValidationError("image must be a png, jpg, or jpeg file")
	}

	return &Post{
		id:        uuid.New().String(),
		ownerID:   ownerID,
		imageRef:  imageRef,
		caption:   caption,
		comments:  []Comment{},
		createdAt: time.Now(),
	}, nil
}

// ReconstructPost restores a post from repository data
func ReconstructPost(id, ownerID, imageRef, caption string, comments []Comment, createdAt time.Time) *Post {
	if comments == nil {
		comments = []Comment{}
	}
	return &Post{
		id:        id,
		ownerID:   ownerID,
		imageRef:  imageRef,
		caption:   caption,
		comments:  comments,
		createdAt: createdAt,
	}
}

func (p *Post) ID() string           { return p.id }
func (p *Post) OwnerID() string      { return p.ownerID }
func (p *Post) ImageRef() string     { return p.imageRef }
func (p *Post) Caption() string      { return p.caption }
func (p *Post) CreatedAt() time.Time { return p.createdAt }

// Comments returns a copy of the comment list, newest first
func (p *Post) Comments() []Comment {
	out := make([]Comment, len(p.comments))
	copy(out, p.comments)
	return out
}

// AddComment prepends a comment authored by the given account. Text is
// normalized first; a comment that is empty after trimming is rejected.
func (p *Post) AddComment(authorID, text string) (Comment, error) {
	if authorID == "" {
		return Comment{}, pkgerrors.NewValidationError("comment author cannot be empty")
	}

	text = NormalizeCommentText(text)
	if text == "" {
		return Comment{}, pkgerrors.NewValidationError("comment cannot be empty")
	}

	comment := Comment{
		AuthorID:  authorID,
		PostID:    p.id,
		Text:      text,
		CreatedAt: time.Now(),
	}
	p.comments = append([]Comment{comment}, p.comments...)
	return comment, nil
}

// NormalizeCommentText trims the input and truncates oversized comments:
// anything longer than 200 characters is cut down to 75. Lengths count
// characters, not bytes, so multi-byte text is never split mid-rune.
func NormalizeCommentText(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > maxCommentInput {
		return string(runes[:commentTruncateLen])
	}
	return text
}

// HasAllowedImageExtension checks a filename or object key against the
// png/jpg/jpeg allow-list
func HasAllowedImageExtension(ref string) bool {
	idx := strings.LastIndex(ref, ".")
	if idx < 0 || idx == len(ref)-1 {
		return false
	}
	ext := strings.ToLower(ref[idx+1:])
	return allowedImageExtensions[ext]
}
