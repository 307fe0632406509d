package social

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "snapboard-backend/pkg/errors"
)

func TestNewPost(t *testing.T) {
	t.Run("accepts allowed image extensions", func(t *testing.T) {
		for _, ref := range []string{"photo.png", "photo.jpg", "photo.JPEG", "dir/pic.Png"} {
			post, err := NewPost("owner-1", ref, "caption")
			require.NoError(t, err, ref)
			assert.Equal(t, "owner-1", post.OwnerID())
		}
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		for _, ref := range []string{"photo.gif", "photo.svg", "photo", "photo."} {
			_, err := NewPost("owner-1", ref, "caption")
			require.Error(t, err, ref)
			assert.True(t, pkgerrors.IsValidation(err))
		}
	})

	t.Run("requires owner and image", func(t *testing.T) {
		_, err := NewPost("", "photo.png", "")
		assert.True(t, pkgerrors.IsValidation(err))

		_, err = NewPost("owner-1", "", "")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestAddComment(t *testing.T) {
	post, err := NewPost("owner-1", "photo.png", "caption")
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		_, err := post.AddComment("a", "first")
		require.NoError(t, err)
		_, err = post.AddComment("b", "second")
		require.NoError(t, err)

		comments := post.Comments()
		require.Len(t, comments, 2)
		assert.Equal(t, "second", comments[0].Text)
		assert.Equal(t, "first", comments[1].Text)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, err := post.AddComment("a", "   ")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects empty author", func(t *testing.T) {
		_, err := post.AddComment("", "text")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("oversized text is truncated", func(t *testing.T) {
		comment, err := post.AddComment("a", strings.Repeat("x", 201))
		require.NoError(t, err)
		assert.Len(t, comment.Text, 75)
	})
}

func TestNormalizeCommentText(t *testing.T) {
	assert.Equal(t, "hello", NormalizeCommentText("  hello  "))

	// Text at the limit passes through whole
	exact := strings.Repeat("a", 200)
	assert.Equal(t, exact, NormalizeCommentText(exact))

	// One past the limit collapses to the truncation length
	over := strings.Repeat("a", 201)
	assert.Equal(t, strings.Repeat("a", 75), NormalizeCommentText(over))

	// Limits count characters, not bytes: 150 two-byte runes pass whole
	multibyte := strings.Repeat("é", 150)
	assert.Equal(t, multibyte, NormalizeCommentText(multibyte))

	// An oversized multi-byte comment truncates on a rune boundary
	truncated := NormalizeCommentText(strings.Repeat("é", 201))
	assert.Equal(t, strings.Repeat("é", 75), truncated)
	assert.True(t, utf8.ValidString(truncated))
}

func TestHasAllowedImageExtension(t *testing.T) {
	assert.True(t, HasAllowedImageExtension("a.png"))
	assert.True(t, HasAllowedImageExtension("a.b.jpeg"))
	assert.False(t, HasAllowedImageExtension("a.png.exe"))
	assert.False(t, HasAllowedImageExtension("noext"))
	assert.False(t, HasAllowedImageExtension("trailing."))
}
