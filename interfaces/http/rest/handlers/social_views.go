package handlers

import (
	"time"

	appsocial "snapboard-backend/application/social"
	"snapboard-backend/domain/social"
)

const maxRequestBody = 1 << 20

// CommentView is the wire shape of a comment
type CommentView struct {
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostView is the wire shape of a post, comments newest first
type PostView struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"ownerId"`
	ImageRef  string        `json:"imageRef"`
	Caption   string        `json:"caption"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ProfileResponse is the wire shape of a profile page
type ProfileResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Posts     []PostView `json:"posts"`
	MyProfile bool       `json:"myProfile"`
	Followed  bool       `json:"followed"`
}

func toPostView(post *social.Post) PostView {
	comments := make([]CommentView, 0, len(post.Comments()))
	for _, c := range post.Comments() {
		comments = append(comments, CommentView{
			AuthorID:  c.AuthorID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return PostView{
		ID:        post.ID(),
		OwnerID:   post.OwnerID(),
		ImageRef:  post.ImageRef(),
		Caption:   post.Caption(),
		Comments:  comments,
		CreatedAt: post.CreatedAt(),
	}
}

func toPostViews(posts []*social.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, toPostView(p))
	}
	return views
}

func toProfileResponse(view *appsocial.ProfileView) ProfileResponse {
	return ProfileResponse{
		ID:        view.Account.ID(),
		Email:     view.Account.Email(),
		Posts:     toPostViews(view.Posts),
		MyProfile: view.MyProfile,
		Followed:  view.Followed,
	}
}
