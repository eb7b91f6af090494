package post

import (
	"time"

	"giffeed/pkg/comment"
	"giffeed/pkg/user"
)

type PostId int64

type Post struct {
	Id        PostId             `json:"post_id" bson:"post_id"`
	UserId    user.UserId        `json:"user_id" bson:"user_id"`
	ImageName string             `json:"-" bson:"image_name"`
	Width     int                `json:"width" bson:"width"`
	Height    int                `json:"height" bson:"height"`
	Title     string             `json:"title" bson:"title"`
	Caption   string             `json:"caption" bson:"caption"`
	Tags      []string           `json:"tags" bson:"tags"`

	// Assigned at creation, used as the feed sort/cursor key.
	Date time.Time `json:"date" bson:"date"`

	Circle   string             `json:"circle" bson:"circle"`
	Likes    []user.UserId      `json:"likes" bson:"likes"`
	Comments []*comment.Comment `json:"comments" bson:"comments"`
}

// PostView is what leaves the service: author fields joined in, social
// counters computed, and storage keys swapped for signed URLs.
type PostView struct {
	Id           PostId      `json:"post_id"`
	UserId       user.UserId `json:"user_id"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	PostUrl      string      `json:"post_url"`
	Title        string      `json:"title"`
	Caption      string      `json:"caption"`
	Tags         []string    `json:"tags"`
	CommentCount int         `json:"comment_count"`
	LikeCount    int         `json:"like_count"`
	UserLiked    bool        `json:"user_liked"`
	Username     string      `json:"username"`
	NameColor    string      `json:"name_color"`
	PictureUrl   string      `json:"picture_url"`
	Date         time.Time   `json:"date"`
	Circle       string      `json:"circle"`
}
