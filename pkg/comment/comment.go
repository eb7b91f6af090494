package comment

import (
	"time"

	"giffeed/pkg/user"
)

type CommentId string

type Comment struct {
	Id      CommentId   `json:"id" bson:"id"`
	UserId  user.UserId `json:"user" bson:"user_id"`
	Created time.Time   `json:"created" bson:"created"`
	Body    string      `json:"body" bson:"body"`
}
