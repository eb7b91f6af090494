package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"giffeed/pkg/mongodb"
	"giffeed/pkg/user"
)

const FeedPageSize = 10

var (
	ErrNotFound = errors.New("post: not found")
	ErrStore    = errors.New("post: store failure")
)

type Repo struct {
	posts mongodb.IMongoCollection
}

func NewPostRepo(postsCol *mongo.Collection) *Repo {
	return &Repo{
		posts: mongodb.NewCollection(postsCol),
	}
}

// JoinedPost is one aggregation result row: a post with its author's
// display fields and the computed social counters. Storage keys are
// still raw here; the assembler swaps them for signed URLs.
type JoinedPost struct {
	Id           PostId      `bson:"post_id"`
	UserId       user.UserId `bson:"user_id"`
	ImageName    string      `bson:"image_name"`
	Width        int         `bson:"width"`
	Height       int         `bson:"height"`
	Title        string      `bson:"title"`
	Caption      string      `bson:"caption"`
	Tags         []string    `bson:"tags"`
	Date         time.Time   `bson:"date"`
	Circle       string      `bson:"circle"`
	CommentCount int         `bson:"comment_count"`
	LikeCount    int         `bson:"like_count"`
	UserLiked    bool        `bson:"user_liked"`
	Username     string      `bson:"username"`
	NameColor    string      `bson:"name_color"`
	PictureName  string      `bson:"picture_name"`
}

func (p *JoinedPost) validate() error {
	if p.Id == 0 || p.UserId == 0 || p.ImageName == "" || p.Username == "" {
		return fmt.Errorf("%w: post/repo: malformed document for post %d", ErrStore, p.Id)
	}
	return nil
}

// Stages shared by the single-post and feed pipelines: join the author
// document by user_id, compute the counters and the viewer's like flag,
// then strip the raw arrays and the embedded author.
func authorJoinStages(viewerId user.UserId) []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "user_id",
			"as":           "author",
		}},
		{"$unwind": "$author"},
		{"$addFields": bson.M{
			"comment_count": bson.M{"$size": "$comments"},
			"like_count":    bson.M{"$size": "$likes"},
			"user_liked":    bson.M{"$in": bson.A{viewerId, "$likes"}},
			"username":      "$author.username",
			"name_color":    "$author.name_color",
			"picture_name":  "$author.picture_name",
		}},
		{"$project": bson.M{"_id": 0, "author": 0, "likes": 0, "comments": 0}},
	}
}

func (r *Repo) GetById(ctx context.Context, id PostId, viewerId user.UserId) (*JoinedPost, error) {
	pipeline := append([]bson.M{
		{"$match": bson.M{"post_id": id}},
	}, authorJoinStages(viewerId)...)

	rows, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}
	return rows[0], nil
}

// GetFeedPage returns one page of the viewer's feed: posts from authors
// in the viewer's circles, newest first, strictly older than the cursor
// post when a cursor is given. post_id breaks date ties so pages stay
// deterministic.
func (r *Repo) GetFeedPage(ctx context.Context, viewer *user.User, cursor PostId) ([]*JoinedPost, error) {
	match := bson.M{"user_id": bson.M{"$in": viewer.Circles}}
	if cursor != 0 {
		cursorDate, err := r.dateOf(ctx, cursor)
		if err != nil {
			return nil, err
		}
		match["date"] = bson.M{"$lt": cursorDate}
	}

	pipeline := append([]bson.M{
		{"$match": match},
		{"$sort": bson.D{{Key: "date", Value: -1}, {Key: "post_id", Value: -1}}},
		{"$limit": FeedPageSize},
	}, authorJoinStages(viewer.Id)...)

	return r.aggregate(ctx, pipeline)
}

// Resolves the pagination anchor. A cursor that doesn't match any post
// (deleted, or made up by the client) reads as NotFound so the caller
// can fall back to the first page.
func (r *Repo) dateOf(ctx context.Context, id PostId) (time.Time, error) {
	anchor := struct {
		Date time.Time `bson:"date"`
	}{}
	err := r.posts.FindOne(ctx, bson.M{"post_id": id}).Decode(&anchor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, fmt.Errorf("%w: cursor post %d", ErrNotFound, id)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: post/repo: failed resolving cursor: %v", ErrStore, err)
	}
	return anchor.Date, nil
}

func (r *Repo) aggregate(ctx context.Context, pipeline []bson.M) ([]*JoinedPost, error) {
	cursor, err := r.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: post/repo: aggregation failed: %v", ErrStore, err)
	}
	defer cursor.Close(ctx)

	rows := []*JoinedPost{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: post/repo: failed reading aggregation cursor: %v", ErrStore, err)
	}
	for _, row := range rows {
		if err := row.validate(); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// Used by the seed command.
func (r *Repo) Add(ctx context.Context, p *Post) (PostId, error) {
	_, err := r.posts.InsertOne(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("post/repo: failed inserting a post: %w", err)
	}
	return p.Id, nil
}
