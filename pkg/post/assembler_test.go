package post

import (
	"context"
	"testing"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"giffeed/pkg/mongodb"
	"giffeed/pkg/user"
)

type feedFixture struct {
	feed        *Feed
	coll        *mongodb.MockIMongoCollection
	cursor      *mongodb.MockIMongoCursor
	single      *mongodb.MockIMongoSingleResult
	users       *MockIUserRepo
	gifLinks    *MockILinkCache
	avatarLinks *MockILinkCache
}

func newFeedFixture(ctrl *gomock.Controller) *feedFixture {
	f := &feedFixture{
		coll:        mongodb.NewMockIMongoCollection(ctrl),
		cursor:      mongodb.NewMockIMongoCursor(ctrl),
		single:      mongodb.NewMockIMongoSingleResult(ctrl),
		users:       NewMockIUserRepo(ctrl),
		gifLinks:    NewMockILinkCache(ctrl),
		avatarLinks: NewMockILinkCache(ctrl),
	}
	f.feed = NewFeed(&Repo{posts: f.coll}, f.users, f.gifLinks, f.avatarLinks)
	return f
}

func (f *feedFixture) expectRows(ctx context.Context, rows []*JoinedPost) {
	f.coll.EXPECT().
		Aggregate(ctx, gomock.Any()).
		Return(f.cursor, nil)
	f.cursor.EXPECT().
		All(ctx, gomock.AssignableToTypeOf(&rows)).
		SetArg(1, rows).
		Return(nil)
	f.cursor.EXPECT().Close(ctx).Return(nil)
}

func feedRow(id PostId, authorId user.UserId, date time.Time) *JoinedPost {
	return &JoinedPost{
		Id:          id,
		UserId:      authorId,
		ImageName:   "img.gif",
		Date:        date,
		Username:    "author",
		PictureName: "ava.png",
	}
}

func TestGetPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("resolves both links into the view", func(t *testing.T) {
		f := newFeedFixture(ctrl)
		f.expectRows(ctx, []*JoinedPost{joinedFixture})
		f.gifLinks.EXPECT().Resolve(ctx, "a.gif").Return("https://s3/gifs/a.gif?sig", nil)
		f.avatarLinks.EXPECT().Resolve(ctx, "pike.png").Return("https://s3/avatars/pike.png?sig", nil)

		view, err := f.feed.GetPost(ctx, 7, viewerId)
		assert.Nil(t, err)
		assert.Equal(t, &PostView{
			Id:           7,
			UserId:       3,
			Width:        320,
			Height:       240,
			PostUrl:      "https://s3/gifs/a.gif?sig",
			Title:        "a gif",
			Caption:      "look at it go",
			Tags:         []string{"gif"},
			CommentCount: 2,
			LikeCount:    5,
			UserLiked:    true,
			Username:     "pike",
			NameColor:    "#ff0000",
			PictureUrl:   "https://s3/avatars/pike.png?sig",
			Date:         joinedFixture.Date,
			Circle:       "friends",
		}, view)
	})

	t.Run("issuer failure propagates", func(t *testing.T) {
		f := newFeedFixture(ctrl)
		f.expectRows(ctx, []*JoinedPost{joinedFixture})
		f.gifLinks.EXPECT().Resolve(ctx, "a.gif").Return("", errIssuerStub)

		_, err := f.feed.GetPost(ctx, 7, viewerId)
		assert.ErrorIs(t, err, errIssuerStub)
	})

	t.Run("missing post", func(t *testing.T) {
		f := newFeedFixture(ctrl)
		f.expectRows(ctx, []*JoinedPost{})

		_, err := f.feed.GetPost(ctx, 404, viewerId)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

var errIssuerStub = assert.AnError

func TestGetFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	viewer := &user.User{Id: viewerId, Username: "pike", Circles: []user.UserId{2, 3}}
	baseDate := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("page keeps store order and resolves avatars once per author", func(t *testing.T) {
		f := newFeedFixture(ctrl)
		rows := []*JoinedPost{
			feedRow(5, 2, baseDate.Add(300*time.Second)),
			feedRow(4, 3, baseDate.Add(200*time.Second)),
			feedRow(3, 2, baseDate.Add(100*time.Second)),
		}

		f.users.EXPECT().GetById(ctx, viewerId).Return(viewer, nil)
		f.expectRows(ctx, rows)
		// two distinct authors on the page, one avatar resolution each
		f.avatarLinks.EXPECT().Resolve(ctx, "ava.png").Return("https://s3/ava", nil).Times(2)
		f.gifLinks.EXPECT().Resolve(ctx, "img.gif").Return("https://s3/img", nil).Times(3)

		views, err := f.feed.GetFeed(ctx, viewerId, 0)
		assert.Nil(t, err)
		assert.Len(t, views, 3)
		assert.Equal(t, PostId(5), views[0].Id)
		assert.Equal(t, PostId(4), views[1].Id)
		assert.Equal(t, PostId(3), views[2].Id)
		for _, v := range views {
			assert.Equal(t, "https://s3/img", v.PostUrl)
			assert.Equal(t, "https://s3/ava", v.PictureUrl)
		}
	})

	t.Run("exhausted feed is an empty page", func(t *testing.T) {
		f := newFeedFixture(ctrl)

		f.users.EXPECT().GetById(ctx, viewerId).Return(viewer, nil)
		f.coll.EXPECT().
			FindOne(ctx, bson.M{"post_id": PostId(3)}).
			Return(f.single)
		f.single.EXPECT().Decode(gomock.Any()).Return(nil)
		f.expectRows(ctx, []*JoinedPost{})

		views, err := f.feed.GetFeed(ctx, viewerId, 3)
		assert.Nil(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("unknown viewer", func(t *testing.T) {
		f := newFeedFixture(ctrl)
		f.users.EXPECT().
			GetById(ctx, user.UserId(99)).
			Return(nil, user.ErrNotFound)

		_, err := f.feed.GetFeed(ctx, 99, 0)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("stale cursor", func(t *testing.T) {
		f := newFeedFixture(ctrl)
		f.users.EXPECT().GetById(ctx, viewerId).Return(viewer, nil)
		f.coll.EXPECT().
			FindOne(ctx, bson.M{"post_id": PostId(999)}).
			Return(f.single)
		f.single.EXPECT().Decode(gomock.Any()).Return(mongo.ErrNoDocuments)

		_, err := f.feed.GetFeed(ctx, viewerId, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
