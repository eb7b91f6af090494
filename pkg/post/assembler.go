package post

import (
	"context"

	"github.com/samber/lo"

	"giffeed/pkg/user"
)

type (
	IUserRepo interface {
		GetById(context.Context, user.UserId) (*user.User, error)
	}

	// One instance per bucket scope (gifs, avatars).
	ILinkCache interface {
		Resolve(ctx context.Context, key string) (string, error)
	}
)

// Feed assembles the externally-facing view of a post or a feed page:
// one aggregation to the store, then signed-URL resolution through the
// per-bucket link caches.
type Feed struct {
	posts       *Repo
	users       IUserRepo
	gifLinks    ILinkCache
	avatarLinks ILinkCache
}

func NewFeed(posts *Repo, users IUserRepo, gifLinks, avatarLinks ILinkCache) *Feed {
	return &Feed{
		posts:       posts,
		users:       users,
		gifLinks:    gifLinks,
		avatarLinks: avatarLinks,
	}
}

func (f *Feed) GetPost(ctx context.Context, id PostId, viewerId user.UserId) (*PostView, error) {
	row, err := f.posts.GetById(ctx, id, viewerId)
	if err != nil {
		return nil, err
	}

	postUrl, err := f.gifLinks.Resolve(ctx, row.ImageName)
	if err != nil {
		return nil, err
	}
	pictureUrl, err := f.avatarLinks.Resolve(ctx, row.PictureName)
	if err != nil {
		return nil, err
	}
	return row.view(postUrl, pictureUrl), nil
}

// GetFeed returns one page of the viewer's feed, newest to oldest. The
// caller passes the last post_id of the previous page as the cursor, or
// 0 for the first page. An exhausted feed is an empty page, not an error.
func (f *Feed) GetFeed(ctx context.Context, viewerId user.UserId, cursor PostId) ([]*PostView, error) {
	viewer, err := f.users.GetById(ctx, viewerId)
	if err != nil {
		return nil, err
	}

	rows, err := f.posts.GetFeedPage(ctx, viewer, cursor)
	if err != nil {
		return nil, err
	}

	// Resolve each author's avatar once per page.
	authors := lo.UniqBy(rows, func(row *JoinedPost) user.UserId { return row.UserId })
	avatars := make(map[user.UserId]string, len(authors))
	for _, author := range authors {
		url, err := f.avatarLinks.Resolve(ctx, author.PictureName)
		if err != nil {
			return nil, err
		}
		avatars[author.UserId] = url
	}

	views := make([]*PostView, 0, len(rows))
	for _, row := range rows {
		postUrl, err := f.gifLinks.Resolve(ctx, row.ImageName)
		if err != nil {
			return nil, err
		}
		views = append(views, row.view(postUrl, avatars[row.UserId]))
	}
	return views, nil
}

func (p *JoinedPost) view(postUrl, pictureUrl string) *PostView {
	return &PostView{
		Id:           p.Id,
		UserId:       p.UserId,
		Width:        p.Width,
		Height:       p.Height,
		PostUrl:      postUrl,
		Title:        p.Title,
		Caption:      p.Caption,
		Tags:         p.Tags,
		CommentCount: p.CommentCount,
		LikeCount:    p.LikeCount,
		UserLiked:    p.UserLiked,
		Username:     p.Username,
		NameColor:    p.NameColor,
		PictureUrl:   pictureUrl,
		Date:         p.Date,
		Circle:       p.Circle,
	}
}
