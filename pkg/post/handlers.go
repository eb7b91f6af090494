package post

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"giffeed/pkg/common"
	"giffeed/pkg/linkcache"
	"giffeed/pkg/logger"
	"giffeed/pkg/sessions"
	"giffeed/pkg/user"
)

type IFeedService interface {
	GetPost(context.Context, PostId, user.UserId) (*PostView, error)
	GetFeed(context.Context, user.UserId, PostId) ([]*PostView, error)
}

type FeedHandler struct {
	Feed IFeedService
}

func NewFeedHandler(feed IFeedService) *FeedHandler {
	return &FeedHandler{
		Feed: feed,
	}
}

const storeTimeout = 5 * time.Second

func (fh FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	postId, err := strconv.ParseInt(vars["post_id"], 10, 64)
	if err != nil {
		logger.Log(r.Context()).Errorf("bad post id %q: %v", vars["post_id"], err)
		common.WriteMsg(w, "bad post id", http.StatusBadRequest)
		return
	}

	viewer, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		logger.Log(r.Context()).Errorf("can't get viewer: %v", err)
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()
	view, err := fh.Feed.GetPost(ctx, PostId(postId), viewer.Id)
	if err != nil {
		writeFeedErr(w, r, err)
		return
	}

	common.WriteRespJSON(w, view)
}

func (fh FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// cursor is the post_id of the last post the client has seen;
	// absent or 0 means the first page.
	var cursor int64
	if rawCursor := r.URL.Query().Get("cursor"); rawCursor != "" {
		var err error
		cursor, err = strconv.ParseInt(rawCursor, 10, 64)
		if err != nil {
			logger.Log(r.Context()).Errorf("bad feed cursor %q: %v", rawCursor, err)
			common.WriteMsg(w, "bad cursor", http.StatusBadRequest)
			return
		}
	}

	viewer, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		logger.Log(r.Context()).Errorf("can't get viewer: %v", err)
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()
	views, err := fh.Feed.GetFeed(ctx, viewer.Id, PostId(cursor))
	if err != nil {
		writeFeedErr(w, r, err)
		return
	}

	common.WriteRespJSON(w, views)
}

func writeFeedErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound) || errors.Is(err, user.ErrNotFound):
		logger.Log(r.Context()).Errorf("not found: %v", err)
		common.WriteMsg(w, "not found", http.StatusNotFound)
	case errors.Is(err, linkcache.ErrIssuer):
		logger.Log(r.Context()).Errorf("signed link issuance failed: %v", err)
		common.WriteMsg(w, "image link unavailable, retry later", http.StatusBadGateway)
	default:
		logger.Log(r.Context()).Errorf("failed loading posts: %v", err)
		common.WriteMsg(w, "failed loading posts", http.StatusInternalServerError)
	}
}
