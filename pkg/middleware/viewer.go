package middleware

import (
	"context"
	"net/http"
	"time"

	"giffeed/pkg/common"
	"giffeed/pkg/logger"
	"giffeed/pkg/sessions"
	"giffeed/pkg/user"
)

type (
	IUserRepo interface {
		GetById(context.Context, user.UserId) (*user.User, error)
	}
	ISessionManager interface {
		UserFromToken(string) (*user.UserFromToken, error)
	}
	// Viewer resolves the current viewer from the Authorization header
	// and makes it available to handlers. The core never derives the
	// viewer itself; it only receives the id resolved here.
	Viewer struct {
		UserRepo       IUserRepo
		SessionManager ISessionManager
	}
)

func NewViewerMiddleware(sm ISessionManager, ur IUserRepo) *Viewer {
	return &Viewer{
		UserRepo:       ur,
		SessionManager: sm,
	}
}

func (v Viewer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		fromToken, err := v.SessionManager.UserFromToken(authHeader)
		if err != nil {
			logger.Log(r.Context()).Errorf("can't get viewer from token: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		repoCtx, repoCtxCancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer repoCtxCancel()
		viewer, err := v.UserRepo.GetById(repoCtx, fromToken.Id)
		if err != nil {
			logger.Log(r.Context()).Errorf("viewer: can't get the user from repo: %v", err)
			common.WriteMsg(w, "user not found", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), sessions.SessionKey, viewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
