package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	gomock "github.com/golang/mock/gomock"

	"giffeed/pkg/common"
	"giffeed/pkg/user"
)

var (
	userId         = user.UserId(1)
	username       = "pike"
	salt           = "12345678"
	password       = "sdfsdfsdf"
	hashedPassword = common.HashPass(password, salt)
	jwtToken       = "header.payload.signature"
)

func TestLogIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existingUser := user.User{Id: userId, Username: username, Password: hashedPassword}
	mockRepo := NewMockUserRepo(ctrl)
	mockSm := NewMockSessionManager(ctrl)
	handler := &UserHandler{
		Repo:           mockRepo,
		SessionManager: mockSm,
	}

	loginReq := func(un, pw string) *httptest.ResponseRecorder {
		body := strings.NewReader(`{"username": "` + un + `", "password": "` + pw + `"}`)
		w := httptest.NewRecorder()
		handler.LogIn(w, httptest.NewRequest("POST", "/api/login", body))
		return w
	}

	t.Run("login is OK", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByUsernameAndPass(gomock.Any(), username, password).
			Return(&existingUser, nil)
		mockSm.EXPECT().CleanupUserSessions(userId).Return(nil)
		mockSm.EXPECT().CreateToken(&existingUser).Return(jwtToken, nil)

		w := loginReq(username, password)
		body, err := io.ReadAll(w.Result().Body)
		if err != nil {
			t.Errorf("error reading login response body")
			return
		}
		if !bytes.Contains(body, []byte(jwtToken)) {
			t.Errorf("login response doesn't contain JWT token")
			return
		}
	})

	t.Run("user not found", func(t *testing.T) {
		badUsername, badPassword := "notexists", "nevermind"
		mockRepo.EXPECT().
			GetByUsernameAndPass(gomock.Any(), badUsername, badPassword).
			Return(nil, fmt.Errorf("user not found"))

		w := loginReq(badUsername, badPassword)
		if w.Result().StatusCode != 404 {
			t.Errorf("expected 404, got %d", w.Result().StatusCode)
			return
		}
	})
}
