package user

import (
	"context"
	"fmt"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"giffeed/pkg/common"
	"giffeed/pkg/mongodb"
)

var (
	userId     = UserId(1)
	username   = "pike"
	password   = "sdfsdfsdf"
	salt       = "12345678"
	hashedPass = common.HashPass(password, salt)
)

func TestGetById(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockMongoColl := mongodb.NewMockIMongoCollection(ctrl)
	mockSingle := mongodb.NewMockIMongoSingleResult(ctrl)

	repo := &Repo{users: mockMongoColl}

	t.Run("should return user", func(t *testing.T) {
		expect := User{Id: userId, Username: username, Circles: []UserId{2, 3}}

		mockMongoColl.EXPECT().
			FindOne(ctx, bson.M{"user_id": userId}).
			Return(mockSingle)
		mockSingle.EXPECT().
			Decode(gomock.AssignableToTypeOf(&expect)).
			SetArg(0, expect).
			Return(nil)

		gotUser, err := repo.GetById(ctx, userId)
		assert.Nil(t, err)
		assert.Equal(t, &expect, gotUser)
	})

	t.Run("should return not found", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, bson.M{"user_id": UserId(99)}).
			Return(mockSingle)
		mockSingle.EXPECT().
			Decode(gomock.Any()).
			Return(mongo.ErrNoDocuments)

		_, err := repo.GetById(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should return store error", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, bson.M{"user_id": userId}).
			Return(mockSingle)
		mockSingle.EXPECT().
			Decode(gomock.Any()).
			Return(fmt.Errorf("connection reset"))

		_, err := repo.GetById(ctx, userId)
		assert.ErrorIs(t, err, ErrStore)
	})
}

func TestGetByUsernameAndPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockMongoColl := mongodb.NewMockIMongoCollection(ctrl)
	mockSingle := mongodb.NewMockIMongoSingleResult(ctrl)

	repo := &Repo{users: mockMongoColl}
	stored := User{Id: userId, Username: username, Password: hashedPass}

	t.Run("valid password", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, bson.M{"username": username}).
			Return(mockSingle)
		mockSingle.EXPECT().
			Decode(gomock.Any()).
			SetArg(0, stored).
			Return(nil)

		gotUser, err := repo.GetByUsernameAndPass(ctx, username, password)
		assert.Nil(t, err)
		assert.Equal(t, userId, gotUser.Id)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, bson.M{"username": username}).
			Return(mockSingle)
		mockSingle.EXPECT().
			Decode(gomock.Any()).
			SetArg(0, stored).
			Return(nil)

		_, err := repo.GetByUsernameAndPass(ctx, username, "nope")
		assert.NotNil(t, err)
	})

	t.Run("unknown username", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, bson.M{"username": "ghost"}).
			Return(mockSingle)
		mockSingle.EXPECT().
			Decode(gomock.Any()).
			Return(mongo.ErrNoDocuments)

		_, err := repo.GetByUsernameAndPass(ctx, "ghost", password)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
