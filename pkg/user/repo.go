package user

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"giffeed/pkg/common"
	"giffeed/pkg/mongodb"
)

var (
	ErrNotFound = errors.New("user: not found")
	ErrStore    = errors.New("user: store failure")
)

type Repo struct {
	users mongodb.IMongoCollection
}

func NewUserRepo(usersCol *mongo.Collection) *Repo {
	return &Repo{
		users: mongodb.NewCollection(usersCol),
	}
}

func (r *Repo) GetById(ctx context.Context, id UserId) (*User, error) {
	u := new(User)
	err := r.users.FindOne(ctx, bson.M{"user_id": id}).Decode(u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: user/repo: failed finding user: %v", ErrStore, err)
	}
	return u, nil
}

func (r *Repo) GetByUsernameAndPass(ctx context.Context, uname, pass string) (*User, error) {
	u := new(User)
	err := r.users.FindOne(ctx, bson.M{"username": uname}).Decode(u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: username %q", ErrNotFound, uname)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: user/repo: failed finding user: %v", ErrStore, err)
	}

	// User found by username, now check if passwords are the same
	if len(u.Password) < 8 {
		return nil, errors.New("user/repo: stored password is malformed")
	}
	salt := string(u.Password[0:8])
	if !bytes.Equal(common.HashPass(pass, salt), u.Password) {
		return nil, errors.New("user/repo: password is invalid")
	}
	return u, nil
}

// Used by the seed command.
func (r *Repo) Add(ctx context.Context, u *User) (UserId, error) {
	_, err := r.users.InsertOne(ctx, u)
	if err != nil {
		return 0, fmt.Errorf("user/repo: failed inserting user: %w", err)
	}
	return u.Id, nil
}
