package main

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/jaswdr/faker"

	"giffeed/pkg/comment"
	. "giffeed/pkg/common"
	"giffeed/pkg/post"
	"giffeed/pkg/user"
)

var (
	f             = faker.New()
	onePassForAll = HashPass("sdfsdfsdf", RandStringRunes(8)) // salt must have len of 8
)

func seed(usersRepo *user.Repo, postsRepo *post.Repo) {
	ctx := context.Background()
	authors := createAuthors(ctx, usersRepo)

	// Dates grow monotonically so cursor pagination is unambiguous.
	date := time.Now().Add(-30 * 24 * time.Hour)
	for i := 1; i <= 30; i++ {
		date = date.Add(time.Duration(rand.Intn(3600)+60) * time.Second)
		if _, err := postsRepo.Add(ctx, genPost(post.PostId(i), date, authors)); err != nil {
			log.Fatalln("seed: can't add post:", err)
		}
	}
}

func createAuthors(ctx context.Context, usersRepo *user.Repo) []*user.User {
	// User for experiments (not random)
	authors := []*user.User{{
		Id:          1,
		Username:    "pike",
		Password:    onePassForAll,
		PictureName: "pike.png",
		NameColor:   f.Color().Hex(),
	}}
	for i := 2; i <= 6; i++ {
		authors = append(authors, genUser(user.UserId(i)))
	}

	for _, u := range authors {
		// Everyone follows everyone, so every seeded feed has content
		for _, other := range authors {
			u.Circles = append(u.Circles, other.Id)
		}
		if _, err := usersRepo.Add(ctx, u); err != nil {
			log.Fatalln("seed: can't add user:", err)
		}
	}
	return authors
}

func genUser(id user.UserId) *user.User {
	username := strings.ToLower(f.Person().FirstName())
	return &user.User{
		// Ids are sequential because we want them the same after server reloading
		Id:          id,
		Username:    username,
		Password:    onePassForAll,
		PictureName: username + ".png",
		NameColor:   f.Color().Hex(),
	}
}

func genPost(id post.PostId, date time.Time, authors []*user.User) *post.Post {
	author := randUser(authors)
	return &post.Post{
		Id:        id,
		UserId:    author.Id,
		ImageName: f.Lorem().Word() + ".gif",
		Width:     f.IntBetween(200, 800),
		Height:    f.IntBetween(200, 800),
		Title:     genTitle(),
		Caption:   genText(),
		Tags:      f.Lorem().Words(rand.Intn(3) + 1),
		Date:      date,
		Circle:    randCircle(),
		Likes:     randLikes(authors),
		Comments:  genComments(authors),
	}
}

func genComments(authors []*user.User) []*comment.Comment {
	n := rand.Intn(10)
	comments := []*comment.Comment{}
	for i := 0; i <= n; i++ {
		comments = append(comments, &comment.Comment{
			Id:      comment.CommentId(RandStringRunes(12)),
			UserId:  randUser(authors).Id,
			Created: f.Time().Time(time.Now()),
			Body:    genText(),
		})
	}
	return comments
}

func randLikes(authors []*user.User) []user.UserId {
	likes := []user.UserId{}
	for _, a := range authors {
		if rand.Intn(2) == 0 {
			likes = append(likes, a.Id)
		}
	}
	return likes
}

func randCircle() string {
	circles := []string{"friends", "family", "everyone"}
	return circles[rand.Intn(len(circles))]
}

func genTitle() string {
	return strings.Join(f.Lorem().Words(rand.Intn(5)+3), " ")
}

func genText() string {
	return f.Lorem().Paragraph(rand.Intn(3) + 2)
}

func randUser(authors []*user.User) *user.User {
	idx := rand.Intn(len(authors))
	return authors[idx]
}
