package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"giffeed/pkg/linkcache"
	"giffeed/pkg/logger"
	"giffeed/pkg/middleware"
	"giffeed/pkg/monitoring"
	"giffeed/pkg/post"
	"giffeed/pkg/sessions"
	"giffeed/pkg/user"
	"giffeed/pkg/user/api"
)

type EnvConfig map[string]string

const (
	// Lifetime requested from S3 on presign; the buffer keeps a link
	// from being handed out right before it dies in the client.
	linkValidity     = 100 * time.Second
	linkSafetyBuffer = 15 * time.Second
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

func main() {
	var cfg EnvConfig = readDotenv()

	redisConn, err := redis.DialURL(cfg["REDIS_ADDR"])
	if err != nil {
		log.Fatalf("main: can't connect to Redis")
	}

	mongoCtx, mongoCtxCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer mongoCtxCancel()
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg["MONGODB_URI"]))
	if err != nil {
		log.Fatalln("main: can't connect to MongoDB,", err)
	}
	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		log.Fatalln("main: unable to connect to MongoDB,", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(mongoCtx); err != nil {
			log.Fatalln("main: failed disconnecting from MongoDB, ", err)
		}
	}()

	db := mongoClient.Database("giffeed")
	postsRepo := post.NewPostRepo(db.Collection("posts"))
	usersRepo := user.NewUserRepo(db.Collection("users"))

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg["AWS_REGION"]),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg["AWS_ACCESS_KEY_ID"], cfg["AWS_ACCESS_KEY_SECRET"], "")),
	)
	if err != nil {
		log.Fatalln("main: can't load AWS config,", err)
	}
	signer := linkcache.NewS3Signer(s3.NewFromConfig(awsCfg))

	// One cache per bucket scope, shared by all in-flight requests.
	gifLinks := linkcache.New(signer, cfg["AWS_GIFBUCKET"], linkValidity, linkSafetyBuffer)
	avatarLinks := linkcache.New(signer, cfg["AWS_AVATARBUCKET"], linkValidity, linkSafetyBuffer)

	sweeper := cron.New()
	sweeper.AddFunc("@every 1m", gifLinks.Sweep)
	sweeper.AddFunc("@every 1m", avatarLinks.Sweep)
	sweeper.Start()
	defer sweeper.Stop()

	feed := post.NewFeed(postsRepo, usersRepo, gifLinks, avatarLinks)
	sessionManager := sessions.NewSessionManager(cfg["SECRET_KEY"], redisConn)
	feedHandler := post.NewFeedHandler(feed)
	userHandler := api.NewUserHandler(usersRepo, sessionManager)

	r := mux.NewRouter()

	// Generate fake content to try the API by hand
	// seed(usersRepo, postsRepo)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/post/{post_id}", feedHandler.Get).Methods("GET")
	apiRouter.HandleFunc("/feed", feedHandler.GetFeed).Methods("GET")
	apiRouter.HandleFunc("/login", userHandler.LogIn).Methods("POST")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	viewer := middleware.NewViewerMiddleware(sessionManager, usersRepo)
	r.Use(viewer.Middleware)

	logMiddleware := middleware.NewLoggingMiddleware(logger.Run(cfg["LOG_LEVEL"]))
	r.Use(logMiddleware.SetupTracing)
	r.Use(logMiddleware.SetupLogging)
	r.Use(logMiddleware.AccessLog)
	r.Use(monitoring.Middleware)

	log.Println("Serving at http://localhost:8080/")
	log.Fatalln(http.ListenAndServe(":8080", r))
}

func readDotenv() EnvConfig {
	env, err := godotenv.Read()
	if err != nil {
		log.Fatal("failed reading .env file:", err)
	}
	return env
}
