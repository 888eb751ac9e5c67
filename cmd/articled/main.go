package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	articlehandler "github.com/conduitapp/articled/internal/article/handler"
	articlerepo "github.com/conduitapp/articled/internal/article/repository"
	articleservice "github.com/conduitapp/articled/internal/article/service"
	"github.com/conduitapp/articled/internal/database"
	"github.com/conduitapp/articled/internal/tokens"
	"github.com/conduitapp/articled/internal/users"
)

// Dev entrypoint: serves the article API with in-memory repositories when no
// MONGODB_URI is set, so the frontend can be exercised without a database.
func main() {
	port := os.Getenv("ARTICLED_PORT")
	if port == "" {
		port = "5010"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-do-not-use-in-production"
	}

	r := gin.New()
	r.Use(gin.Recovery())

	var (
		repo    articlerepo.ArticleRepository
		userSvc *users.Service
	)
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI != "" {
		client, err := database.ConnectMongo(context.Background(), mongoURI, 10*time.Second)
		if err != nil {
			log.Printf("warning: cannot connect to MongoDB (%v) — using memory-backed repos", err)
		} else {
			db := client.Database(os.Getenv("MONGODB_DATABASE"))
			repo = articlerepo.NewMongoRepo(db.Collection("articles"))
			userSvc = users.NewService(users.NewMongoUserRepository(db.Collection("users")))
		}
	}
	if repo == nil {
		repo = articlerepo.NewMemoryRepo()
		userSvc = users.NewService(users.NewMemoryUserRepository())
	}

	svc := articleservice.NewService(repo, userSvc)
	articlehandler.New(svc).Register(r, tokens.NewHSVerifier(secret))

	log.Printf("articled dev service listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
