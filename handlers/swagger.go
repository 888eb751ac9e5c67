package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the
// article service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>articled — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the article surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "articled", "version": "v0.1.0" },
  "paths": {
    "/api/articles": {
      "get": {
        "summary": "List articles (filters: tag, author, favorited, limit, offset)",
        "responses": { "200": { "description": "articles + unpaginated articlesCount" } }
      },
      "post": {
        "summary": "Create an article (auth required)",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"article":{"type":"object","properties":{"title":{"type":"string"},"description":{"type":"string"},"body":{"type":"string"},"tagList":{"type":"array","items":{"type":"string"}}}}}}}}},
        "responses": { "200": { "description": "created article" }, "400": { "description": "missing fields" }, "401": { "description": "unauthenticated" } }
      }
    },
    "/api/articles/feed": {
      "get": { "summary": "Articles by followed authors (auth required)", "responses": { "200": { "description": "feed page" }, "401": { "description": "unauthenticated" } } }
    },
    "/api/articles/{slug}": {
      "get": { "summary": "Fetch one article", "responses": { "200": { "description": "article" }, "404": { "description": "unknown slug" } } },
      "put": { "summary": "Partial update (author only)", "responses": { "200": { "description": "updated article" }, "403": { "description": "not the author" }, "404": { "description": "unknown slug" } } },
      "delete": { "summary": "Delete (author only)", "responses": { "200": { "description": "deleted" }, "403": { "description": "not the author" }, "404": { "description": "unknown slug" } } }
    },
    "/api/articles/{slug}/favorite": {
      "post": { "summary": "Favorite an article (auth required)", "responses": { "200": { "description": "article" }, "404": { "description": "unknown slug" } } },
      "delete": { "summary": "Unfavorite an article (auth required)", "responses": { "200": { "description": "article" }, "404": { "description": "unknown slug" } } }
    },
    "/api/profiles/{username}": {
      "get": { "summary": "Public profile", "responses": { "200": { "description": "profile" }, "404": { "description": "unknown user" } } }
    },
    "/api/profiles/{username}/follow": {
      "post": { "summary": "Follow a user (auth required)", "responses": { "200": { "description": "profile" } } },
      "delete": { "summary": "Unfollow a user (auth required)", "responses": { "200": { "description": "profile" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
