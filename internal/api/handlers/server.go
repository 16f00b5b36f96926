// Package handlers implements the JSON API behind the review table UI.
//
// The app is single-user: one mutex guards the comparison table, the edit
// session and the storage directory swap.
package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/JSHWJ/QA-helper/internal/adapters/storage"
	"github.com/JSHWJ/QA-helper/internal/api/middleware"
	"github.com/JSHWJ/QA-helper/internal/ports"
	"github.com/JSHWJ/QA-helper/internal/usecase/editor"
	"github.com/JSHWJ/QA-helper/internal/usecase/exporter"
	"github.com/JSHWJ/QA-helper/internal/usecase/importer"
)

type Server struct {
	mu sync.Mutex

	store    *storage.Store
	session  *editor.Session
	importer *importer.Service
	editor   *editor.Service
	exporter *exporter.Service
	uploads  ports.UploadRepository
	history  ports.HistoryRepository

	includeEnKeys bool
}

// ServerDeps holds all dependencies for creating a Server.
type ServerDeps struct {
	Store    *storage.Store
	Importer *importer.Service
	Editor   *editor.Service
	Exporter *exporter.Service
	Uploads  ports.UploadRepository
	History  ports.HistoryRepository
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		store:    deps.Store,
		session:  editor.NewSession(),
		importer: deps.Importer,
		editor:   deps.Editor,
		exporter: deps.Exporter,
		uploads:  deps.Uploads,
		history:  deps.History,
	}
}

// NewRouter wires middleware, API routes and the embedded frontend.
func NewRouter(s *Server, static http.FileSystem) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.ErrorHandler())

	api := r.Group("/api")
	{
		api.GET("/health", s.Health)

		api.POST("/upload/:alias", s.Upload)
		api.GET("/uploads", s.ListUploads)
		api.GET("/status", s.SourceStatus)
		api.GET("/storage", s.GetStorage)
		api.POST("/storage", s.ApplyStorage)

		api.POST("/compare", s.RunCompare)
		api.GET("/rows", s.Rows)
		api.GET("/counters", s.CountersHandler)

		api.GET("/edit/state", s.EditState)
		api.POST("/edit/start", s.EditStart)
		api.PUT("/edit/cell", s.EditCell)
		api.POST("/edit/complete", s.EditComplete)
		api.GET("/edit/proposals", s.EditProposals)
		api.POST("/edit/back", s.EditBack)
		api.POST("/edit/cancel", s.EditCancel)
		api.POST("/edit/accept", s.EditAccept)
		api.GET("/edit/reference", s.EditReference)

		api.GET("/export/:format", s.Export)
		api.POST("/report/changes", s.ChangedRows)

		api.GET("/history/commits", s.ListCommits)
		api.GET("/history/commits/:id/changes", s.ListChanges)
	}

	if static != nil {
		r.NoRoute(func(c *gin.Context) {
			http.FileServer(static).ServeHTTP(c.Writer, c.Request)
		})
	}
	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
