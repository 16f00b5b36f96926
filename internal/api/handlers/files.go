package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JSHWJ/QA-helper/internal/adapters/storage"
	"github.com/JSHWJ/QA-helper/internal/config"
	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"
)

// maxUploadBytes caps one uploaded file at 50 MiB.
const maxUploadBytes = 50 << 20

// Upload stores one input file into its latest slot.
// POST /api/upload/:alias (multipart field "file")
func (s *Server) Upload(c *gin.Context) {
	alias := c.Param("alias")

	fh, err := c.FormFile("file")
	if err != nil {
		c.Error(apperrors.BadRequest("FILE_MISSING", "업로드할 파일이 없습니다"))
		return
	}
	if fh.Size > maxUploadBytes {
		c.Error(apperrors.BadRequest("FILE_TOO_LARGE", "업로드 파일이 너무 큽니다"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.Error(apperrors.Wrap(err, "FILE_READ_FAILED", "업로드 파일을 읽지 못했습니다", http.StatusBadRequest))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		c.Error(apperrors.Wrap(err, "FILE_READ_FAILED", "업로드 파일을 읽지 못했습니다", http.StatusBadRequest))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.importer.SaveUpload(c.Request.Context(), alias, fh.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload": rec})
}

// ListUploads returns the recent upload history.
// GET /api/uploads?limit=20
func (s *Server) ListUploads(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	records, err := s.uploads.List(c.Request.Context(), limit)
	if err != nil {
		c.Error(apperrors.Wrap(err, "UPLOAD_LIST_FAILED", "업로드 이력을 읽지 못했습니다", http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": records})
}

// SourceStatus reports the file-connection panel state.
// GET /api/status
func (s *Server) SourceStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"sources":     s.importer.Status(),
		"storage_dir": s.store.Dir(),
	})
}

// GetStorage returns the active storage directory.
// GET /api/storage
func (s *Server) GetStorage(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"dir":     s.store.Dir(),
		"default": config.DefaultStorageDir(),
	})
}

type applyStorageRequest struct {
	Dir string `json:"dir" binding:"required"`
}

// ApplyStorage switches the storage directory and persists the choice to
// the config file so it survives restarts.
// POST /api/storage
func (s *Server) ApplyStorage(c *gin.Context) {
	var req applyStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.BadRequest("INVALID_REQUEST", "저장 폴더 경로가 필요합니다"))
		return
	}

	store, err := storage.New(req.Dir)
	if err != nil {
		c.Error(apperrors.Wrap(err, "STORAGE_DIR_INVALID", "저장 폴더를 사용할 수 없습니다: "+req.Dir, http.StatusBadRequest))
		return
	}
	if err := config.SaveStorageDir(req.Dir); err != nil {
		c.Error(apperrors.Wrap(err, "STORAGE_SAVE_FAILED", "저장 폴더 설정을 기록하지 못했습니다", http.StatusInternalServerError))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
	s.importer.Store = store
	s.exporter.Store = store
	c.JSON(http.StatusOK, gin.H{"dir": store.Dir()})
}
