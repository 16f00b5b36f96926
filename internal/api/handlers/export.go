package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"
)

const formatContentTypeCSV = "text/csv; charset=utf-8"
const formatContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export writes a versioned export into the exports folder and streams it
// back as a download. Filters mirror GET /api/rows, so the user exports
// what they see.
// GET /api/export/:format
func (s *Server) Export(c *gin.Context) {
	format := c.Param("format")
	filter := filterFromQuery(c)

	s.mu.Lock()
	rows := s.session.WorkingRows()
	s.mu.Unlock()

	filtered := rows[:0]
	for i := range rows {
		if filter.keep(&rows[i]) {
			filtered = append(filtered, rows[i])
		}
	}

	res, err := s.exporter.Export(c.Request.Context(), format, filtered)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := formatContentTypeCSV
	if format == "xlsx" {
		contentType = formatContentTypeXLSX
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Header("X-Export-Version", res.Version)
	c.Data(http.StatusOK, contentType, res.Data)
}

// ChangedRows diffs the current table against an uploaded baseline export.
// POST /api/report/changes (multipart field "baseline")
func (s *Server) ChangedRows(c *gin.Context) {
	fh, err := c.FormFile("baseline")
	if err != nil {
		c.Error(apperrors.BadRequest("FILE_MISSING", "기준 파일이 없습니다"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.Error(apperrors.Wrap(err, "FILE_READ_FAILED", "기준 파일을 읽지 못했습니다", http.StatusBadRequest))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		c.Error(apperrors.Wrap(err, "FILE_READ_FAILED", "기준 파일을 읽지 못했습니다", http.StatusBadRequest))
		return
	}

	s.mu.Lock()
	rows := s.session.Rows()
	s.mu.Unlock()

	changes, err := s.exporter.Diff(rows, fh.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"baseline": fh.Filename,
		"count":    len(changes),
		"changes":  changes,
	})
}

// ListCommits returns recent accepted edit batches.
// GET /api/history/commits?limit=20
func (s *Server) ListCommits(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	commits, err := s.history.ListCommits(c.Request.Context(), limit)
	if err != nil {
		c.Error(apperrors.Wrap(err, "HISTORY_LIST_FAILED", "수정 이력을 읽지 못했습니다", http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, gin.H{"commits": commits})
}

// ListChanges returns the cell changes of one commit.
// GET /api/history/commits/:id/changes
func (s *Server) ListChanges(c *gin.Context) {
	changes, err := s.history.ListChanges(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(apperrors.Wrap(err, "HISTORY_LIST_FAILED", "수정 이력을 읽지 못했습니다", http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, gin.H{"changes": changes})
}
