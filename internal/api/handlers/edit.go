package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JSHWJ/QA-helper/internal/domain"
	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"
)

// EditState reports where the edit workflow currently stands.
// GET /api/edit/state
func (s *Server) EditState(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"state": s.session.State()})
}

// EditStart opens an edit session: 수정 시작.
// POST /api/edit/start
func (s *Server) EditStart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Start(); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": s.session.State()})
}

type editCellRequest struct {
	Seq    int    `json:"seq" binding:"required"`
	Column string `json:"column" binding:"required"`
	Value  string `json:"value"`
}

// EditCell stages one cell value into the shadow copy.
// PUT /api/edit/cell
func (s *Server) EditCell(c *gin.Context) {
	var req editCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.BadRequest("INVALID_REQUEST", "seq와 column이 필요합니다"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Stage(req.Seq, req.Column, req.Value); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EditComplete moves to the review step: 수정 완료.
// POST /api/edit/complete
func (s *Server) EditComplete(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	proposals, err := s.session.Complete()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":     s.session.State(),
		"proposals": proposalsPayload(proposals),
	})
}

// EditProposals lists the pending changes during review.
// GET /api/edit/proposals
func (s *Server) EditProposals(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	proposals, err := s.session.Proposals()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposalsPayload(proposals)})
}

// EditBack returns from review to editing, keeping the staged changes: 이전.
// POST /api/edit/back
func (s *Server) EditBack(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Back(); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": s.session.State()})
}

// EditCancel discards the whole session: 모두 취소.
// POST /api/edit/cancel
func (s *Server) EditCancel(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Cancel(); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": s.session.State()})
}

// EditAccept applies the reviewed changes and records the commit.
// POST /api/edit/accept
func (s *Server) EditAccept(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	commit, err := s.editor.Accept(c.Request.Context(), s.session)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":    s.session.State(),
		"commit":   commit,
		"counters": countersLocked(s),
	})
}

// EditReference returns the frozen pre-edit snapshot: 수정 전 기준 테이블.
// GET /api/edit/reference
func (s *Server) EditReference(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.session.Reference()
	if !ok {
		c.Error(apperrors.Conflict("NO_EDIT_SESSION", "수정 세션이 없습니다"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// proposalsPayload keeps the JSON array non-null for an empty review.
func proposalsPayload(proposals []domain.EditProposal) []domain.EditProposal {
	if proposals == nil {
		return []domain.EditProposal{}
	}
	return proposals
}
