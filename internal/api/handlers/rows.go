package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JSHWJ/QA-helper/internal/domain"
	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"
	"github.com/JSHWJ/QA-helper/internal/usecase/comparer"
)

type compareRequest struct {
	IncludeEnKeys bool `json:"include_en_keys"`
}

// RunCompare loads the stored sources and rebuilds the comparison table.
// Rebuilding discards any open edit session.
// POST /api/compare
func (s *Server) RunCompare(c *gin.Context) {
	var req compareRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperrors.BadRequest("INVALID_REQUEST", "요청 본문이 올바르지 않습니다"))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.importer.LoadSources(c.Request.Context(), req.IncludeEnKeys)
	if err != nil {
		c.Error(err)
		return
	}
	rows := comparer.BuildTable(src)
	s.session.SetRows(rows)
	s.includeEnKeys = req.IncludeEnKeys

	c.JSON(http.StatusOK, gin.H{
		"counters": comparer.Count(rows),
		"sources":  s.importer.Status(),
	})
}

// rowFilter collects the quick-filter and advanced-filter inputs.
type rowFilter struct {
	search  string
	ko      string
	en      string
	ru      string
	overall string
	columns map[string]string
	desc    bool
}

func filterFromQuery(c *gin.Context) rowFilter {
	return rowFilter{
		search:  strings.TrimSpace(c.Query("search")),
		ko:      matchFilterValue(c.Query("ko")),
		en:      matchFilterValue(c.Query("en")),
		ru:      matchFilterValue(c.Query("ru")),
		overall: matchFilterValue(c.Query("overall")),
		columns: c.QueryMap("f"),
		desc:    c.Query("sort") == "desc",
	}
}

// matchFilterValue maps 전체/empty to "no filter".
func matchFilterValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == "전체" {
		return ""
	}
	return v
}

func (f rowFilter) keep(r *domain.ComparisonRow) bool {
	if f.ko != "" && string(r.KoMatch) != f.ko {
		return false
	}
	if f.en != "" && string(r.EnMatch) != f.en {
		return false
	}
	if f.ru != "" && string(r.RuMatch) != f.ru {
		return false
	}
	if f.overall != "" && string(r.Overall) != f.overall {
		return false
	}
	for col, want := range f.columns {
		if want == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(r.Cell(col)), strings.ToLower(want)) {
			return false
		}
	}
	if f.search != "" {
		needle := strings.ToLower(f.search)
		for _, col := range domain.Columns {
			if strings.Contains(strings.ToLower(r.Cell(col)), needle) {
				return true
			}
		}
		return false
	}
	return true
}

// Rows returns the working table (the staged shadow during an edit
// session) filtered and sorted.
// GET /api/rows?search=&ko=&en=&ru=&overall=&sort=asc|desc&f[컬럼]=값
func (s *Server) Rows(c *gin.Context) {
	filter := filterFromQuery(c)

	s.mu.Lock()
	rows := s.session.WorkingRows()
	state := s.session.State()
	s.mu.Unlock()

	filtered := rows[:0]
	for i := range rows {
		if filter.keep(&rows[i]) {
			filtered = append(filtered, rows[i])
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filter.desc {
			return filtered[i].Seq > filtered[j].Seq
		}
		return filtered[i].Seq < filtered[j].Seq
	})

	c.JSON(http.StatusOK, gin.H{
		"rows":     filtered,
		"count":    len(filtered),
		"state":    state,
		"columns":  domain.Columns,
		"editable": domain.EditableColumns,
	})
}

// countersLocked tallies the working table. Caller holds s.mu.
func countersLocked(s *Server) comparer.Counters {
	return comparer.Count(s.session.WorkingRows())
}

// CountersHandler returns the live numbers over the whole working table,
// unaffected by filters.
// GET /api/counters
func (s *Server) CountersHandler(c *gin.Context) {
	s.mu.Lock()
	rows := s.session.WorkingRows()
	s.mu.Unlock()
	c.JSON(http.StatusOK, comparer.Count(rows))
}
