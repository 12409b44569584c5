package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/interface/middleware"
	"github.com/oksasatya/fashion-studio/pkg/validation"
)

// SetupBinding installs the shared validation aliases on gin's validator.
func SetupBinding() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterAliases(v)
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}

func actorID(c *gin.Context) string { return c.GetString(middleware.CtxUserIDKey) }

// pageQuery is the paging query string shared by list endpoints.
type pageQuery struct {
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset         int    `form:"offset" binding:"omitempty,min=0"`
	SortBy         string `form:"sort_by"`
	SortOrder      string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	IncludeDeleted bool   `form:"include_deleted"`
}

func (p pageQuery) options() shared.QueryOptions {
	return shared.QueryOptions{
		IncludeDeleted: p.IncludeDeleted,
		Limit:          p.Limit,
		Offset:         p.Offset,
		SortBy:         p.SortBy,
		SortOrder:      shared.SortOrder(p.SortOrder),
	}
}

type pageMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func meta(total int, opts shared.QueryOptions) pageMeta {
	return pageMeta{Total: total, Limit: opts.Limit, Offset: opts.Offset}
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		badRequest(c, "invalid query", validation.ToDetails(err))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return def
}
