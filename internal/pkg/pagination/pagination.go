package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultSize = 50
	MaxSize     = 200
)

// Params is a 1-based page/size pair parsed from list endpoint queries.
type Params struct {
	Page int
	Size int
}

func FromQuery(c *gin.Context) Params {
	return Parse(c.Query("page"), c.Query("size"))
}

func Parse(pageStr, sizeStr string) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Params{Page: page, Size: size}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

func (p Params) Limit() int {
	return p.Size
}

// Page is the envelope every list endpoint returns.
type Page struct {
	Items any   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func NewPage(items any, params Params, total int64) *Page {
	pages := int64(0)
	if total > 0 {
		pages = (total + int64(params.Size) - 1) / int64(params.Size)
	}
	return &Page{
		Items: items,
		Page:  params.Page,
		Size:  params.Size,
		Total: total,
		Pages: pages,
	}
}
