package paging

// Request carries the offset pagination parameters as they arrive at the API
// boundary. Page is 1-based there; repositories work with the 0-based offset.
type Request struct {
	Page int `form:"page,default=1"`
	Size int `form:"size,default=10"`
}

// MaxSize is the largest page size accepted at the boundary.
const MaxSize = 100

const DefaultSize = 10

// Normalize clamps missing or non-positive values to defaults. Sizes above
// MaxSize are rejected by the handler before this point.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Size < 1 {
		r.Size = DefaultSize
	}
	return r
}

// ZeroBasedPage is the internal page index.
func (r Request) ZeroBasedPage() int {
	return r.Page - 1
}

// Offset is the number of documents to skip.
func (r Request) Offset() int64 {
	return int64(r.Page-1) * int64(r.Size)
}

// Meta is the pagination block of a list response envelope.
type Meta struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// NewMeta computes pagination metadata for a 1-based page.
func NewMeta(page, size int, totalElements int64) Meta {
	totalPages := 0
	if size > 0 {
		totalPages = int((totalElements + int64(size) - 1) / int64(size))
	}
	return Meta{
		Page:          page,
		Size:          size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		HasNext:       page < totalPages,
		HasPrevious:   page > 1,
	}
}
