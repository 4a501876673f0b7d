// Package types provides shared HTTP request/response types
package types

// PageQuery common pagination query parameters
type PageQuery struct {
	Current int `form:"current" json:"current"`
	Size    int `form:"size" json:"size"`
}

// ApplyDefaults clamps pagination to sane bounds
func (p *PageQuery) ApplyDefaults() {
	if p.Current <= 0 {
		p.Current = 1
	}
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
}

// Offset converts page number to a row offset
func (p *PageQuery) Offset() int {
	return (p.Current - 1) * p.Size
}

// PageMeta pagination metadata returned with list responses
type PageMeta struct {
	Total   int64 `json:"total"`
	Size    int   `json:"size"`
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
}

// NewPageMeta derives page count from a total row count
func NewPageMeta(total int64, current, size int) PageMeta {
	pages := int(total) / size
	if int(total)%size > 0 {
		pages++
	}
	return PageMeta{
		Total:   total,
		Size:    size,
		Current: current,
		Pages:   pages,
	}
}
