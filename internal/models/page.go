package models

// Pagination defaults; offset/size paging with a hard maximum to bound
// query cost. Both are overridable through configuration.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageSpec is an offset/size page request
type PageSpec struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// Normalized returns a copy clamped to sane bounds: page >= 1, size in
// [1, max], falling back to def when size is unset.
func (p PageSpec) Normalized(def, max int) PageSpec {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = def
	}
	if p.Size > max {
		p.Size = max
	}
	return p
}

// Offset returns the row offset for the page
func (p PageSpec) Offset() int {
	return (p.Page - 1) * p.Size
}
