package request

// ByIDRequest is the common binding for endpoints addressed by a numeric id
// path parameter.
type ByIDRequest struct {
	ID int `uri:"id" binding:"min=0"`
}

// ListParams is the common paging binding for list endpoints.
type ListParams struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Normalize applies the default paging window.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
}
