package models

// PageResult 分页结果，hasMore 表示后面还有数据
type PageResult struct {
	Items   interface{} `json:"items"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	HasMore bool        `json:"hasMore"`
}

// NewPageResult 创建一个新的分页结果对象
func NewPageResult(items interface{}, total int64, page, limit, returned int) PageResult {
	offset := (page - 1) * limit
	return PageResult{
		Items:   items,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: int64(offset+returned) < total,
	}
}
