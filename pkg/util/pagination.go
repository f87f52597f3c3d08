package util

// Pagination 목록 화면 페이지 계산 결과
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	StartIndex int   `json:"start_index"` // 1-based, 항목이 없으면 0
	EndIndex   int   `json:"end_index"`   // 1-based, 항목이 없으면 0
}

// NewPagination 전체 건수와 페이지 크기로 페이지 범위를 계산한다.
// page가 범위를 벗어나면 마지막 페이지로 보정한다.
// 예: 전체 47건, 페이지당 20건, 3페이지 → 41~47번째, 총 3페이지.
func NewPagination(page, perPage int, totalCount int64) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}

	totalPages := int((totalCount + int64(perPage) - 1) / int64(perPage))
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	p := Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
	if totalCount > 0 {
		p.StartIndex = (page-1)*perPage + 1
		end := int64(page) * int64(perPage)
		if end > totalCount {
			end = totalCount
		}
		p.EndIndex = int(end)
	}
	return p
}

// Offset 데이터베이스 조회용 0-based 오프셋
func (p Pagination) Offset() int {
	if p.StartIndex == 0 {
		return 0
	}
	return p.StartIndex - 1
}
