package services

import "grestaurants/entity"

const PageSize = 9

// Page is one window of the ordered restaurant set.
type Page struct {
	Items      []entity.Restaurant `json:"items"`
	PageIndex  int                 `json:"pageIndex"`
	TotalPages int                 `json:"totalPages"`
	HasNext    bool                `json:"hasNext"`
	HasPrev    bool                `json:"hasPrev"`
	NextPage   int                 `json:"nextPage"`
	PrevPage   int                 `json:"prevPage"`
	AllPages   []int               `json:"allPages"` // 1-based labels
}

// Paginate cuts the window for pageIndex out of all. An index past the end
// yields an empty window, a negative one is a ValidationError.
func Paginate(all []entity.Restaurant, pageIndex int) (*Page, error) {
	if pageIndex < 0 {
		return nil, Validation("invalid page index %d", pageIndex)
	}

	total := len(all)
	totalPages := (total + PageSize - 1) / PageSize

	items := []entity.Restaurant{}
	if pageIndex < totalPages {
		start := pageIndex * PageSize
		end := min(start+PageSize, total)
		items = all[start:end]
	}

	labels := make([]int, max(totalPages, 1))
	for i := range labels {
		labels[i] = i + 1
	}

	return &Page{
		Items:      items,
		PageIndex:  pageIndex,
		TotalPages: totalPages,
		// the first page always offers "next"
		HasNext:  pageIndex == 0 || pageIndex < totalPages-1,
		HasPrev:  pageIndex > 0,
		NextPage: pageIndex + 1,
		PrevPage: pageIndex - 1,
		AllPages: labels,
	}, nil
}
