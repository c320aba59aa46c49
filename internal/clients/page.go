package clients

// DefaultPageSize is the table's page size.
const DefaultPageSize = 10

// Page is one page of the view plus navigation state.
type Page struct {
	Records     []Client
	PageIndex   int
	PageCount   int
	PageSize    int
	Total       int
	CanPrevious bool
	CanNext     bool
}

// PageCount returns ceil(total/size), never less than 1.
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	n := (total + size - 1) / size
	if n < 1 {
		return 1
	}
	return n
}

// Paginate slices records into the page at pageIndex. An index outside
// [0, PageCount) resolves to the first page. A non-positive size falls back
// to DefaultPageSize.
func Paginate(records []Client, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	count := PageCount(len(records), pageSize)
	if pageIndex < 0 || pageIndex >= count {
		pageIndex = 0
	}
	start := pageIndex * pageSize
	end := min(start+pageSize, len(records))
	start = min(start, end)

	page := make([]Client, end-start)
	copy(page, records[start:end])
	return Page{
		Records:     page,
		PageIndex:   pageIndex,
		PageCount:   count,
		PageSize:    pageSize,
		Total:       len(records),
		CanPrevious: pageIndex > 0,
		CanNext:     pageIndex < count-1,
	}
}
