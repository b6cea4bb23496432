package types

type NavbarData struct {
	IsStaff    bool
	StaffEmail string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Notice string
	Error  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

// Pagination carries the fixed-page-size window the dashboard list pages use.
type Pagination struct {
	Page     int
	PageSize int
	Total    int
}

func NewPagination(page, pageSize, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if last := (Pagination{PageSize: pageSize, Total: total}).TotalPages(); page > last {
		page = last
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total}
}

func (p Pagination) TotalPages() int {
	if p.Total <= 0 || p.PageSize <= 0 {
		return 1
	}
	pages := (p.Total + p.PageSize - 1) / p.PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages() }
func (p Pagination) PrevPage() int { return p.Page - 1 }
func (p Pagination) NextPage() int { return p.Page + 1 }
