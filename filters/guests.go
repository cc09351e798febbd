package filters

import (
	"cmp"
	"slices"

	"hotel-pms/models"
)

type GuestSort string

const (
	GuestNameAsc     GuestSort = "name_asc"
	GuestNameDesc    GuestSort = "name_desc"
	GuestRecent      GuestSort = "recent"
	GuestSpendDesc   GuestSort = "spend_desc"
	GuestStaysDesc   GuestSort = "stays_desc"
	GuestCreatedDesc GuestSort = "created_desc"
)

var GuestSorts = []GuestSort{GuestNameAsc, GuestNameDesc, GuestRecent, GuestSpendDesc, GuestStaysDesc, GuestCreatedDesc}

func (s GuestSort) Valid() bool { return slices.Contains(GuestSorts, s) }

type GuestQuery struct {
	Search string    `form:"q"`
	Sort   GuestSort `form:"sort"`
	Page
}

// MatchGuest reports whether the guest's name, email or phone contains term.
func MatchGuest(g models.Guest, term string) bool {
	return containsFold(term, g.FullName, g.Email, g.PhoneNumber)
}

// SortGuests orders guests in place. Unknown keys fall back to name_asc.
func SortGuests(items []models.Guest, key GuestSort) {
	c := newCollator()
	slices.SortStableFunc(items, func(a, b models.Guest) int {
		var r int
		switch key {
		case GuestNameDesc:
			r = c.CompareString(b.FullName, a.FullName)
		case GuestRecent:
			r = compareVisits(a, b)
		case GuestSpendDesc:
			r = cmp.Compare(b.TotalSpend, a.TotalSpend)
		case GuestStaysDesc:
			r = cmp.Compare(b.TotalStays, a.TotalStays)
		case GuestCreatedDesc:
			r = b.CreatedAt.Compare(a.CreatedAt)
		default:
			r = c.CompareString(a.FullName, b.FullName)
		}
		if r != 0 {
			return r
		}
		return compareIDs(a.ID, b.ID)
	})
}

// compareVisits puts the most recent visit first and never-visited guests last.
func compareVisits(a, b models.Guest) int {
	switch {
	case a.LastVisitAt == nil && b.LastVisitAt == nil:
		return 0
	case a.LastVisitAt == nil:
		return 1
	case b.LastVisitAt == nil:
		return -1
	}
	return b.LastVisitAt.Compare(*a.LastVisitAt)
}

// ApplyGuests filters, sorts and paginates a full guest list.
func ApplyGuests(items []models.Guest, q GuestQuery) []models.Guest {
	out := make([]models.Guest, 0, len(items))
	for _, g := range items {
		if MatchGuest(g, q.Search) {
			out = append(out, g)
		}
	}
	SortGuests(out, q.Sort)
	return Paginate(out, q.Page)
}
