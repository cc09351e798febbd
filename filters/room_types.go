package filters

import (
	"cmp"
	"slices"

	"hotel-pms/models"
)

type RoomTypeSort string

const (
	RoomTypeNameAsc      RoomTypeSort = "name_asc"
	RoomTypeNameDesc     RoomTypeSort = "name_desc"
	RoomTypePriceAsc     RoomTypeSort = "price_asc"
	RoomTypePriceDesc    RoomTypeSort = "price_desc"
	RoomTypeCapacityDesc RoomTypeSort = "capacity_desc"
)

var RoomTypeSorts = []RoomTypeSort{RoomTypeNameAsc, RoomTypeNameDesc, RoomTypePriceAsc, RoomTypePriceDesc, RoomTypeCapacityDesc}

func (s RoomTypeSort) Valid() bool { return slices.Contains(RoomTypeSorts, s) }

type RoomTypeQuery struct {
	Search string       `form:"q"`
	Sort   RoomTypeSort `form:"sort"`
	Page
}

func MatchRoomType(rt models.RoomType, term string) bool {
	return containsFold(term, rt.Name, rt.Description)
}

func SortRoomTypes(items []models.RoomType, key RoomTypeSort) {
	c := newCollator()
	slices.SortStableFunc(items, func(a, b models.RoomType) int {
		var r int
		switch key {
		case RoomTypeNameDesc:
			r = c.CompareString(b.Name, a.Name)
		case RoomTypePriceAsc:
			r = cmp.Compare(a.PricePerNight, b.PricePerNight)
		case RoomTypePriceDesc:
			r = cmp.Compare(b.PricePerNight, a.PricePerNight)
		case RoomTypeCapacityDesc:
			r = cmp.Compare(b.Capacity, a.Capacity)
		default:
			r = c.CompareString(a.Name, b.Name)
		}
		if r != 0 {
			return r
		}
		return compareIDs(a.ID, b.ID)
	})
}

func ApplyRoomTypes(items []models.RoomType, q RoomTypeQuery) []models.RoomType {
	out := make([]models.RoomType, 0, len(items))
	for _, rt := range items {
		if MatchRoomType(rt, q.Search) {
			out = append(out, rt)
		}
	}
	SortRoomTypes(out, q.Sort)
	return Paginate(out, q.Page)
}
