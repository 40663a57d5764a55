package ward

import (
	"fmt"
	"sort"
	"strings"
)

// BedID identifies a physical bed. The same BedID may be listed under more
// than one ward when a bed is reachable from two corridors.
type BedID string

// Ward is a named group of beds displayed together. Bed order is the grid
// order.
type Ward struct {
	Name string  `json:"name" mapstructure:"name"`
	Beds []BedID `json:"beds" mapstructure:"beds"`
}

// Catalog is the fixed ward layout of a deployment. It is built once at
// process start and never mutated; accessors hand out copies.
type Catalog struct {
	wards  []Ward
	unique []BedID
	index  map[BedID][]string
}

// NewCatalog validates the declared wards and builds the lookup tables.
// Duplicate bed ids across (or within) wards are preserved in the ward
// listings and collapsed in AllBedIDs.
func NewCatalog(wards []Ward) (*Catalog, error) {
	c := &Catalog{index: make(map[BedID][]string)}
	seenWard := make(map[string]bool, len(wards))

	for i, w := range wards {
		name := strings.TrimSpace(w.Name)
		if name == "" {
			return nil, fmt.Errorf("ward %d: name is required", i)
		}
		if seenWard[name] {
			return nil, fmt.Errorf("ward %q declared twice", name)
		}
		seenWard[name] = true

		beds := make([]BedID, 0, len(w.Beds))
		for j, b := range w.Beds {
			id := BedID(strings.TrimSpace(string(b)))
			if id == "" {
				return nil, fmt.Errorf("ward %q: bed %d has an empty id", name, j)
			}
			beds = append(beds, id)
			if _, ok := c.index[id]; !ok {
				c.unique = append(c.unique, id)
			}
			if !containsString(c.index[id], name) {
				c.index[id] = append(c.index[id], name)
			}
		}
		c.wards = append(c.wards, Ward{Name: name, Beds: beds})
	}
	return c, nil
}

// MustCatalog is NewCatalog for static tables known to be valid.
func MustCatalog(wards []Ward) *Catalog {
	c, err := NewCatalog(wards)
	if err != nil {
		panic(err)
	}
	return c
}

// ListWards returns the wards in declared order with beds in declared order.
func (c *Catalog) ListWards() []Ward {
	out := make([]Ward, len(c.wards))
	for i, w := range c.wards {
		out[i] = Ward{Name: w.Name, Beds: append([]BedID(nil), w.Beds...)}
	}
	return out
}

// AllBedIDs returns every distinct bed id in first-appearance order.
func (c *Catalog) AllBedIDs() []BedID {
	return append([]BedID(nil), c.unique...)
}

// SortedBedIDs returns the distinct bed ids sorted for admin selection.
func (c *Catalog) SortedBedIDs() []BedID {
	out := c.AllBedIDs()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains reports whether the bed is listed in any ward.
func (c *Catalog) Contains(id BedID) bool {
	_, ok := c.index[id]
	return ok
}

// WardsFor returns the names of the wards listing the bed, in catalog order.
func (c *Catalog) WardsFor(id BedID) []string {
	return append([]string(nil), c.index[id]...)
}

// Len returns the number of distinct beds.
func (c *Catalog) Len() int {
	return len(c.unique)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
