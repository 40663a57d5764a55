package bedstatus

import (
	"github.com/geims/bedboard/internal/domain/ward"
)

// Resolve computes the effective state of every distinct bed in the catalog.
//
// Beds without a record are VACANT with no patient. A record whose status is
// outside the closed set keeps its raw status string, is flagged Known=false
// and gets the VACANT styling. A bed listed under several wards yields one
// view. Resolve has no side effects and runs in time linear in the number of
// distinct beds.
func Resolve(catalog *ward.Catalog, snap Snapshot) map[ward.BedID]*ResolvedBedView {
	ids := catalog.AllBedIDs()
	views := make(map[ward.BedID]*ResolvedBedView, len(ids))
	for _, id := range ids {
		views[id] = resolveOne(id, snap)
	}
	return views
}

func resolveOne(id ward.BedID, snap Snapshot) *ResolvedBedView {
	rec, ok := snap[id]
	if !ok {
		return &ResolvedBedView{
			BedID:  id,
			Status: string(StatusVacant),
			Known:  true,
			Style:  palette[StatusVacant],
		}
	}

	v := &ResolvedBedView{BedID: id, Patient: rec.Patient, Style: StyleFor(rec.Status)}
	if s, known := ParseStatus(rec.Status); known {
		v.Status = string(s)
		v.Known = true
	} else {
		v.Status = rec.Status
	}
	return v
}

// Group lays the resolved views out ward by ward in catalog order. Every
// listing of a bed points at the same view.
func Group(catalog *ward.Catalog, views map[ward.BedID]*ResolvedBedView) []WardView {
	wards := catalog.ListWards()
	out := make([]WardView, 0, len(wards))
	for _, w := range wards {
		wv := WardView{Name: w.Name, Beds: make([]*ResolvedBedView, 0, len(w.Beds))}
		for _, id := range w.Beds {
			wv.Beds = append(wv.Beds, views[id])
		}
		out = append(out, wv)
	}
	return out
}

// Summarize counts distinct beds per status. Unknown statuses are counted
// under their raw value.
func Summarize(views map[ward.BedID]*ResolvedBedView) map[string]int {
	counts := make(map[string]int, len(allStatuses))
	for _, s := range allStatuses {
		counts[string(s)] = 0
	}
	for _, v := range views {
		counts[v.Status]++
	}
	return counts
}
