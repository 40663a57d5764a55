package bedstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geims/bedboard/internal/domain/ward"
)

func TestResolve_EmptyStoreIsAllVacant(t *testing.T) {
	views := Resolve(testCatalog(), Snapshot{})

	require.Len(t, views, 4)
	for id, v := range views {
		assert.Equal(t, id, v.BedID)
		assert.Equal(t, "VACANT", v.Status)
		assert.Equal(t, "", v.Patient)
		assert.True(t, v.Known)
		assert.Equal(t, palette[StatusVacant], v.Style)
	}
}

func TestResolve_NilSnapshot(t *testing.T) {
	views := Resolve(testCatalog(), nil)
	assert.Len(t, views, 4)
	assert.Equal(t, "VACANT", views["SICU-1"].Status)
}

func TestResolve_RecordsAndUnknownStatus(t *testing.T) {
	snap := Snapshot{
		"MICU-1":   {Status: "CRITICAL", Patient: "R. Sharma"},
		"MICU-2":   {Status: "ISOLATION", Patient: "K. Das"},
		"SICU-1":   {Status: "VENTILATOR_ON"},
		"ORPHAN-9": {Status: "OCCUPIED", Patient: "ghost"},
	}
	views := Resolve(testCatalog(), snap)

	require.Len(t, views, 4, "records outside the catalog are not displayed")
	assert.Equal(t, &ResolvedBedView{
		BedID: "MICU-1", Status: "CRITICAL", Patient: "R. Sharma", Known: true, Style: palette[StatusCritical],
	}, views["MICU-1"])

	unknown := views["MICU-2"]
	assert.Equal(t, "ISOLATION", unknown.Status)
	assert.False(t, unknown.Known)
	assert.Equal(t, "K. Das", unknown.Patient)
	assert.Equal(t, palette[StatusVacant], unknown.Style)

	assert.Equal(t, "VENTILATOR ON", views["SICU-1"].Status)
	assert.True(t, views["SICU-1"].Known)
}

func TestGroup_SharedBedIsOneView(t *testing.T) {
	cat := testCatalog()
	views := Resolve(cat, Snapshot{"SHARED-1": {Status: "BOOKED", Patient: "A"}})
	wards := Group(cat, views)

	require.Len(t, wards, 2)
	assert.Equal(t, "MICU", wards[0].Name)
	assert.Equal(t, "SICU", wards[1].Name)

	ids := func(w WardView) []ward.BedID {
		out := make([]ward.BedID, 0, len(w.Beds))
		for _, b := range w.Beds {
			out = append(out, b.BedID)
		}
		return out
	}
	assert.Equal(t, []ward.BedID{"MICU-1", "MICU-2", "SHARED-1"}, ids(wards[0]))
	assert.Equal(t, []ward.BedID{"SICU-1", "SHARED-1"}, ids(wards[1]))

	assert.Same(t, wards[0].Beds[2], wards[1].Beds[1])
	assert.Equal(t, "BOOKED", wards[1].Beds[1].Status)
}

func TestSummarize_CountsDistinctBeds(t *testing.T) {
	views := Resolve(testCatalog(), Snapshot{
		"SHARED-1": {Status: "OCCUPIED"},
		"MICU-1":   {Status: "OCCUPIED"},
		"MICU-2":   {Status: "ISOLATION"},
	})
	summary := Summarize(views)

	assert.Equal(t, 2, summary["OCCUPIED"])
	assert.Equal(t, 1, summary["VACANT"])
	assert.Equal(t, 1, summary["ISOLATION"])
	assert.Equal(t, 0, summary["CRITICAL"])
	for _, s := range AllStatuses() {
		_, ok := summary[string(s)]
		assert.True(t, ok, "summary missing %s", s)
	}
}

func TestResolve_DefaultCatalogSize(t *testing.T) {
	cat := ward.DefaultCatalog()
	views := Resolve(cat, nil)
	assert.Len(t, views, cat.Len())
}

func TestResolve_CanonicalStatusRoundTrips(t *testing.T) {
	for _, s := range allStatuses {
		views := Resolve(testCatalog(), Snapshot{"MICU-1": {Status: string(s), Patient: "P"}})
		v := views["MICU-1"]
		assert.Equal(t, string(s), v.Status)
		assert.Equal(t, "P", v.Patient)
		assert.True(t, v.Known)
	}
}

func TestResolve_StoredAliasShownCanonical(t *testing.T) {
	views := Resolve(testCatalog(), Snapshot{
		"MICU-1": {Status: "TO_DISCHARGE", Patient: "N. Roy"},
		"MICU-2": {Status: "to discharge"},
	})

	assert.Equal(t, "TO DISCHARGE", views["MICU-1"].Status)
	assert.Equal(t, "N. Roy", views["MICU-1"].Patient)
	assert.Equal(t, palette[StatusToDischarge], views["MICU-1"].Style)

	assert.Equal(t, "to discharge", views["MICU-2"].Status, "matching is case-sensitive")
	assert.False(t, views["MICU-2"].Known)
}
