package ward

// DefaultWards is the GEIMS ICU/HDU layout served when no catalog file is
// configured.
func DefaultWards() []Ward {
	return []Ward{
		{
			Name: "8th Floor - RICU / MICU / SICU",
			Beds: []BedID{
				"B-ICU-20", "B-ICU-17", "B-ICU-18", "MICU-1", "MICU-2", "MICU-3", "MICU-4", "MICU-5",
				"SICU-1", "SICU-2", "SICU-3", "SICU-4", "SICU-5", "RICU-1", "RICU-2", "RICU-3", "RICU-4",
				"RICU-5", "B-ICU-31", "B-ICU-27",
			},
		},
		{
			Name: "8th Floor - Respiratory ICU",
			Beds: []BedID{
				"ICU-8F-1", "ICU-8F-2", "ICU-8F-3", "ICU-8F-4", "ICU-8F-5", "ICU-8F-6", "ICU-8F-7",
				"ICU-8F-8", "ICU-8F-9", "ICU-8F-10",
			},
		},
		{
			Name: "8th Floor - Neuro SICU & HDU",
			Beds: []BedID{
				"N-SICU-1", "N-SICU-2", "N-SICU-3", "N-SICU-4", "N-SICU-5", "N-SICU-6", "N-SICU-7",
				"N-SICU-8", "N-SICU-9", "N-SICU-10", "N-SICU-11", "N-SICU-12", "N-SICU-13", "N-SICU-14",
				"N-SICU-15", "GF-Neuro-HDU-1", "GF-Neuro-HDU-2", "GF-Neuro-HDU-3", "GF-Neuro-HDU-4",
				"GF-Neuro-HDU-5", "GF-Neuro-HDU-6", "GF-Neuro-HDU-7", "GF-Neuro-HDU-8", "GF-Neuro-HDU-9",
				"GF-Neuro-HDU-10", "GF-Neuro-HDU-11", "GF-Neuro-HDU-12", "GF-Neuro-HDU-16",
				"GF-Neuro-HDU-14", "GF-Neuro-HDU-15",
			},
		},
		{
			Name: "6th Floor - Ayushman ICU (PMJAY)",
			Beds: []BedID{
				"PMJAY-1", "PMJAY-2", "PMJAY-3", "PMJAY-4", "PMJAY-5", "PMJAY-6", "PMJAY-7", "PMJAY-8",
				"ICU-9", "PMJAY-9", "PMJAY-10", "PMJAY-11", "PMJAY-12", "PMJAY-13", "PMJAY-14", "PMJAY-15",
				"PMJAY-16", "PMJAY-17", "PMJAY-18", "PMJAY-19", "PMJAY-20", "PMJAY-21", "PMJAY-22",
				"PMJAY-23", "PMJAY-24",
			},
		},
		{
			Name: "4th Floor - CCU / CTVS / SICU 2",
			Beds: []BedID{
				"ccu-121", "B-CCU-1", "B-CCU-2", "B-CCU-3", "B-CCU-4", "B-CCU-5", "B-CCU-6", "B-CCU-7",
				"B-CCU-8", "B-CCU-9", "B-CCU-10", "B-CCU-11", "B-CCU-12", "B-CCU-16", "B-CCU-14",
				"B-CCU-15", "CTVS-1", "CTVS-2", "CTVS-3", "CTVS-4", "CTVS-5", "CTVS-6", "CTVS-7", "CTVS-8",
				"CTVS-9", "CTVS-10", "CCU-2-1", "CCU-2-2", "CCU-2-3", "CCU-2-4", "CCU-2-5", "CCU-2-6",
				"CCU-2-7", "CCU-2-8", "CCU-2-9", "CCU-2-10", "SICU-2-1", "SICU-2-2", "SICU-2-3",
				"SICU-2-4", "SICU-2-5", "SICU-2-6", "SICU-2-7", "SICU-2-8", "Burn-ICU-1", "Burn-ICU-2",
			},
		},
		{
			Name: "3rd Floor - PICU",
			Beds: []BedID{
				"PICU-1", "PICU-2", "PICU-3", "PICU-4", "PICU-5", "PICU-6", "PICU-7",
			},
		},
	}
}

// DefaultCatalog returns the catalog built from DefaultWards.
func DefaultCatalog() *Catalog {
	return MustCatalog(DefaultWards())
}
