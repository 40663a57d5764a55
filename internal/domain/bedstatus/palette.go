package bedstatus

// Style is the card color pair for a status.
type Style struct {
	Background string `json:"background"`
	Text       string `json:"text"`
}

var palette = map[Status]Style{
	StatusVacant:       {Background: "#FFFFFF", Text: "black"},
	StatusOccupied:     {Background: "#000000", Text: "white"},
	StatusBooked:       {Background: "#90EE90", Text: "black"},
	StatusShifting:     {Background: "#FFA500", Text: "black"},
	StatusVentilatorOn: {Background: "#1E90FF", Text: "white"},
	StatusCritical:     {Background: "#B22222", Text: "white"},
	StatusToDischarge:  {Background: "#ADD8E6", Text: "black"},
	StatusMaintenance:  {Background: "#E0E0E0", Text: "black"},
}

// StyleFor returns the card colors for a stored status string. Values outside
// the closed set get the VACANT styling.
func StyleFor(raw string) Style {
	if s, ok := ParseStatus(raw); ok {
		return palette[s]
	}
	return palette[StatusVacant]
}

// PaletteEntry is one row of the published palette.
type PaletteEntry struct {
	Status Status `json:"status"`
	Style
}

// Palette returns the styling table in selection order.
func Palette() []PaletteEntry {
	out := make([]PaletteEntry, 0, len(allStatuses))
	for _, s := range allStatuses {
		out = append(out, PaletteEntry{Status: s, Style: palette[s]})
	}
	return out
}
