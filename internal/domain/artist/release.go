package artist

import "strconv"

// Release is album metadata reported by an external catalog.
type Release struct {
	Name        string // Album name
	ReleaseDate string // "2006", "2006-03" or "2006-03-21"; may be empty
}

// Year returns the release year, or 0 when the date carries none.
func (r Release) Year() int {
	if len(r.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(r.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
