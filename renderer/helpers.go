package renderer

// shortID keeps the first block of a uuid, enough to tell items apart on screen.
func shortID(id string) string {
	if len(id) == 36 && id[8] == '-' {
		return id[:8]
	}
	return id
}
