package formupload

// Preview is the image shown on a create/edit form: the stored remote
// image until a new file is chosen, then the local selection. Clearing the
// selection goes back to the stored image.
type Preview struct {
	Original string
	Local    string
}

// Choose records a locally selected file (an object or data URL).
func (p *Preview) Choose(localURL string) { p.Local = localURL }

// Clear drops the local selection.
func (p *Preview) Clear() { p.Local = "" }

// URL is the image to display, or "" for none.
func (p Preview) URL() string {
	if p.Local != "" {
		return p.Local
	}
	return p.Original
}

// Pending reports a new file waiting to be uploaded.
func (p Preview) Pending() bool { return p.Local != "" }
