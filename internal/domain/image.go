package domain

// ImageRecord describes one image found on the target site. Nil fields were
// absent in the markup.
type ImageRecord struct {
	Src     *string `json:"src"`
	Alt     *string `json:"alt"`
	Title   *string `json:"title"`
	Caption *string `json:"legenda"`
}

// SameSource reports whether both records point at the same src, treating
// two missing attributes as equal.
func (r ImageRecord) SameSource(src *string) bool {
	if r.Src == nil || src == nil {
		return r.Src == nil && src == nil
	}
	return *r.Src == *src
}

// HasSource reports whether any record in images matches src.
func HasSource(images []ImageRecord, src *string) bool {
	for _, img := range images {
		if img.SameSource(src) {
			return true
		}
	}
	return false
}
