package models

// TripAnnotation holds user-entered notes and tags for one trip
type TripAnnotation struct {
	Notes string   `json:"notes" msgpack:"notes"`
	Tags  []string `json:"tags" msgpack:"tags"`
}

// HasTag reports whether the annotation carries tag
func (a TripAnnotation) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the annotation carries no notes and no tags
func (a TripAnnotation) IsEmpty() bool {
	return a.Notes == "" && len(a.Tags) == 0
}

// AnnotationRequest is the body of an annotation write
type AnnotationRequest struct {
	Notes string   `json:"notes" binding:"max=10000"`
	Tags  []string `json:"tags" binding:"max=64,dive,max=64"`
}
