package domain

// Image is the engine's image summary. RepoTags is nil for untagged images.
type Image struct {
	ID          string            `json:"Id"`
	ParentID    string            `json:"ParentId"`
	RepoTags    []string          `json:"RepoTags"`
	RepoDigests []string          `json:"RepoDigests"`
	Size        int64             `json:"Size"`    // bytes
	Created     int64             `json:"Created"` // epoch seconds
	Containers  int64             `json:"Containers"`
	Labels      map[string]string `json:"Labels"`
}

const noneTag = "<none>:<none>"

// Untagged reports whether the image has no usable repository tag.
func (i Image) Untagged() bool {
	for _, tag := range i.RepoTags {
		if tag != "" && tag != noneTag {
			return false
		}
	}
	return true
}

// PullProgress is one event read from the engine's pull stream. Events are
// consumed internally; callers of the pull endpoint only see the outcome.
type PullProgress struct {
	ID      string
	Status  string
	Current int64
	Total   int64
}
