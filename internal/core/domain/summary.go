package domain

// Summary aggregates the four resource lists for the dashboard landing page.
type Summary struct {
	Containers ContainerCounts `json:"containers"`
	Images     ImageCounts     `json:"images"`
	Volumes    VolumeCounts    `json:"volumes"`
	Networks   NetworkCounts   `json:"networks"`
}

type ContainerCounts struct {
	Total   int `json:"total"`
	Running int `json:"running"`
	Stopped int `json:"stopped"`
	Paused  int `json:"paused"`
}

type ImageCounts struct {
	Total    int   `json:"total"`
	Untagged int   `json:"untagged"`
	Size     int64 `json:"size"`
}

type VolumeCounts struct {
	Total int `json:"total"`
	InUse int `json:"inUse"`
}

type NetworkCounts struct {
	Total   int `json:"total"`
	Default int `json:"default"`
	Custom  int `json:"custom"`
}

// Summarize counts the given lists. Stopped means exited, which is what the
// dashboard shows as stopped.
func Summarize(containers []Container, images []Image, volumes []Volume, networks []Network) Summary {
	var s Summary

	s.Containers.Total = len(containers)
	for _, c := range containers {
		switch c.State {
		case StateRunning:
			s.Containers.Running++
		case StateExited:
			s.Containers.Stopped++
		case StatePaused:
			s.Containers.Paused++
		}
	}

	s.Images.Total = len(images)
	for _, img := range images {
		if img.Untagged() {
			s.Images.Untagged++
		}
		s.Images.Size += img.Size
	}

	s.Volumes.Total = len(volumes)
	for _, v := range volumes {
		if v.InUse() {
			s.Volumes.InUse++
		}
	}

	s.Networks.Total = len(networks)
	for _, n := range networks {
		if n.IsDefault() {
			s.Networks.Default++
		}
	}
	s.Networks.Custom = s.Networks.Total - s.Networks.Default

	return s
}
