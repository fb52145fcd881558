package domain

// Volume is the engine's volume summary.
type Volume struct {
	Name       string            `json:"Name"`
	Driver     string            `json:"Driver"`
	Mountpoint string            `json:"Mountpoint"`
	CreatedAt  string            `json:"CreatedAt,omitempty"`
	Scope      string            `json:"Scope"`
	Labels     map[string]string `json:"Labels"`
	UsageData  *VolumeUsage      `json:"UsageData,omitempty"`
}

// VolumeUsage is only populated by engines that compute disk usage; -1 means
// the value was not computed.
type VolumeUsage struct {
	RefCount int64 `json:"RefCount"`
	Size     int64 `json:"Size"`
}

// InUse reports whether at least one container references the volume.
func (v Volume) InUse() bool {
	return v.UsageData != nil && v.UsageData.RefCount > 0
}
