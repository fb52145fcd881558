package domain

import "time"

// Network is the engine's network summary.
type Network struct {
	ID         string            `json:"Id"`
	Name       string            `json:"Name"`
	Driver     string            `json:"Driver"`
	Scope      string            `json:"Scope"`
	Internal   bool              `json:"Internal"`
	Attachable bool              `json:"Attachable"`
	EnableIPv6 bool              `json:"EnableIPv6"`
	Created    time.Time         `json:"Created"`
	Labels     map[string]string `json:"Labels"`
}

// DefaultBridgeLabel marks the engine's own bridge network.
const DefaultBridgeLabel = "com.docker.network.bridge.default_bridge"

var predefinedNetworks = map[string]bool{
	"bridge": true,
	"host":   true,
	"none":   true,
}

// IsDefault reports whether the network is one the engine creates itself.
// Such networks cannot be removed, so the dashboard hides the remove action.
func (n Network) IsDefault() bool {
	return predefinedNetworks[n.Name] || n.Labels[DefaultBridgeLabel] == "true"
}
