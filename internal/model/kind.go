package model

import "fmt"

// ResourceKind identifies one of the site collections fetched per run.
type ResourceKind string

const (
	KindDevices     ResourceKind = "devices"
	KindDeviceStats ResourceKind = "device_stats"
	KindWLANs       ResourceKind = "wlans"
	KindBeacons     ResourceKind = "beacons"
	KindClients     ResourceKind = "clients"
)

// allKinds is the canonical order used for fetching, iteration and output.
var allKinds = [...]ResourceKind{
	KindDevices,
	KindDeviceStats,
	KindWLANs,
	KindBeacons,
	KindClients,
}

// kindPaths maps each kind to its path segment under /sites/<site_id>/.
var kindPaths = map[ResourceKind]string{
	KindDevices:     "devices",
	KindDeviceStats: "stats/devices",
	KindWLANs:       "wlans",
	KindBeacons:     "beacons",
	KindClients:     "stats/clients",
}

// AllKinds returns every resource kind in canonical order.
// The returned slice is a fresh copy.
func AllKinds() []ResourceKind {
	out := make([]ResourceKind, len(allKinds))
	copy(out, allKinds[:])
	return out
}

// Path returns the relative API path for the kind, or "" for an unknown kind.
func (k ResourceKind) Path() string {
	return kindPaths[k]
}

// Valid reports whether k is one of the known kinds.
func (k ResourceKind) Valid() bool {
	_, ok := kindPaths[k]
	return ok
}

func (k ResourceKind) String() string { return string(k) }

// index returns the canonical position of k, or -1.
func (k ResourceKind) index() int {
	for i, kk := range allKinds {
		if kk == k {
			return i
		}
	}
	return -1
}

// ParseResourceKind converts a canonical kind name into a ResourceKind.
func ParseResourceKind(s string) (ResourceKind, error) {
	k := ResourceKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown resource kind %q", s)
	}
	return k, nil
}
