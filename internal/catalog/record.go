// Package catalog holds the in-memory satellite catalog: the record model,
// a concurrency-safe store with change notifications, a YAML file loader,
// and a file watcher that keeps the store fresh.
package catalog

// Position is a geodetic point in degrees.
type Position struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Dimensions describes the physical envelope of a satellite in metres.
type Dimensions struct {
	Length float64 `yaml:"length" json:"length"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// CameraHints are optional presentation defaults for framing a satellite.
type CameraHints struct {
	Bearing     float64 `yaml:"bearing" json:"bearing"`
	Zoom        float64 `yaml:"zoom" json:"zoom"`
	Pitch       float64 `yaml:"pitch" json:"pitch"`
	ScaleFactor float64 `yaml:"scale_factor" json:"scaleFactor"`
}

// SatelliteRecord is one catalog entry. Records are owned by the store and
// treated as immutable by every consumer; queries and filters copy slices of
// records but never mutate them.
type SatelliteRecord struct {
	ID            string       `yaml:"id" json:"id"`
	Name          string       `yaml:"name" json:"name"`
	Shortname     string       `yaml:"shortname,omitempty" json:"shortname,omitempty"`
	AlternateName string       `yaml:"alternate_name,omitempty" json:"alternateName,omitempty"`
	Category      string       `yaml:"category" json:"category"`
	Position      Position     `yaml:"position" json:"position"`
	Altitude      float64      `yaml:"altitude" json:"altitude"`
	Velocity      float64      `yaml:"velocity" json:"velocity"`
	Dimensions    Dimensions   `yaml:"dimensions" json:"dimensions"`
	TLE1          string       `yaml:"tle1,omitempty" json:"tle1,omitempty"`
	TLE2          string       `yaml:"tle2,omitempty" json:"tle2,omitempty"`
	Image         string       `yaml:"image,omitempty" json:"image,omitempty"`
	Camera        *CameraHints `yaml:"camera,omitempty" json:"camera,omitempty"`
}
