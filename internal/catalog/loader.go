package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape.
type catalogFile struct {
	Satellites []SatelliteRecord `yaml:"satellites"`
}

// LoadFile reads a YAML catalog file and returns its records together with a
// checksum of the raw file content. Records that carry TLE lines but no
// position get a geodetic state derived once via SGP4 at load time; this is
// the only place the module touches orbital mechanics.
func LoadFile(path string) ([]SatelliteRecord, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read catalog file %s: %w", path, err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	now := time.Now().UTC()
	for i := range f.Satellites {
		r := &f.Satellites[i]
		if r.ID == "" {
			return nil, "", fmt.Errorf("catalog file %s: satellite %d has no id", path, i)
		}
		if r.TLE1 != "" && r.TLE2 != "" && r.Position == (Position{}) {
			deriveGeodetic(r, now)
		}
	}

	sum := sha256.Sum256(data)
	return f.Satellites, hex.EncodeToString(sum[:]), nil
}

// deriveGeodetic fills Position, Altitude, and Velocity from the record's TLE
// lines, propagated to t. go-satellite works in kilometres.
func deriveGeodetic(r *SatelliteRecord, t time.Time) {
	sat := satellite.TLEToSat(r.TLE1, r.TLE2, satellite.GravityWGS72)

	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, velECI := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)

	alt, _, llRad := satellite.ECIToLLA(posECI, gmst)
	llDeg := satellite.LatLongDeg(llRad)

	r.Position = Position{Lat: llDeg.Latitude, Lng: llDeg.Longitude}
	r.Altitude = alt
	r.Velocity = vectorMagnitude(velECI)
}

func vectorMagnitude(v satellite.Vector3) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
