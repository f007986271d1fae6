package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/config"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/utils"
)

// FaceMatchThreshold is the largest descriptor distance still accepted as the same face.
const FaceMatchThreshold = 0.6

const (
	presentCutoff = 10*time.Hour + 15*time.Minute
	lateCutoff    = 10*time.Hour + 45*time.Minute
)

// StatusAt classifies a check-in by its IST wall clock, to the second.
// 10:15:00 is still Present and 10:45:00 is still Late.
func StatusAt(ist time.Time) attendance.Status {
	h, m, s := ist.Clock()
	sinceMidnight := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second

	switch {
	case sinceMidnight <= presentCutoff:
		return attendance.StatusPresent
	case sinceMidnight <= lateCutoff:
		return attendance.StatusLate
	default:
		return attendance.StatusLateAbsent
	}
}

func withinRadius(distanceKm, radiusKm float64) bool {
	return distanceKm <= radiusKm
}

// checkGeofence rejects a location farther than the configured radius from the office.
func checkGeofence(office config.OfficeConfig, loc attendance.Location) error {
	distance := utils.HaversineKm(loc.Lat, loc.Lng, office.Latitude, office.Longitude)
	if withinRadius(distance, office.RadiusKm) {
		return nil
	}
	return fmt.Errorf("%w: you are %.2fkm away. Your location: %.4f, %.4f",
		attendance.ErrOutOfRange, distance, loc.Lat, loc.Lng)
}

// verifyFace compares the supplied descriptor against the registered one.
func verifyFace(stored, supplied []float64) error {
	if len(stored) != len(supplied) {
		return fmt.Errorf("%w: descriptor has %d values, expected %d",
			attendance.ErrFaceMismatch, len(supplied), len(stored))
	}

	distance := utils.EuclideanDistance(stored, supplied)
	if distance > FaceMatchThreshold {
		return fmt.Errorf("%w: Match: %.1f%%", attendance.ErrFaceMismatch, 100-distance*100)
	}
	return nil
}
