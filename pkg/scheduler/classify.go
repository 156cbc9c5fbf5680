package scheduler

import (
	"strings"

	"go.uber.org/zap"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// RiderKind is the closed classification of the free-text rider_type column.
type RiderKind int

const (
	KindUnknown RiderKind = iota
	KindPanpaya
	KindFullTime
	KindWeekend
	KindExternal
)

// KindOf maps a raw rider_type value to its kind. Matching is
// case-insensitive; anything outside the known labels is KindUnknown.
func KindOf(riderType string) RiderKind {
	switch strings.ToUpper(strings.TrimSpace(riderType)) {
	case "PANPAYA":
		return KindPanpaya
	case "TC", "TIEMPO_COMPLETO":
		return KindFullTime
	case "FDS", "FIN_DE_SEMANA":
		return KindWeekend
	case "EXTERNO":
		return KindExternal
	default:
		return KindUnknown
	}
}

// Leave keywords matched against the rider observation field.
var leaveKeywords = []string{"VACACIONES", "INCAPACIDAD", "LICENCIA", "PERMISO"}

// IsException reports whether the rider's observation marks them on leave.
// Exception riders are excluded from every generated assignment for the run.
func IsException(r models.Rider) bool {
	if r.Observation == nil {
		return false
	}
	obs := strings.ToUpper(*r.Observation)
	for _, kw := range leaveKeywords {
		if strings.Contains(obs, kw) {
			return true
		}
	}
	return false
}

// groups partitions the active riders for one generation run. Slice order is
// input order; the engine relies on it for deterministic tie-breaking.
type groups struct {
	panpaya  []models.Rider
	fullTime []models.Rider
	weekend  []models.Rider
}

// classify splits riders by kind. When no TC riders exist the EXTERNO riders
// stand in for the full-time group (never both). Unknown kinds are skipped
// and produce no assignments.
func classify(riders []models.Rider, log *zap.Logger) groups {
	var g groups
	var external []models.Rider
	for _, r := range riders {
		switch KindOf(r.RiderType) {
		case KindPanpaya:
			g.panpaya = append(g.panpaya, r)
		case KindFullTime:
			g.fullTime = append(g.fullTime, r)
		case KindWeekend:
			g.weekend = append(g.weekend, r)
		case KindExternal:
			external = append(external, r)
		default:
			log.Warn("rider type not recognized, rider will receive no assignments",
				zap.Uint("rider_id", r.ID),
				zap.String("rider_type", r.RiderType))
		}
	}
	if len(g.fullTime) == 0 {
		g.fullTime = external
	}
	return g
}
