package scheduler

import (
	"time"

	"go.uber.org/zap"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// ShiftCounters tallies the shift categories a rider has received within the
// current generation run. Counters never persist across runs.
type ShiftCounters struct {
	AM     int
	PM     int
	Double int
	Rest   int
}

// FairnessCounters holds per-rider counters for one run, keyed by rider ID.
type FairnessCounters map[uint]*ShiftCounters

func (f FairnessCounters) of(riderID uint) *ShiftCounters {
	c, ok := f[riderID]
	if !ok {
		c = &ShiftCounters{}
		f[riderID] = c
	}
	return c
}

// Input is the snapshot of storage state one generation run computes from.
// Brands must arrive ordered by name and riders in stable (ID) order; the
// engine never reorders them.
type Input struct {
	Riders []models.Rider
	Stores []models.Store
	Brands []models.ExternalBrand
	Manual []models.ScheduleAssignment
}

type manualKey struct {
	riderID uint
	date    string
}

type generator struct {
	in       Input
	groups   groups
	counters FairnessCounters
	manual   map[manualKey]struct{}
	pools    map[string][]models.Rider
	log      *zap.Logger
	out      []models.ScheduleAssignment
}

// Generate computes the full set of non-manual assignments for the window
// [start, start+days). It is a pure batch computation: counters and pools are
// scoped to this call, and the caller owns reconciliation against storage.
// With no active riders the result is empty.
func Generate(in Input, start time.Time, days int, log *zap.Logger) []models.ScheduleAssignment {
	if log == nil {
		log = zap.NewNop()
	}
	g := &generator{
		in:       in,
		groups:   classify(in.Riders, log),
		counters: make(FairnessCounters),
		manual:   make(map[manualKey]struct{}, len(in.Manual)),
		pools:    make(map[string][]models.Rider),
		log:      log,
	}
	for _, a := range in.Manual {
		g.manual[manualKey{a.RiderID, a.ShiftDate}] = struct{}{}
	}

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(models.DateLayout)
		weekday := isoWeekday(day)
		for _, store := range in.Stores {
			g.assignStore(store, date, weekday)
		}
		g.assignBrands(date, weekday)
	}
	return g.out
}

// isoWeekday maps time.Weekday to the ISO index used for day parity:
// 0 = Monday .. 6 = Sunday.
func isoWeekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func (g *generator) isManual(riderID uint, date string) bool {
	_, ok := g.manual[manualKey{riderID, date}]
	return ok
}

// assignStore covers one store for one day from its own PANPAYA roster.
// Even weekdays run a direct AM/PM pass; odd weekdays pick a rest rider
// first, then run the direct pass over whoever remains.
func (g *generator) assignStore(store models.Store, date string, weekday int) {
	var eligible []models.Rider
	for _, r := range g.groups.panpaya {
		if r.StoreID != nil && *r.StoreID == store.ID && !IsException(r) {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		return
	}

	if weekday%2 == 0 {
		g.assignAMPM(store, date, eligible)
		return
	}

	rest := g.leastLoaded(eligible, func(c *ShiftCounters) int { return c.Rest })
	if !g.isManual(rest.ID, date) {
		g.counters.of(rest.ID).Rest++
		g.emit(models.ScheduleAssignment{
			RiderID:   rest.ID,
			StoreID:   uintPtr(store.ID),
			ShiftDate: date,
			ShiftType: models.ShiftRest,
		})
	}
	// The rest rider leaves the AM/PM pool even when their row was
	// suppressed by a manual override.
	remaining := eligible[:0:0]
	for _, r := range eligible {
		if r.ID != rest.ID {
			remaining = append(remaining, r)
		}
	}
	if len(remaining) > 0 {
		g.assignAMPM(store, date, remaining)
	}
}

// assignAMPM picks the least-loaded AM and PM riders. When both picks land on
// the same rider a single "AM Y PM" double is emitted, unless that rider is
// manually overridden for the date, in which case the whole store/day is
// skipped.
func (g *generator) assignAMPM(store models.Store, date string, eligible []models.Rider) {
	am := g.leastLoaded(eligible, func(c *ShiftCounters) int { return c.AM })

	// The PM pick avoids the AM rider whenever an alternative exists; only a
	// one-rider roster collapses into a double shift.
	pmPool := eligible[:0:0]
	for _, r := range eligible {
		if r.ID != am.ID {
			pmPool = append(pmPool, r)
		}
	}
	pm := am
	if len(pmPool) > 0 {
		pm = g.leastLoaded(pmPool, func(c *ShiftCounters) int { return c.PM })
	}

	if am.ID == pm.ID {
		if g.isManual(am.ID, date) {
			return
		}
		g.counters.of(am.ID).Double++
		g.emit(models.ScheduleAssignment{
			RiderID:   am.ID,
			StoreID:   uintPtr(store.ID),
			ShiftDate: date,
			ShiftType: models.ShiftAMPM,
		})
		return
	}

	if !g.isManual(am.ID, date) {
		g.counters.of(am.ID).AM++
		g.emit(models.ScheduleAssignment{
			RiderID:   am.ID,
			StoreID:   uintPtr(store.ID),
			ShiftDate: date,
			ShiftType: models.ShiftAM,
		})
	}
	if !g.isManual(pm.ID, date) {
		g.counters.of(pm.ID).PM++
		g.emit(models.ScheduleAssignment{
			RiderID:   pm.ID,
			StoreID:   uintPtr(store.ID),
			ShiftDate: date,
			ShiftType: models.ShiftPM,
		})
	}
}

// leastLoaded returns the rider with the lowest counter value. Ties go to the
// first rider encountered in slice order, which is stable input order.
func (g *generator) leastLoaded(riders []models.Rider, count func(*ShiftCounters) int) models.Rider {
	best := riders[0]
	bestN := count(g.counters.of(best.ID))
	for _, r := range riders[1:] {
		if n := count(g.counters.of(r.ID)); n < bestN {
			best, bestN = r, n
		}
	}
	return best
}

// dayPool returns the rotation pool for a date, building it on first touch as
// a deduplicated ordered list: TC riders then FDS riders, first occurrence
// wins. A rider typed into both groups appears once.
func (g *generator) dayPool(date string) []models.Rider {
	if pool, ok := g.pools[date]; ok {
		return pool
	}
	seen := make(map[uint]struct{}, len(g.groups.fullTime)+len(g.groups.weekend))
	pool := make([]models.Rider, 0, len(g.groups.fullTime)+len(g.groups.weekend))
	for _, list := range [][]models.Rider{g.groups.fullTime, g.groups.weekend} {
		for _, r := range list {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			pool = append(pool, r)
		}
	}
	g.pools[date] = pool
	return pool
}

// assignBrands covers the external brands for one day from the shared TC/FDS
// pool, then hands every leftover pool member a DISPONIBLE row. FDS riders
// only work weekends. When the pool runs out of candidates the remaining
// brands stay uncovered for the day.
func (g *generator) assignBrands(date string, weekday int) {
	pool := g.dayPool(date)
	assigned := make(map[uint]struct{})

	for _, brand := range g.in.Brands {
		pick := -1
		for i, r := range pool {
			if _, done := assigned[r.ID]; done {
				continue
			}
			if IsException(r) || g.isManual(r.ID, date) {
				continue
			}
			if KindOf(r.RiderType) == KindWeekend && weekday < 5 {
				continue
			}
			pick = i
			break
		}
		if pick < 0 {
			break
		}
		r := pool[pick]
		assigned[r.ID] = struct{}{}
		// The AM counter doubles as a generic load tally for brand work.
		g.counters.of(r.ID).AM++
		g.emit(models.ScheduleAssignment{
			RiderID:         r.ID,
			ExternalBrandID: uintPtr(brand.ID),
			ShiftDate:       date,
			ShiftType:       models.ShiftExternal,
		})
		// Rotate to the back of the day's pool.
		pool = append(append(pool[:pick:pick], pool[pick+1:]...), r)
	}
	g.pools[date] = pool

	for _, r := range pool {
		if _, done := assigned[r.ID]; done {
			continue
		}
		if IsException(r) || g.isManual(r.ID, date) {
			continue
		}
		if KindOf(r.RiderType) == KindWeekend && weekday < 5 {
			continue
		}
		g.emit(models.ScheduleAssignment{
			RiderID:   r.ID,
			ShiftDate: date,
			ShiftType: models.ShiftAvailable,
		})
	}
}

func (g *generator) emit(a models.ScheduleAssignment) {
	g.out = append(g.out, a)
}

func uintPtr(v uint) *uint {
	return &v
}
