package think

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/relations"
	"github.com/pthm-cable/ethosim/traits"
	"github.com/pthm-cable/ethosim/world"
)

// weightedUtility blends the considerations behind a candidate's
// utility score (e.g. DrinkWater's thirst/distance terms) via a
// weighted mean, rather than a hand-rolled weighted sum.
func weightedUtility(values, weights []float64) float32 {
	return float32(stat.Mean(values, weights))
}

// utilityFloor discards any candidate whose utility falls below this,
// so a species' action menu never picks a near-zero option over doing
// nothing (§4.6).
const utilityFloor = 0.05

// candidate is one scored menu entry for an entity's next action.
type candidate struct {
	kind       components.ActionKind
	utility    float32
	targetTile components.Tile
	hasTile    bool
	target     ecs.Entity
	hasTarget  bool
}

// Planner evaluates the action menu for drained entities and installs
// the winning choice as ActiveAction (§4.6).
type Planner struct {
	Grid       *world.Grid
	Vegetation *world.VegetationGrid
	Spatial    *world.SpatialIndex
	Rand       *rand.Rand
}

// NewPlanner builds a planner wired to the shared world resources.
func NewPlanner(grid *world.Grid, veg *world.VegetationGrid, spatial *world.SpatialIndex, rng *rand.Rand) *Planner {
	return &Planner{Grid: grid, Vegetation: veg, Spatial: spatial, Rand: rng}
}

// Plan evaluates e's action menu and, if the winning candidate beats
// the currently running action (or none is running), installs it as
// ActiveAction. tick is the current simulation tick, used to stamp
// StartedTick.
func (p *Planner) Plan(w *ecs.World, e ecs.Entity, tick uint64) {
	speciesMap := ecs.NewMap1[components.Species](w)
	if !speciesMap.Has(e) {
		return
	}
	species := *speciesMap.Get(e)
	profile := traits.ProfileFor(species.String())

	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	if !cfgMap.Has(e) {
		return
	}
	cfg := *cfgMap.Get(e)

	posMap := ecs.NewMap1[components.TilePosition](w)
	if !posMap.Has(e) {
		return
	}
	pos := posMap.Get(e).Tile

	best := p.evaluateMenu(w, e, species, profile, cfg, pos)
	if best == nil {
		return
	}

	activeMap := ecs.NewMap1[components.ActiveAction](w)
	if activeMap.Has(e) {
		current := activeMap.Get(e)
		if current.Kind == best.kind {
			return
		}
		if best.utility <= current.Utility+cfg.PreemptionMargin {
			return
		}
		p.clearAction(w, e)
	}

	next := components.ActiveAction{
		Kind:        best.kind,
		Phase:       components.PhaseNeedPath,
		Priority:    pathPriorityFor(best.kind),
		Utility:     best.utility,
		StartedTick: tick,
	}
	if best.hasTile {
		next.TargetTile = best.targetTile
	}
	if best.hasTarget {
		next.TargetEntity = best.target
	}
	if best.kind == components.ActionMate && !best.hasTile {
		// Freshly chosen Mate candidate: establish the bidirectional
		// pair now, at a meeting tile midway between the two, so the
		// action has somewhere concrete to path toward.
		meeting := meetingTileBetween(w, e, best.target, pos)
		relations.EstablishMate(w, e, best.target, meeting, tick)
		next.TargetTile = meeting
	}
	if best.kind == components.ActionRest {
		// Rest has no path phase: it is stationary from the start.
		next.Phase = components.PhaseActing
	}
	activeMap.Add(e, &next)
}

// clearAction removes ActiveAction and any transient path components,
// so a fresh request can be issued cleanly (§4.6 cancellation rule).
func (p *Planner) clearAction(w *ecs.World, e ecs.Entity) {
	ecs.NewMap1[components.ActiveAction](w).Remove(e)
	if m := ecs.NewMap1[components.PathRequested](w); m.Has(e) {
		m.Remove(e)
	}
	if m := ecs.NewMap1[components.PathReady](w); m.Has(e) {
		m.Remove(e)
	}
	if m := ecs.NewMap1[components.PathFailed](w); m.Has(e) {
		m.Remove(e)
	}
}

// meetingTileBetween picks the midpoint tile between the suitor's
// current position and the partner's, falling back to the suitor's own
// tile if the partner's position is unavailable.
func meetingTileBetween(w *ecs.World, suitor, partner ecs.Entity, suitorTile components.Tile) components.Tile {
	posMap := ecs.NewMap1[components.TilePosition](w)
	if !posMap.Has(partner) {
		return suitorTile
	}
	partnerTile := posMap.Get(partner).Tile
	return components.Tile{X: (suitorTile.X + partnerTile.X) / 2, Y: (suitorTile.Y + partnerTile.Y) / 2}
}

func pathPriorityFor(kind components.ActionKind) components.Priority {
	switch kind {
	case components.ActionFlee:
		return components.Urgent
	case components.ActionWander:
		return components.Lazy
	case components.ActionRest:
		return components.Normal
	default:
		return components.Normal
	}
}

func (p *Planner) evaluateMenu(w *ecs.World, e ecs.Entity, species components.Species, profile traits.Profile, cfg components.BehaviorConfig, pos components.Tile) *candidate {
	var candidates []candidate

	if c := p.scoreWander(cfg, pos); c != nil {
		candidates = append(candidates, *c)
	}
	if c := p.scoreRest(w, e, cfg); c != nil {
		candidates = append(candidates, *c)
	}
	if c := p.scoreDrinkWater(w, e, cfg, pos); c != nil {
		candidates = append(candidates, *c)
	}
	if profile.Traits.Has(traits.Herbivore) {
		if c := p.scoreGraze(w, e, cfg, pos); c != nil {
			candidates = append(candidates, *c)
		}
	}
	if profile.Traits.Has(traits.Carnivore) {
		if c := p.scoreHunt(w, e, species, cfg, pos); c != nil {
			candidates = append(candidates, *c)
		}
	}
	if c := p.scoreFlee(w, e, cfg, pos); c != nil {
		candidates = append(candidates, *c)
	}
	if c := p.scoreMate(w, e, species, cfg, pos); c != nil {
		candidates = append(candidates, *c)
	}

	var best *candidate
	for i := range candidates {
		c := &candidates[i]
		// Wander is the designated always-available fallback and is
		// exempt from the floor: its baseline utility (0.01) is
		// intentionally below it, so something is still picked when no
		// other need clears the floor.
		if c.kind != components.ActionWander && c.utility < utilityFloor {
			continue
		}
		if best == nil || c.utility > best.utility {
			best = c
		}
	}
	return best
}

func normalized(v float32) float32 {
	return v / 100
}

func inverseDistance(dist int32) float32 {
	if dist < 0 {
		return 0
	}
	return 1 / float32(1+dist)
}

func (p *Planner) scoreWander(cfg components.BehaviorConfig, pos components.Tile) *candidate {
	dx := int32(0)
	dy := int32(0)
	if cfg.WanderRadius > 0 {
		dx = p.randRange(cfg.WanderRadius)
		dy = p.randRange(cfg.WanderRadius)
	}
	target := components.Tile{X: pos.X + dx, Y: pos.Y + dy}
	return &candidate{kind: components.ActionWander, utility: 0.01, targetTile: target, hasTile: true}
}

func (p *Planner) randRange(radius int32) int32 {
	if p.Rand == nil {
		return 0
	}
	return p.Rand.Int31n(2*radius+1) - radius
}

func (p *Planner) scoreRest(w *ecs.World, e ecs.Entity, cfg components.BehaviorConfig) *candidate {
	energyMap := ecs.NewMap1[components.Energy](w)
	if !energyMap.Has(e) {
		return nil
	}
	energy := energyMap.Get(e).Value
	if energy >= cfg.RestTarget {
		return nil
	}
	deficit := (cfg.RestTarget - energy) / 100
	return &candidate{kind: components.ActionRest, utility: 0.2 + 0.3*deficit}
}

func (p *Planner) scoreDrinkWater(w *ecs.World, e ecs.Entity, cfg components.BehaviorConfig, pos components.Tile) *candidate {
	thirstMap := ecs.NewMap1[components.Thirst](w)
	if !thirstMap.Has(e) {
		return nil
	}
	thirst := thirstMap.Get(e).Value
	if thirst <= 0 || p.Grid == nil {
		return nil
	}
	target, dist, ok := p.Grid.NearestWaterAdjacentWithin(pos, cfg.WaterSearchRadius)
	if !ok {
		return nil
	}
	utility := weightedUtility([]float64{float64(normalized(thirst)), float64(inverseDistance(dist))}, []float64{0.7, 0.3})
	return &candidate{kind: components.ActionDrinkWater, utility: utility, targetTile: target, hasTile: true}
}

func (p *Planner) scoreGraze(w *ecs.World, e ecs.Entity, cfg components.BehaviorConfig, pos components.Tile) *candidate {
	hungerMap := ecs.NewMap1[components.Hunger](w)
	if !hungerMap.Has(e) {
		return nil
	}
	hunger := hungerMap.Get(e).Value
	if hunger <= 0 || p.Vegetation == nil {
		return nil
	}
	cell, ok := p.Vegetation.FindBestCellWithin(pos, cfg.FoodSearchRadius)
	if !ok {
		return nil
	}
	dist := cell.ChebyshevDist(pos)
	utility := weightedUtility([]float64{float64(normalized(hunger)), float64(inverseDistance(dist))}, []float64{0.6, 0.4})
	return &candidate{kind: components.ActionGraze, utility: utility, targetTile: cell, hasTile: true}
}

func (p *Planner) scoreHunt(w *ecs.World, e ecs.Entity, species components.Species, cfg components.BehaviorConfig, pos components.Tile) *candidate {
	hungerMap := ecs.NewMap1[components.Hunger](w)
	if !hungerMap.Has(e) || p.Spatial == nil {
		return nil
	}
	hunger := hungerMap.Get(e).Value
	if hunger < cfg.HungerThresholdNormal {
		return nil
	}

	prey := p.Spatial.EntitiesInRadius(pos, cfg.HuntSearchRadius, func(s components.Species) bool {
		return preyOf(species, s)
	})
	if len(prey) == 0 {
		return nil
	}

	posMap := ecs.NewMap1[components.TilePosition](w)
	var closest ecs.Entity
	bestDist := int32(-1)
	for _, candidateEntity := range prey {
		if !posMap.Has(candidateEntity) {
			continue
		}
		d := posMap.Get(candidateEntity).Tile.ChebyshevDist(pos)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			closest = candidateEntity
		}
	}
	if bestDist < 0 {
		return nil
	}

	utility := weightedUtility([]float64{float64(normalized(hunger)), float64(inverseDistance(bestDist))}, []float64{0.5, 0.5})
	utility += relations.PackHuntingBonus(w, e, closest)
	if utility > 1 {
		utility = 1
	}
	return &candidate{kind: components.ActionHunt, utility: utility, target: closest, hasTarget: true}
}

// preyOf reports whether prey is a valid hunting target for predator,
// based on each species' trait roster: carnivores hunt herbivore/omnivore
// species that are not themselves.
func preyOf(predator, prey components.Species) bool {
	if predator == prey {
		return false
	}
	preyProfile := traits.ProfileFor(prey.String())
	return preyProfile.Traits.Has(traits.Herbivore)
}

func (p *Planner) scoreFlee(w *ecs.World, e ecs.Entity, cfg components.BehaviorConfig, pos components.Tile) *candidate {
	fearMap := ecs.NewMap1[components.FearState](w)
	if !fearMap.Has(e) {
		return nil
	}
	fear := fearMap.Get(e)
	if fear.Level <= 0 || fear.NearbyPredators == 0 {
		return nil
	}

	target := fleeTarget(p.Spatial, pos, cfg.SightRadius)
	utility := fear.Level * (0.5 + 0.1*float32(fear.NearbyPredators))
	utility -= relations.HerdSafetyBonus(w, e)
	utility -= relations.WarrenDefenceBonus(w, e)
	if utility > 1 {
		utility = 1
	}
	if utility < 0 {
		utility = 0
	}
	return &candidate{kind: components.ActionFlee, utility: utility, targetTile: target, hasTile: true}
}

// fleeTarget finds the nearest predator within sightRadius and returns
// the tile sightRadius away from pos in the opposite direction, so
// fleeing actually increases distance from the threat (§4.8). With no
// predator in sight it falls back to stepping east.
func fleeTarget(spatial *world.SpatialIndex, pos components.Tile, sightRadius int32) components.Tile {
	if sightRadius <= 0 {
		sightRadius = 1
	}

	dx, dy := int32(1), int32(0)
	if spatial != nil {
		predators := spatial.EntitiesInRadius(pos, sightRadius, func(s components.Species) bool {
			return traits.ProfileFor(s.String()).Traits.Has(traits.Carnivore)
		})
		bestDist := int32(-1)
		var nearest components.Tile
		found := false
		for _, p := range predators {
			t, ok := spatial.TileOf(p)
			if !ok {
				continue
			}
			d := t.ChebyshevDist(pos)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				nearest = t
				found = true
			}
		}
		if found {
			dx, dy = directionAway(pos, nearest)
		}
	}

	return components.Tile{X: pos.X + dx*sightRadius, Y: pos.Y + dy*sightRadius}
}

// directionAway returns a unit-ish step (-1, 0, or 1 per axis) pointing
// from threat toward pos, defaulting to east when the two tiles
// coincide so the result is never the zero vector.
func directionAway(pos, threat components.Tile) (int32, int32) {
	dx, dy := pos.X-threat.X, pos.Y-threat.Y
	dx = sign(dx)
	dy = sign(dy)
	if dx == 0 && dy == 0 {
		dx = 1
	}
	return dx, dy
}

func sign(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func (p *Planner) scoreMate(w *ecs.World, e ecs.Entity, species components.Species, cfg components.BehaviorConfig, pos components.Tile) *candidate {
	activeMateMap := ecs.NewMap1[components.ActiveMate](w)
	if activeMateMap.Has(e) {
		return &candidate{kind: components.ActionMate, utility: 1.0, target: activeMateMap.Get(e).Partner, hasTarget: true, targetTile: activeMateMap.Get(e).MeetingTile, hasTile: true}
	}

	sexMap := ecs.NewMap1[components.Sex](w)
	if !sexMap.Has(e) || *sexMap.Get(e) != components.Female {
		return nil
	}
	cooldownMap := ecs.NewMap1[components.ReproductionCooldown](w)
	if cooldownMap.Has(e) && cooldownMap.Get(e).TicksRemaining > 0 {
		return nil
	}
	pregMap := ecs.NewMap1[components.Pregnancy](w)
	if pregMap.Has(e) {
		return nil
	}
	streakMap := ecs.NewMap1[components.WellFedStreak](w)
	repro := ecs.NewMap1[components.ReproductionConfig](w)
	if !streakMap.Has(e) || !repro.Has(e) {
		return nil
	}
	streak := streakMap.Get(e).Ticks
	rcfg := repro.Get(e)
	if streak < rcfg.WellFedStreakReq {
		return nil
	}

	if p.Spatial == nil {
		return nil
	}
	males := p.Spatial.EntitiesInRadius(pos, cfg.MatingSearchRadius, func(s components.Species) bool {
		return s == species
	})
	posMap := ecs.NewMap1[components.TilePosition](w)
	var partner ecs.Entity
	bestDist := int32(-1)
	for _, m := range males {
		if m == e || !sexMap.Has(m) || *sexMap.Get(m) != components.Male {
			continue
		}
		if activeMateMap.Has(m) {
			continue
		}
		if !posMap.Has(m) {
			continue
		}
		d := posMap.Get(m).Tile.ChebyshevDist(pos)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			partner = m
		}
	}
	if bestDist < 0 {
		return nil
	}

	utility := 0.4 + 0.2*inverseDistance(bestDist)
	return &candidate{kind: components.ActionMate, utility: utility, target: partner, hasTarget: true}
}
