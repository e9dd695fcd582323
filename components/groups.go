package components

import "github.com/mlange-42/ark/ecs"

// GroupType distinguishes the species-specific flavor of a group.
type GroupType uint8

const (
	GroupPack  GroupType = iota // Wolves
	GroupHerd                   // Deer, Rabbits
	GroupWarren                 // Raccoons
)

// GroupFormationConfig opts a species into the generic group
// formation/cohesion passes.
type GroupFormationConfig struct {
	Enabled               bool
	Type                  GroupType
	MinSize               int
	MaxSize               int
	FormationRadius       int32
	CohesionRadius        int32
	CheckIntervalTicks    int32
	ReformationCooldownTicks int32

	// ticksUntilNextCheck and cooldownRemaining are owned by the
	// formation system only.
	ticksUntilNextCheck int32
	cooldownRemaining   int32
}

// DueForCheck reports whether a formation/cohesion pass should run this
// tick, and decrements the internal counter.
func (c *GroupFormationConfig) DueForCheck() bool {
	if c.cooldownRemaining > 0 {
		c.cooldownRemaining--
		return false
	}
	c.ticksUntilNextCheck--
	if c.ticksUntilNextCheck <= 0 {
		c.ticksUntilNextCheck = c.CheckIntervalTicks
		return true
	}
	return false
}

// StartCooldown begins the reformation cooldown after a dissolution.
func (c *GroupFormationConfig) StartCooldown() {
	c.cooldownRemaining = c.ReformationCooldownTicks
}

// GroupLeader marks an entity as the leader of a formed group. Members
// are non-owning references; the leader does not own its members'
// lifetimes.
type GroupLeader struct {
	Members    []ecs.Entity
	FormedTick uint64
	Type       GroupType
}

// GroupMember marks an entity as belonging to a group led by Leader.
type GroupMember struct {
	Leader    ecs.Entity
	JoinedTick uint64
	Type       GroupType
}
