package config

import (
	"strings"

	"github.com/tturner/disgo/internal/dis/enums"
)

// EmitMeta holds per-PDU-type heartbeat defaults.
type EmitMeta struct {
	IntervalMs int
	Heartbeat  bool // sent periodically by simulations even without state change
}

// EmitMetaMap returns default send intervals for PDU types commonly emitted
// on a timer. Entity and emission heartbeats follow the 5 s DIS default.
func EmitMetaMap() map[enums.PduType]EmitMeta {
	return map[enums.PduType]EmitMeta{
		enums.PduTypeEntityState:             {IntervalMs: 5000, Heartbeat: true},
		enums.PduTypeEntityStateUpdate:       {IntervalMs: 5000, Heartbeat: true},
		enums.PduTypeElectromagneticEmission: {IntervalMs: 10000, Heartbeat: true},
		enums.PduTypeDesignator:              {IntervalMs: 5000, Heartbeat: true},
		enums.PduTypeTransmitter:             {IntervalMs: 2000, Heartbeat: true},
		enums.PduTypeReceiver:                {IntervalMs: 5000, Heartbeat: true},
		enums.PduTypeIFF:                     {IntervalMs: 10000, Heartbeat: true},
		enums.PduTypeAggregateState:          {IntervalMs: 30000, Heartbeat: true},
		enums.PduTypeMinefieldState:          {IntervalMs: 10000, Heartbeat: true},
		enums.PduTypeEnvironmentalProcess:    {IntervalMs: 15000, Heartbeat: true},
		enums.PduTypeAppearance:              {IntervalMs: 5000, Heartbeat: true},
		enums.PduTypeTSPI:                    {IntervalMs: 1000, Heartbeat: true},
		enums.PduTypeSignal:                  {IntervalMs: 20},
		enums.PduTypeFire:                    {IntervalMs: 1000},
		enums.PduTypeDetonation:              {IntervalMs: 1000},
		enums.PduTypeComment:                 {IntervalMs: 1000},
	}
}

// DefaultInterval returns the default interval for t, or 1000 ms for types
// with no entry.
func DefaultInterval(t enums.PduType) int {
	if m, ok := EmitMetaMap()[t]; ok {
		return m.IntervalMs
	}
	return 1000
}

// DefaultEmitProfiles returns the profiles written to a new config file.
func DefaultEmitProfiles() []EmitProfile {
	types := []enums.PduType{
		enums.PduTypeEntityState,
		enums.PduTypeTransmitter,
		enums.PduTypeElectromagneticEmission,
	}
	profiles := make([]EmitProfile, 0, len(types))
	for _, t := range types {
		profiles = append(profiles, EmitProfile{
			Name:       profileName(t),
			PduType:    uint8(t),
			IntervalMs: DefaultInterval(t),
		})
	}
	return profiles
}

// profileName turns "Entity State" into "entity_state".
func profileName(t enums.PduType) string {
	return strings.ReplaceAll(strings.ToLower(t.String()), " ", "_")
}

// FindEmitProfile returns the profile called name.
func (c *Config) FindEmitProfile(name string) (EmitProfile, bool) {
	for _, p := range c.Emit {
		if p.Name == name {
			return p, true
		}
	}
	return EmitProfile{}, false
}
