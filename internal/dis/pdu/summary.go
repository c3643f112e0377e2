package pdu

import (
	"fmt"
	"strings"

	"github.com/tturner/disgo/internal/dis/record"
)

// Summary describes p on one line: type, exercise, length, time stamp and,
// where the PDU names one, the entity it is about.
func Summary(p PDU) string {
	h := p.Header()
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%d) ex=%d len=%d ts=%s", p.Type(), uint8(p.Type()), h.ExerciseID, h.Length(), h.Timestamp)
	if !h.FamilyConsistent() {
		fmt.Fprintf(&b, " family=%d", uint8(h.ProtocolFamily()))
	}
	if id, ok := Subject(p); ok {
		fmt.Fprintf(&b, " entity=%s", id)
	}
	switch v := p.(type) {
	case *EntityState:
		fmt.Fprintf(&b, " marking=%q", v.Marking.Text())
	case *Detonation:
		fmt.Fprintf(&b, " result=%s", v.Result)
	case *Transmitter:
		fmt.Fprintf(&b, " freq=%d state=%s", v.Frequency, v.TransmitState)
	case *Signal:
		fmt.Fprintf(&b, " bits=%d", v.LengthBits)
	}
	return b.String()
}

// Subject returns the entity a PDU is primarily about, for PDU types that
// carry one.
func Subject(p PDU) (record.EntityID, bool) {
	switch v := p.(type) {
	case *EntityState:
		return v.EntityID, true
	case *EntityStateUpdate:
		return v.EntityID, true
	case *Fire:
		return v.FiringEntityID, true
	case *Detonation:
		return v.FiringEntityID, true
	case *Collision:
		return v.IssuingEntityID, true
	case *CollisionElastic:
		return v.IssuingEntityID, true
	case *DirectedEnergyFire:
		return v.FiringEntityID, true
	case *EntityDamageStatus:
		return v.DamagedEntityID, true
	case *ElectromagneticEmission:
		return v.EmittingEntityID, true
	case *Designator:
		return v.DesignatingEntityID, true
	case *IFF:
		return v.EmittingEntityID, true
	case *UnderwaterAcoustic:
		return v.EmittingEntityID, true
	case *SupplementalEmission:
		return v.OriginatingEntityID, true
	case *Transmitter:
		return v.RadioReferenceID, true
	case *Signal:
		return v.RadioReferenceID, true
	case *Receiver:
		return v.RadioReferenceID, true
	case *AggregateState:
		return v.AggregateID, true
	case *TSPI:
		return v.LiveEntityID, true
	case *Appearance:
		return v.LiveEntityID, true
	case *ArticulatedParts:
		return v.LiveEntityID, true
	case *LEFire:
		return v.FiringEntityID, true
	case *LEDetonation:
		return v.FiringEntityID, true
	}
	return record.EntityID{}, false
}

// SetSubject sets the entity a PDU is primarily about, the field Subject
// reads. It reports false for PDU types without one.
func SetSubject(p PDU, id record.EntityID) bool {
	switch v := p.(type) {
	case *EntityState:
		v.EntityID = id
	case *EntityStateUpdate:
		v.EntityID = id
	case *Fire:
		v.FiringEntityID = id
	case *Detonation:
		v.FiringEntityID = id
	case *Collision:
		v.IssuingEntityID = id
	case *CollisionElastic:
		v.IssuingEntityID = id
	case *DirectedEnergyFire:
		v.FiringEntityID = id
	case *EntityDamageStatus:
		v.DamagedEntityID = id
	case *ElectromagneticEmission:
		v.EmittingEntityID = id
	case *Designator:
		v.DesignatingEntityID = id
	case *IFF:
		v.EmittingEntityID = id
	case *UnderwaterAcoustic:
		v.EmittingEntityID = id
	case *SupplementalEmission:
		v.OriginatingEntityID = id
	case *Transmitter:
		v.RadioReferenceID = id
	case *Signal:
		v.RadioReferenceID = id
	case *Receiver:
		v.RadioReferenceID = id
	case *AggregateState:
		v.AggregateID = id
	case *TSPI:
		v.LiveEntityID = id
	case *Appearance:
		v.LiveEntityID = id
	case *ArticulatedParts:
		v.LiveEntityID = id
	case *LEFire:
		v.FiringEntityID = id
	case *LEDetonation:
		v.FiringEntityID = id
	default:
		return false
	}
	return true
}
