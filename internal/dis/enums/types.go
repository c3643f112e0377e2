package enums

import "fmt"

// ForceID is the side an entity belongs to.
type ForceID uint8

const (
	ForceOther    ForceID = 0
	ForceFriendly ForceID = 1
	ForceOpposing ForceID = 2
	ForceNeutral  ForceID = 3
)

// Codes 4..30 repeat Friendly/Opposing/Neutral for sides 2 through 10.
var forceIDNames = func() map[ForceID]string {
	m := map[ForceID]string{
		ForceOther:    "Other",
		ForceFriendly: "Friendly",
		ForceOpposing: "Opposing",
		ForceNeutral:  "Neutral",
	}
	sides := []string{"Friendly", "Opposing", "Neutral"}
	for n := 2; n <= 10; n++ {
		for i, s := range sides {
			m[ForceID(3*(n-1)+1+i)] = fmt.Sprintf("%s %d", s, n)
		}
	}
	return m
}()

func (f ForceID) String() string { return lookup(forceIDNames, f) }
func (f ForceID) IsKnown() bool  { return known(forceIDNames, f) }

// EntityKind is the first field of an entity type record.
type EntityKind uint8

const (
	EntityKindOther           EntityKind = 0
	EntityKindPlatform        EntityKind = 1
	EntityKindMunition        EntityKind = 2
	EntityKindLifeForm        EntityKind = 3
	EntityKindEnvironmental   EntityKind = 4
	EntityKindCulturalFeature EntityKind = 5
	EntityKindSupply          EntityKind = 6
	EntityKindRadio           EntityKind = 7
	EntityKindExpendable      EntityKind = 8
	EntityKindSensorEmitter   EntityKind = 9
)

var entityKindNames = map[EntityKind]string{
	EntityKindOther:           "Other",
	EntityKindPlatform:        "Platform",
	EntityKindMunition:        "Munition",
	EntityKindLifeForm:        "Life form",
	EntityKindEnvironmental:   "Environmental",
	EntityKindCulturalFeature: "Cultural feature",
	EntityKindSupply:          "Supply",
	EntityKindRadio:           "Radio",
	EntityKindExpendable:      "Expendable",
	EntityKindSensorEmitter:   "Sensor/Emitter",
}

func (k EntityKind) String() string { return lookup(entityKindNames, k) }
func (k EntityKind) IsKnown() bool  { return known(entityKindNames, k) }

// Domain is the platform domain of an entity type.
type Domain uint8

const (
	DomainOther      Domain = 0
	DomainLand       Domain = 1
	DomainAir        Domain = 2
	DomainSurface    Domain = 3
	DomainSubsurface Domain = 4
	DomainSpace      Domain = 5
)

var domainNames = map[Domain]string{
	DomainOther:      "Other",
	DomainLand:       "Land",
	DomainAir:        "Air",
	DomainSurface:    "Surface",
	DomainSubsurface: "Subsurface",
	DomainSpace:      "Space",
}

func (d Domain) String() string { return lookup(domainNames, d) }
func (d Domain) IsKnown() bool  { return known(domainNames, d) }

// DeadReckoningAlgorithm selects how receivers extrapolate entity motion.
type DeadReckoningAlgorithm uint8

const (
	DeadReckoningOther  DeadReckoningAlgorithm = 0
	DeadReckoningStatic DeadReckoningAlgorithm = 1
	DeadReckoningFPW    DeadReckoningAlgorithm = 2
	DeadReckoningRPW    DeadReckoningAlgorithm = 3
	DeadReckoningRVW    DeadReckoningAlgorithm = 4
	DeadReckoningFVW    DeadReckoningAlgorithm = 5
	DeadReckoningFPB    DeadReckoningAlgorithm = 6
	DeadReckoningRPB    DeadReckoningAlgorithm = 7
	DeadReckoningRVB    DeadReckoningAlgorithm = 8
	DeadReckoningFVB    DeadReckoningAlgorithm = 9
)

var deadReckoningNames = map[DeadReckoningAlgorithm]string{
	DeadReckoningOther:  "Other",
	DeadReckoningStatic: "Static",
	DeadReckoningFPW:    "DRM(F, P, W)",
	DeadReckoningRPW:    "DRM(R, P, W)",
	DeadReckoningRVW:    "DRM(R, V, W)",
	DeadReckoningFVW:    "DRM(F, V, W)",
	DeadReckoningFPB:    "DRM(F, P, B)",
	DeadReckoningRPB:    "DRM(R, P, B)",
	DeadReckoningRVB:    "DRM(R, V, B)",
	DeadReckoningFVB:    "DRM(F, V, B)",
}

func (a DeadReckoningAlgorithm) String() string { return lookup(deadReckoningNames, a) }
func (a DeadReckoningAlgorithm) IsKnown() bool  { return known(deadReckoningNames, a) }

// VariableParameterType is the discriminator of a 16-byte variable parameter record.
type VariableParameterType uint8

const (
	VariableParameterArticulatedPart   VariableParameterType = 0
	VariableParameterAttachedPart      VariableParameterType = 1
	VariableParameterSeparation        VariableParameterType = 2
	VariableParameterEntityType        VariableParameterType = 3
	VariableParameterEntityAssociation VariableParameterType = 4
)

var variableParameterNames = map[VariableParameterType]string{
	VariableParameterArticulatedPart:   "Articulated Part",
	VariableParameterAttachedPart:      "Attached Part",
	VariableParameterSeparation:        "Separation",
	VariableParameterEntityType:        "Entity Type",
	VariableParameterEntityAssociation: "Entity Association",
}

func (v VariableParameterType) String() string { return lookup(variableParameterNames, v) }
func (v VariableParameterType) IsKnown() bool  { return known(variableParameterNames, v) }

// DetonationResult describes what a detonation did.
type DetonationResult uint8

const (
	DetonationResultOther                     DetonationResult = 0
	DetonationResultEntityImpact              DetonationResult = 1
	DetonationResultEntityProximateDetonation DetonationResult = 2
	DetonationResultGroundImpact              DetonationResult = 3
	DetonationResultGroundProximateDetonation DetonationResult = 4
	DetonationResultDetonation                DetonationResult = 5
	DetonationResultNoneOrDud                 DetonationResult = 6
	DetonationResultHEHitSmall                DetonationResult = 7
	DetonationResultHEHitMedium               DetonationResult = 8
	DetonationResultHEHitLarge                DetonationResult = 9
	DetonationResultArmorPiercingHit          DetonationResult = 10
	DetonationResultAirHit                    DetonationResult = 17
	DetonationResultAirBurst                  DetonationResult = 22
)

var detonationResultNames = map[DetonationResult]string{
	DetonationResultOther:                     "Other",
	DetonationResultEntityImpact:              "Entity Impact",
	DetonationResultEntityProximateDetonation: "Entity Proximate Detonation",
	DetonationResultGroundImpact:              "Ground Impact",
	DetonationResultGroundProximateDetonation: "Ground Proximate Detonation",
	DetonationResultDetonation:                "Detonation",
	DetonationResultNoneOrDud:                 "None or No Detonation (Dud)",
	DetonationResultHEHitSmall:                "HE hit, small",
	DetonationResultHEHitMedium:               "HE hit, medium",
	DetonationResultHEHitLarge:                "HE hit, large",
	DetonationResultArmorPiercingHit:          "Armor-piercing hit",
	DetonationResultAirHit:                    "Air hit",
	DetonationResultAirBurst:                  "Air burst",
}

func (d DetonationResult) String() string { return lookup(detonationResultNames, d) }
func (d DetonationResult) IsKnown() bool  { return known(detonationResultNames, d) }

// CollisionType distinguishes elastic and inelastic collisions.
type CollisionType uint8

const (
	CollisionInelastic CollisionType = 0
	CollisionElastic   CollisionType = 1
	CollisionBoom      CollisionType = 55
)

var collisionTypeNames = map[CollisionType]string{
	CollisionInelastic: "Inelastic",
	CollisionElastic:   "Elastic",
	CollisionBoom:      "Boom Nozzle Has Cleared the Receiver's Refueling Receptacle",
}

func (c CollisionType) String() string { return lookup(collisionTypeNames, c) }
func (c CollisionType) IsKnown() bool  { return known(collisionTypeNames, c) }

// ServiceType is requested in a Service Request PDU.
type ServiceType uint8

const (
	ServiceTypeOther                       ServiceType = 0
	ServiceTypeResupply                    ServiceType = 1
	ServiceTypeRepair                      ServiceType = 2
	ServiceTypeAerialRefuelingHighFidelity ServiceType = 3
	ServiceTypeAerialRefuelingLowFidelity  ServiceType = 4
)

var serviceTypeNames = map[ServiceType]string{
	ServiceTypeOther:                       "Other",
	ServiceTypeResupply:                    "Resupply",
	ServiceTypeRepair:                      "Repair",
	ServiceTypeAerialRefuelingHighFidelity: "Aerial Refueling High Fidelity",
	ServiceTypeAerialRefuelingLowFidelity:  "Aerial Refueling Low Fidelity",
}

func (s ServiceType) String() string { return lookup(serviceTypeNames, s) }
func (s ServiceType) IsKnown() bool  { return known(serviceTypeNames, s) }

// RepairResult is reported in a Repair Response PDU.
type RepairResult uint8

const (
	RepairResultOther              RepairResult = 0
	RepairResultEnded              RepairResult = 1
	RepairResultInvalid            RepairResult = 2
	RepairResultInterrupted        RepairResult = 3
	RepairResultCanceledBySupplier RepairResult = 4
)

var repairResultNames = map[RepairResult]string{
	RepairResultOther:              "Other",
	RepairResultEnded:              "Repair Ended",
	RepairResultInvalid:            "Invalid Repair",
	RepairResultInterrupted:        "Repair Interrupted",
	RepairResultCanceledBySupplier: "Service Canceled By The Supplier",
}

func (r RepairResult) String() string { return lookup(repairResultNames, r) }
func (r RepairResult) IsKnown() bool  { return known(repairResultNames, r) }
