// Package enums maps DIS wire codes to named values (SISO-REF-010).
//
// Every enumerated field is a named integer type of its wire width. The
// numeric value is the wire code, so conversion in either direction cannot
// fail and codes missing from the tables survive a round trip unchanged.
package enums

import "fmt"

type code interface {
	~uint8 | ~uint16 | ~uint32
}

func lookup[T code](names map[T]string, v T) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%d)", uint32(v))
}

func known[T code](names map[T]string, v T) bool {
	_, ok := names[v]
	return ok
}

// ProtocolVersion identifies the DIS revision a PDU was built against.
type ProtocolVersion uint8

const (
	ProtocolVersionOther            ProtocolVersion = 0
	ProtocolVersionDIS1992          ProtocolVersion = 1
	ProtocolVersionIEEE1278_1993    ProtocolVersion = 2
	ProtocolVersionDIS2ThirdDraft   ProtocolVersion = 3
	ProtocolVersionDIS2FourthDraft  ProtocolVersion = 4
	ProtocolVersionIEEE1278_1_1995  ProtocolVersion = 5
	ProtocolVersionIEEE1278_1A_1998 ProtocolVersion = 6
	ProtocolVersionIEEE1278_1_2012  ProtocolVersion = 7
)

var protocolVersionNames = map[ProtocolVersion]string{
	ProtocolVersionOther:            "Other",
	ProtocolVersionDIS1992:          "DIS PDU version 1.0 (May 92)",
	ProtocolVersionIEEE1278_1993:    "IEEE 1278-1993",
	ProtocolVersionDIS2ThirdDraft:   "DIS PDU version 2.0 - third draft (May 93)",
	ProtocolVersionDIS2FourthDraft:  "DIS PDU version 2.0 - fourth draft (revised) March 16, 1994",
	ProtocolVersionIEEE1278_1_1995:  "IEEE 1278.1-1995",
	ProtocolVersionIEEE1278_1A_1998: "IEEE 1278.1A-1998",
	ProtocolVersionIEEE1278_1_2012:  "IEEE 1278.1-2012",
}

func (v ProtocolVersion) String() string { return lookup(protocolVersionNames, v) }
func (v ProtocolVersion) IsKnown() bool  { return known(protocolVersionNames, v) }

// ProtocolFamily groups related PDU types.
type ProtocolFamily uint8

const (
	FamilyOther                           ProtocolFamily = 0
	FamilyEntityInformation               ProtocolFamily = 1
	FamilyWarfare                         ProtocolFamily = 2
	FamilyLogistics                       ProtocolFamily = 3
	FamilyRadioCommunications             ProtocolFamily = 4
	FamilySimulationManagement            ProtocolFamily = 5
	FamilyDistributedEmissionRegeneration ProtocolFamily = 6
	FamilyEntityManagement                ProtocolFamily = 7
	FamilyMinefield                       ProtocolFamily = 8
	FamilySyntheticEnvironment            ProtocolFamily = 9
	FamilySimulationManagementReliability ProtocolFamily = 10
	FamilyLiveEntity                      ProtocolFamily = 11
	FamilyNonRealTime                     ProtocolFamily = 12
	FamilyInformationOperations           ProtocolFamily = 13
)

var protocolFamilyNames = map[ProtocolFamily]string{
	FamilyOther:                           "Other",
	FamilyEntityInformation:               "Entity Information/Interaction",
	FamilyWarfare:                         "Warfare",
	FamilyLogistics:                       "Logistics",
	FamilyRadioCommunications:             "Radio Communications",
	FamilySimulationManagement:            "Simulation Management",
	FamilyDistributedEmissionRegeneration: "Distributed Emission Regeneration",
	FamilyEntityManagement:                "Entity Management",
	FamilyMinefield:                       "Minefield",
	FamilySyntheticEnvironment:            "Synthetic Environment",
	FamilySimulationManagementReliability: "Simulation Management with Reliability",
	FamilyLiveEntity:                      "Live Entity Information/Interaction",
	FamilyNonRealTime:                     "Non-Real-Time Protocol",
	FamilyInformationOperations:           "Information Operations",
}

func (f ProtocolFamily) String() string { return lookup(protocolFamilyNames, f) }
func (f ProtocolFamily) IsKnown() bool  { return known(protocolFamilyNames, f) }

// PduType selects the body layout that follows the header.
type PduType uint8

const (
	PduTypeOther                       PduType = 0
	PduTypeEntityState                 PduType = 1
	PduTypeFire                        PduType = 2
	PduTypeDetonation                  PduType = 3
	PduTypeCollision                   PduType = 4
	PduTypeServiceRequest              PduType = 5
	PduTypeResupplyOffer               PduType = 6
	PduTypeResupplyReceived            PduType = 7
	PduTypeResupplyCancel              PduType = 8
	PduTypeRepairComplete              PduType = 9
	PduTypeRepairResponse              PduType = 10
	PduTypeCreateEntity                PduType = 11
	PduTypeRemoveEntity                PduType = 12
	PduTypeStartResume                 PduType = 13
	PduTypeStopFreeze                  PduType = 14
	PduTypeAcknowledge                 PduType = 15
	PduTypeActionRequest               PduType = 16
	PduTypeActionResponse              PduType = 17
	PduTypeDataQuery                   PduType = 18
	PduTypeSetData                     PduType = 19
	PduTypeData                        PduType = 20
	PduTypeEventReport                 PduType = 21
	PduTypeComment                     PduType = 22
	PduTypeElectromagneticEmission     PduType = 23
	PduTypeDesignator                  PduType = 24
	PduTypeTransmitter                 PduType = 25
	PduTypeSignal                      PduType = 26
	PduTypeReceiver                    PduType = 27
	PduTypeIFF                         PduType = 28
	PduTypeUnderwaterAcoustic          PduType = 29
	PduTypeSupplementalEmission        PduType = 30
	PduTypeIntercomSignal              PduType = 31
	PduTypeIntercomControl             PduType = 32
	PduTypeAggregateState              PduType = 33
	PduTypeIsGroupOf                   PduType = 34
	PduTypeTransferOwnership           PduType = 35
	PduTypeIsPartOf                    PduType = 36
	PduTypeMinefieldState              PduType = 37
	PduTypeMinefieldQuery              PduType = 38
	PduTypeMinefieldData               PduType = 39
	PduTypeMinefieldResponseNack       PduType = 40
	PduTypeEnvironmentalProcess        PduType = 41
	PduTypeGriddedData                 PduType = 42
	PduTypePointObjectState            PduType = 43
	PduTypeLinearObjectState           PduType = 44
	PduTypeArealObjectState            PduType = 45
	PduTypeTSPI                        PduType = 46
	PduTypeAppearance                  PduType = 47
	PduTypeArticulatedParts            PduType = 48
	PduTypeLEFire                      PduType = 49
	PduTypeLEDetonation                PduType = 50
	PduTypeCreateEntityR               PduType = 51
	PduTypeRemoveEntityR               PduType = 52
	PduTypeStartResumeR                PduType = 53
	PduTypeStopFreezeR                 PduType = 54
	PduTypeAcknowledgeR                PduType = 55
	PduTypeActionRequestR              PduType = 56
	PduTypeActionResponseR             PduType = 57
	PduTypeDataQueryR                  PduType = 58
	PduTypeSetDataR                    PduType = 59
	PduTypeDataR                       PduType = 60
	PduTypeEventReportR                PduType = 61
	PduTypeCommentR                    PduType = 62
	PduTypeRecordR                     PduType = 63
	PduTypeSetRecordR                  PduType = 64
	PduTypeRecordQueryR                PduType = 65
	PduTypeCollisionElastic            PduType = 66
	PduTypeEntityStateUpdate           PduType = 67
	PduTypeDirectedEnergyFire          PduType = 68
	PduTypeEntityDamageStatus          PduType = 69
	PduTypeInformationOperationsAction PduType = 70
	PduTypeInformationOperationsReport PduType = 71
	PduTypeAttribute                   PduType = 72
)

// MaxPduType is the highest type code with a defined body.
const MaxPduType = PduTypeAttribute

type pduTypeInfo struct {
	name   string
	family ProtocolFamily
}

var pduTypes = map[PduType]pduTypeInfo{
	PduTypeOther:                       {"Other", FamilyOther},
	PduTypeEntityState:                 {"Entity State", FamilyEntityInformation},
	PduTypeFire:                        {"Fire", FamilyWarfare},
	PduTypeDetonation:                  {"Detonation", FamilyWarfare},
	PduTypeCollision:                   {"Collision", FamilyEntityInformation},
	PduTypeServiceRequest:              {"Service Request", FamilyLogistics},
	PduTypeResupplyOffer:               {"Resupply Offer", FamilyLogistics},
	PduTypeResupplyReceived:            {"Resupply Received", FamilyLogistics},
	PduTypeResupplyCancel:              {"Resupply Cancel", FamilyLogistics},
	PduTypeRepairComplete:              {"Repair Complete", FamilyLogistics},
	PduTypeRepairResponse:              {"Repair Response", FamilyLogistics},
	PduTypeCreateEntity:                {"Create Entity", FamilySimulationManagement},
	PduTypeRemoveEntity:                {"Remove Entity", FamilySimulationManagement},
	PduTypeStartResume:                 {"Start/Resume", FamilySimulationManagement},
	PduTypeStopFreeze:                  {"Stop/Freeze", FamilySimulationManagement},
	PduTypeAcknowledge:                 {"Acknowledge", FamilySimulationManagement},
	PduTypeActionRequest:               {"Action Request", FamilySimulationManagement},
	PduTypeActionResponse:              {"Action Response", FamilySimulationManagement},
	PduTypeDataQuery:                   {"Data Query", FamilySimulationManagement},
	PduTypeSetData:                     {"Set Data", FamilySimulationManagement},
	PduTypeData:                        {"Data", FamilySimulationManagement},
	PduTypeEventReport:                 {"Event Report", FamilySimulationManagement},
	PduTypeComment:                     {"Comment", FamilySimulationManagement},
	PduTypeElectromagneticEmission:     {"Electromagnetic Emission", FamilyDistributedEmissionRegeneration},
	PduTypeDesignator:                  {"Designator", FamilyDistributedEmissionRegeneration},
	PduTypeTransmitter:                 {"Transmitter", FamilyRadioCommunications},
	PduTypeSignal:                      {"Signal", FamilyRadioCommunications},
	PduTypeReceiver:                    {"Receiver", FamilyRadioCommunications},
	PduTypeIFF:                         {"IFF", FamilyDistributedEmissionRegeneration},
	PduTypeUnderwaterAcoustic:          {"Underwater Acoustic", FamilyDistributedEmissionRegeneration},
	PduTypeSupplementalEmission:        {"Supplemental Emission / Entity State", FamilyDistributedEmissionRegeneration},
	PduTypeIntercomSignal:              {"Intercom Signal", FamilyRadioCommunications},
	PduTypeIntercomControl:             {"Intercom Control", FamilyRadioCommunications},
	PduTypeAggregateState:              {"Aggregate State", FamilyEntityManagement},
	PduTypeIsGroupOf:                   {"IsGroupOf", FamilyEntityManagement},
	PduTypeTransferOwnership:           {"Transfer Ownership", FamilyEntityManagement},
	PduTypeIsPartOf:                    {"IsPartOf", FamilyEntityManagement},
	PduTypeMinefieldState:              {"Minefield State", FamilyMinefield},
	PduTypeMinefieldQuery:              {"Minefield Query", FamilyMinefield},
	PduTypeMinefieldData:               {"Minefield Data", FamilyMinefield},
	PduTypeMinefieldResponseNack:       {"Minefield Response NACK", FamilyMinefield},
	PduTypeEnvironmentalProcess:        {"Environmental Process", FamilySyntheticEnvironment},
	PduTypeGriddedData:                 {"Gridded Data", FamilySyntheticEnvironment},
	PduTypePointObjectState:            {"Point Object State", FamilySyntheticEnvironment},
	PduTypeLinearObjectState:           {"Linear Object State", FamilySyntheticEnvironment},
	PduTypeArealObjectState:            {"Areal Object State", FamilySyntheticEnvironment},
	PduTypeTSPI:                        {"TSPI", FamilyLiveEntity},
	PduTypeAppearance:                  {"Appearance", FamilyLiveEntity},
	PduTypeArticulatedParts:            {"Articulated Parts", FamilyLiveEntity},
	PduTypeLEFire:                      {"LE Fire", FamilyLiveEntity},
	PduTypeLEDetonation:                {"LE Detonation", FamilyLiveEntity},
	PduTypeCreateEntityR:               {"Create Entity-R", FamilySimulationManagementReliability},
	PduTypeRemoveEntityR:               {"Remove Entity-R", FamilySimulationManagementReliability},
	PduTypeStartResumeR:                {"Start/Resume-R", FamilySimulationManagementReliability},
	PduTypeStopFreezeR:                 {"Stop/Freeze-R", FamilySimulationManagementReliability},
	PduTypeAcknowledgeR:                {"Acknowledge-R", FamilySimulationManagementReliability},
	PduTypeActionRequestR:              {"Action Request-R", FamilySimulationManagementReliability},
	PduTypeActionResponseR:             {"Action Response-R", FamilySimulationManagementReliability},
	PduTypeDataQueryR:                  {"Data Query-R", FamilySimulationManagementReliability},
	PduTypeSetDataR:                    {"Set Data-R", FamilySimulationManagementReliability},
	PduTypeDataR:                       {"Data-R", FamilySimulationManagementReliability},
	PduTypeEventReportR:                {"Event Report-R", FamilySimulationManagementReliability},
	PduTypeCommentR:                    {"Comment-R", FamilySimulationManagementReliability},
	PduTypeRecordR:                     {"Record-R", FamilySimulationManagementReliability},
	PduTypeSetRecordR:                  {"Set Record-R", FamilySimulationManagementReliability},
	PduTypeRecordQueryR:                {"Record Query-R", FamilySimulationManagementReliability},
	PduTypeCollisionElastic:            {"Collision-Elastic", FamilyEntityInformation},
	PduTypeEntityStateUpdate:           {"Entity State Update", FamilyEntityInformation},
	PduTypeDirectedEnergyFire:          {"Directed Energy Fire", FamilyWarfare},
	PduTypeEntityDamageStatus:          {"Entity Damage Status", FamilyWarfare},
	PduTypeInformationOperationsAction: {"Information Operations Action", FamilyInformationOperations},
	PduTypeInformationOperationsReport: {"Information Operations Report", FamilyInformationOperations},
	PduTypeAttribute:                   {"Attribute", FamilyEntityInformation},
}

func (t PduType) String() string {
	if info, ok := pduTypes[t]; ok {
		return info.name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

// IsKnown reports whether t has a name in the table. Type 0 (Other) is
// named but has no body layout.
func (t PduType) IsKnown() bool {
	_, ok := pduTypes[t]
	return ok
}

// Family returns the protocol family the standard assigns to t, or
// FamilyOther for codes outside the table.
func (t PduType) Family() ProtocolFamily {
	return pduTypes[t].family
}

// FamilyOf is t.Family() in function form.
func FamilyOf(t PduType) ProtocolFamily {
	return t.Family()
}

// PduTypes lists every type code with a body layout, in code order.
func PduTypes() []PduType {
	out := make([]PduType, 0, int(MaxPduType))
	for t := PduTypeEntityState; t <= MaxPduType; t++ {
		out = append(out, t)
	}
	return out
}
