package enums

// StopFreezeReason explains why a simulation was stopped.
type StopFreezeReason uint8

const (
	StopFreezeOther                 StopFreezeReason = 0
	StopFreezeRecess                StopFreezeReason = 1
	StopFreezeTermination           StopFreezeReason = 2
	StopFreezeSystemFailure         StopFreezeReason = 3
	StopFreezeSecurityViolation     StopFreezeReason = 4
	StopFreezeEntityReconstitution  StopFreezeReason = 5
	StopFreezeStopForReset          StopFreezeReason = 6
	StopFreezeStopForRestart        StopFreezeReason = 7
	StopFreezeAbortTrainingReturnTO StopFreezeReason = 8
)

var stopFreezeReasonNames = map[StopFreezeReason]string{
	StopFreezeOther:                 "Other",
	StopFreezeRecess:                "Recess",
	StopFreezeTermination:           "Termination",
	StopFreezeSystemFailure:         "System Failure",
	StopFreezeSecurityViolation:     "Security Violation",
	StopFreezeEntityReconstitution:  "Entity Reconstitution",
	StopFreezeStopForReset:          "Stop for reset",
	StopFreezeStopForRestart:        "Stop for restart",
	StopFreezeAbortTrainingReturnTO: "Abort Training Return to Tactical Operations",
}

func (s StopFreezeReason) String() string { return lookup(stopFreezeReasonNames, s) }
func (s StopFreezeReason) IsKnown() bool  { return known(stopFreezeReasonNames, s) }

// AcknowledgeFlag names the management PDU being acknowledged.
type AcknowledgeFlag uint16

const (
	AcknowledgeCreateEntity      AcknowledgeFlag = 1
	AcknowledgeRemoveEntity      AcknowledgeFlag = 2
	AcknowledgeStartResume       AcknowledgeFlag = 3
	AcknowledgeStopFreeze        AcknowledgeFlag = 4
	AcknowledgeTransferOwnership AcknowledgeFlag = 5
)

var acknowledgeFlagNames = map[AcknowledgeFlag]string{
	AcknowledgeCreateEntity:      "Create Entity",
	AcknowledgeRemoveEntity:      "Remove Entity",
	AcknowledgeStartResume:       "Start/Resume",
	AcknowledgeStopFreeze:        "Stop/Freeze",
	AcknowledgeTransferOwnership: "Transfer Ownership",
}

func (a AcknowledgeFlag) String() string { return lookup(acknowledgeFlagNames, a) }
func (a AcknowledgeFlag) IsKnown() bool  { return known(acknowledgeFlagNames, a) }

// AcknowledgeResponse says whether the receiver will comply.
type AcknowledgeResponse uint16

const (
	AcknowledgeResponseOther                 AcknowledgeResponse = 0
	AcknowledgeResponseAbleToComply          AcknowledgeResponse = 1
	AcknowledgeResponseUnableToComply        AcknowledgeResponse = 2
	AcknowledgeResponsePendingOperatorAction AcknowledgeResponse = 3
)

var acknowledgeResponseNames = map[AcknowledgeResponse]string{
	AcknowledgeResponseOther:                 "Other",
	AcknowledgeResponseAbleToComply:          "Able to comply",
	AcknowledgeResponseUnableToComply:        "Unable to comply",
	AcknowledgeResponsePendingOperatorAction: "Pending Operator Action",
}

func (a AcknowledgeResponse) String() string { return lookup(acknowledgeResponseNames, a) }
func (a AcknowledgeResponse) IsKnown() bool  { return known(acknowledgeResponseNames, a) }

// RequestStatus is carried by Action Response PDUs.
type RequestStatus uint32

const (
	RequestStatusOther                  RequestStatus = 0
	RequestStatusPending                RequestStatus = 1
	RequestStatusExecuting              RequestStatus = 2
	RequestStatusPartiallyComplete      RequestStatus = 3
	RequestStatusComplete               RequestStatus = 4
	RequestStatusRejected               RequestStatus = 5
	RequestStatusRetransmitNow          RequestStatus = 6
	RequestStatusRetransmitLater        RequestStatus = 7
	RequestStatusInvalidTimeParameters  RequestStatus = 8
	RequestStatusSimulationTimeExceeded RequestStatus = 9
	RequestStatusDone                   RequestStatus = 10
	RequestStatusJoinExerciseRejected   RequestStatus = 201
)

var requestStatusNames = map[RequestStatus]string{
	RequestStatusOther:                  "Other",
	RequestStatusPending:                "Pending",
	RequestStatusExecuting:              "Executing",
	RequestStatusPartiallyComplete:      "Partially Complete",
	RequestStatusComplete:               "Complete",
	RequestStatusRejected:               "Request rejected",
	RequestStatusRetransmitNow:          "Retransmit request now",
	RequestStatusRetransmitLater:        "Retransmit request later",
	RequestStatusInvalidTimeParameters:  "Invalid time parameters",
	RequestStatusSimulationTimeExceeded: "Simulation time exceeded",
	RequestStatusDone:                   "Request done",
	RequestStatusJoinExerciseRejected:   "Join Exercise Request Rejected",
}

func (s RequestStatus) String() string { return lookup(requestStatusNames, s) }
func (s RequestStatus) IsKnown() bool  { return known(requestStatusNames, s) }

// EventType classifies Event Report PDUs.
type EventType uint32

const (
	EventTypeOther                    EventType = 0
	EventTypeRanOutOfAmmunition       EventType = 2
	EventTypeKilledInAction           EventType = 3
	EventTypeDamage                   EventType = 4
	EventTypeMobilityDisabled         EventType = 5
	EventTypeFireDisabled             EventType = 6
	EventTypeRanOutOfFuel             EventType = 7
	EventTypeEntityInitialization     EventType = 8
	EventTypeRequestForIndirectFire   EventType = 9
	EventTypeIndirectFire             EventType = 10
	EventTypeMinefieldEntry           EventType = 11
	EventTypeMinefieldDetonation      EventType = 12
	EventTypeVehicleMasterPowerOn     EventType = 13
	EventTypeVehicleMasterPowerOff    EventType = 14
	EventTypeAggregateStateChange     EventType = 15
	EventTypePreventCollisionDetonate EventType = 16
	EventTypeOwnershipReport          EventType = 17
)

var eventTypeNames = map[EventType]string{
	EventTypeOther:                    "Other",
	EventTypeRanOutOfAmmunition:       "Ran out of ammunition",
	EventTypeKilledInAction:           "Killed in action",
	EventTypeDamage:                   "Damage",
	EventTypeMobilityDisabled:         "Mobility disabled",
	EventTypeFireDisabled:             "Fire disabled",
	EventTypeRanOutOfFuel:             "Ran out of fuel",
	EventTypeEntityInitialization:     "Entity initialization",
	EventTypeRequestForIndirectFire:   "Request for indirect fire or CAS mission",
	EventTypeIndirectFire:             "Indirect fire or CAS fire",
	EventTypeMinefieldEntry:           "Minefield entry",
	EventTypeMinefieldDetonation:      "Minefield detonation",
	EventTypeVehicleMasterPowerOn:     "Vehicle master power on",
	EventTypeVehicleMasterPowerOff:    "Vehicle master power off",
	EventTypeAggregateStateChange:     "Aggregate state change requested",
	EventTypePreventCollisionDetonate: "Prevent collision / detonation",
	EventTypeOwnershipReport:          "Ownership report",
}

func (e EventType) String() string { return lookup(eventTypeNames, e) }
func (e EventType) IsKnown() bool  { return known(eventTypeNames, e) }

// ReliabilityService is the acknowledgement mode requested by -R PDUs.
type ReliabilityService uint8

const (
	ReliabilityAcknowledged   ReliabilityService = 0
	ReliabilityUnacknowledged ReliabilityService = 1
)

var reliabilityNames = map[ReliabilityService]string{
	ReliabilityAcknowledged:   "Acknowledged",
	ReliabilityUnacknowledged: "Unacknowledged",
}

func (r ReliabilityService) String() string { return lookup(reliabilityNames, r) }
func (r ReliabilityService) IsKnown() bool  { return known(reliabilityNames, r) }

// AggregateState is the aggregation status of an aggregate entity.
type AggregateState uint8

const (
	AggregateStateOther                  AggregateState = 0
	AggregateStateAggregated             AggregateState = 1
	AggregateStateDisaggregated          AggregateState = 2
	AggregateStateFullyDisaggregated     AggregateState = 3
	AggregateStatePseudoDisaggregated    AggregateState = 4
	AggregateStatePartiallyDisaggregated AggregateState = 5
)

var aggregateStateNames = map[AggregateState]string{
	AggregateStateOther:                  "Other",
	AggregateStateAggregated:             "Aggregated",
	AggregateStateDisaggregated:          "Disaggregated",
	AggregateStateFullyDisaggregated:     "Fully disaggregated",
	AggregateStatePseudoDisaggregated:    "Pseudo-disaggregated",
	AggregateStatePartiallyDisaggregated: "Partially-disaggregated",
}

func (a AggregateState) String() string { return lookup(aggregateStateNames, a) }
func (a AggregateState) IsKnown() bool  { return known(aggregateStateNames, a) }

// Formation is the arrangement of an aggregate's subordinates.
type Formation uint32

const (
	FormationOther    Formation = 0
	FormationAssembly Formation = 1
	FormationVee      Formation = 2
	FormationWedge    Formation = 3
	FormationLine     Formation = 4
	FormationColumn   Formation = 5
)

var formationNames = map[Formation]string{
	FormationOther:    "Other",
	FormationAssembly: "Assembly",
	FormationVee:      "Vee",
	FormationWedge:    "Wedge",
	FormationLine:     "Line",
	FormationColumn:   "Column",
}

func (f Formation) String() string { return lookup(formationNames, f) }
func (f Formation) IsKnown() bool  { return known(formationNames, f) }

// TransferType is the kind of ownership transfer being requested.
type TransferType uint8

const (
	TransferOther                    TransferType = 0
	TransferPushEntity               TransferType = 1
	TransferAutomaticPullEntity      TransferType = 2
	TransferPushEnvironmental        TransferType = 4
	TransferAutomaticPullEnvironment TransferType = 5
	TransferCancel                   TransferType = 7
	TransferManualPullEntity         TransferType = 8
	TransferManualPullEnvironment    TransferType = 9
	TransferRemoveEntity             TransferType = 10
)

var transferTypeNames = map[TransferType]string{
	TransferOther:                    "Other",
	TransferPushEntity:               "Push Transfer - Entity",
	TransferAutomaticPullEntity:      "Automatic Pull Transfer - Entity",
	TransferPushEnvironmental:        "Push Transfer - Environmental Process",
	TransferAutomaticPullEnvironment: "Automatic Pull Transfer - Environmental Process",
	TransferCancel:                   "Cancel Transfer",
	TransferManualPullEntity:         "Manual Pull Transfer - Entity",
	TransferManualPullEnvironment:    "Manual Pull Transfer - Environmental Process",
	TransferRemoveEntity:             "Remove Entity",
}

func (t TransferType) String() string { return lookup(transferTypeNames, t) }
func (t TransferType) IsKnown() bool  { return known(transferTypeNames, t) }
