package enums

// TransmitState is the on/off state of a radio transmitter.
type TransmitState uint8

const (
	TransmitOff               TransmitState = 0
	TransmitOnNotTransmitting TransmitState = 1
	TransmitOnAndTransmitting TransmitState = 2
)

var transmitStateNames = map[TransmitState]string{
	TransmitOff:               "Off",
	TransmitOnNotTransmitting: "On but not transmitting",
	TransmitOnAndTransmitting: "On and transmitting",
}

func (s TransmitState) String() string { return lookup(transmitStateNames, s) }
func (s TransmitState) IsKnown() bool  { return known(transmitStateNames, s) }

// ReceiverState is the on/off state of a radio receiver.
type ReceiverState uint16

const (
	ReceiverOff            ReceiverState = 0
	ReceiverOnNotReceiving ReceiverState = 1
	ReceiverOnAndReceiving ReceiverState = 2
)

var receiverStateNames = map[ReceiverState]string{
	ReceiverOff:            "Off",
	ReceiverOnNotReceiving: "On but not receiving",
	ReceiverOnAndReceiving: "On and receiving",
}

func (s ReceiverState) String() string { return lookup(receiverStateNames, s) }
func (s ReceiverState) IsKnown() bool  { return known(receiverStateNames, s) }

// EncodingClass is carried in the top two bits of a signal encoding scheme.
type EncodingClass uint16

const (
	EncodingClassEncodedAudio    EncodingClass = 0
	EncodingClassRawBinary       EncodingClass = 1
	EncodingClassApplicationData EncodingClass = 2
	EncodingClassDatabaseIndex   EncodingClass = 3
)

var encodingClassNames = map[EncodingClass]string{
	EncodingClassEncodedAudio:    "Encoded audio",
	EncodingClassRawBinary:       "Raw Binary Data",
	EncodingClassApplicationData: "Application-Specific Data",
	EncodingClassDatabaseIndex:   "Database index",
}

func (c EncodingClass) String() string { return lookup(encodingClassNames, c) }
func (c EncodingClass) IsKnown() bool  { return known(encodingClassNames, c) }

// EncodingScheme is the 16-bit signal encoding field: class in bits 14-15,
// type or TDL message count in bits 0-13.
type EncodingScheme uint16

func (e EncodingScheme) Class() EncodingClass { return EncodingClass(e >> 14) }
func (e EncodingScheme) Type() uint16         { return uint16(e) & 0x3FFF }

// NewEncodingScheme packs class and type.
func NewEncodingScheme(class EncodingClass, typ uint16) EncodingScheme {
	return EncodingScheme(uint16(class)<<14 | typ&0x3FFF)
}

// EmitterFunction is the function of an electromagnetic emitter system.
type EmitterFunction uint8

const (
	EmitterFunctionOther                    EmitterFunction = 0
	EmitterFunctionMultiFunction            EmitterFunction = 1
	EmitterFunctionEarlyWarningSurveillance EmitterFunction = 2
	EmitterFunctionHeightFinding            EmitterFunction = 3
	EmitterFunctionFireControl              EmitterFunction = 4
	EmitterFunctionAcquisitionDetection     EmitterFunction = 5
	EmitterFunctionTracking                 EmitterFunction = 6
	EmitterFunctionGuidanceIllumination     EmitterFunction = 7
	EmitterFunctionFiringPointLocation      EmitterFunction = 8
	EmitterFunctionRanging                  EmitterFunction = 9
	EmitterFunctionRadarAltimeter           EmitterFunction = 10
	EmitterFunctionImaging                  EmitterFunction = 11
	EmitterFunctionMotionDetection          EmitterFunction = 12
	EmitterFunctionNavigation               EmitterFunction = 13
	EmitterFunctionWeather                  EmitterFunction = 14
	EmitterFunctionInstrumentation          EmitterFunction = 15
	EmitterFunctionIdentification           EmitterFunction = 16
)

var emitterFunctionNames = map[EmitterFunction]string{
	EmitterFunctionOther:                    "Other",
	EmitterFunctionMultiFunction:            "Multi-function",
	EmitterFunctionEarlyWarningSurveillance: "Early Warning/Surveillance",
	EmitterFunctionHeightFinding:            "Height Finding",
	EmitterFunctionFireControl:              "Fire Control",
	EmitterFunctionAcquisitionDetection:     "Acquisition/Detection",
	EmitterFunctionTracking:                 "Tracking",
	EmitterFunctionGuidanceIllumination:     "Guidance/Illumination",
	EmitterFunctionFiringPointLocation:      "Firing point/launch point location",
	EmitterFunctionRanging:                  "Ranging",
	EmitterFunctionRadarAltimeter:           "Radar Altimeter",
	EmitterFunctionImaging:                  "Imaging",
	EmitterFunctionMotionDetection:          "Motion Detection",
	EmitterFunctionNavigation:               "Navigation",
	EmitterFunctionWeather:                  "Weather / Meteorological",
	EmitterFunctionInstrumentation:          "Instrumentation",
	EmitterFunctionIdentification:           "Identification/Classification (including IFF)",
}

func (f EmitterFunction) String() string { return lookup(emitterFunctionNames, f) }
func (f EmitterFunction) IsKnown() bool  { return known(emitterFunctionNames, f) }

// BeamFunction is the function of a single emitter beam.
type BeamFunction uint8

const (
	BeamFunctionOther               BeamFunction = 0
	BeamFunctionSearch              BeamFunction = 1
	BeamFunctionHeightFinding       BeamFunction = 2
	BeamFunctionAcquisition         BeamFunction = 3
	BeamFunctionTracking            BeamFunction = 4
	BeamFunctionAcquisitionTracking BeamFunction = 5
	BeamFunctionCommandGuidance     BeamFunction = 6
	BeamFunctionIllumination        BeamFunction = 7
	BeamFunctionRanging             BeamFunction = 8
	BeamFunctionMissileBeacon       BeamFunction = 9
	BeamFunctionMissileFusing       BeamFunction = 10
	BeamFunctionActiveRadarSeeker   BeamFunction = 11
	BeamFunctionJamming             BeamFunction = 12
	BeamFunctionIFF                 BeamFunction = 13
	BeamFunctionNavigationWeather   BeamFunction = 14
	BeamFunctionMeteorological      BeamFunction = 15
	BeamFunctionDataTransmission    BeamFunction = 16
	BeamFunctionNavigationalBeacon  BeamFunction = 17
)

var beamFunctionNames = map[BeamFunction]string{
	BeamFunctionOther:               "Other",
	BeamFunctionSearch:              "Search",
	BeamFunctionHeightFinding:       "Height Finding",
	BeamFunctionAcquisition:         "Acquisition",
	BeamFunctionTracking:            "Tracking",
	BeamFunctionAcquisitionTracking: "Acquisition and tracking",
	BeamFunctionCommandGuidance:     "Command guidance",
	BeamFunctionIllumination:        "Illumination",
	BeamFunctionRanging:             "Ranging",
	BeamFunctionMissileBeacon:       "Missile beacon",
	BeamFunctionMissileFusing:       "Missile Fusing",
	BeamFunctionActiveRadarSeeker:   "Active radar missile seeker",
	BeamFunctionJamming:             "Jamming",
	BeamFunctionIFF:                 "IFF",
	BeamFunctionNavigationWeather:   "Navigation / Weather",
	BeamFunctionMeteorological:      "Meteorological",
	BeamFunctionDataTransmission:    "Data transmission",
	BeamFunctionNavigationalBeacon:  "Navigational directional beacon",
}

func (f BeamFunction) String() string { return lookup(beamFunctionNames, f) }
func (f BeamFunction) IsKnown() bool  { return known(beamFunctionNames, f) }

// IOWarfareType is the kind of information operations warfare.
type IOWarfareType uint16

const (
	IOWarfareNoStatement               IOWarfareType = 0
	IOWarfareElectronicWarfare         IOWarfareType = 1
	IOWarfareComputerNetworkOperations IOWarfareType = 2
	IOWarfarePsychologicalOperations   IOWarfareType = 3
	IOWarfareMilitaryDeception         IOWarfareType = 4
	IOWarfareOperationsSecurity        IOWarfareType = 5
	IOWarfarePhysicalAttack            IOWarfareType = 6
)

var ioWarfareNames = map[IOWarfareType]string{
	IOWarfareNoStatement:               "No Statement",
	IOWarfareElectronicWarfare:         "Electronic Warfare (EW)",
	IOWarfareComputerNetworkOperations: "Computer Network Operations (CNO)",
	IOWarfarePsychologicalOperations:   "Psychological Operations (PSYOPS)",
	IOWarfareMilitaryDeception:         "Military Deception (MILDEC)",
	IOWarfareOperationsSecurity:        "Operations Security (OPSEC)",
	IOWarfarePhysicalAttack:            "Physical Attack",
}

func (w IOWarfareType) String() string { return lookup(ioWarfareNames, w) }
func (w IOWarfareType) IsKnown() bool  { return known(ioWarfareNames, w) }

// IOSimulationSource identifies what produced an IO PDU.
type IOSimulationSource uint16

const (
	IOSimulationSourceNoStatement IOSimulationSource = 0
)

var ioSimulationSourceNames = map[IOSimulationSource]string{
	IOSimulationSourceNoStatement: "No Statement",
}

func (s IOSimulationSource) String() string { return lookup(ioSimulationSourceNames, s) }
func (s IOSimulationSource) IsKnown() bool  { return known(ioSimulationSourceNames, s) }

// IOActionType is the action requested by an IO Action PDU.
type IOActionType uint16

const (
	IOActionNoStatement                  IOActionType = 0
	IOActionAttackProfileData            IOActionType = 1
	IOActionAttackComputedEffects        IOActionType = 2
	IOActionIntentBasedEW                IOActionType = 3
	IOActionIntentBasedEWComputedEffects IOActionType = 4
)

var ioActionNames = map[IOActionType]string{
	IOActionNoStatement:                  "No Statement",
	IOActionAttackProfileData:            "IO Attack Profile Data Parameters",
	IOActionAttackComputedEffects:        "IO Attack Computed Effects",
	IOActionIntentBasedEW:                "Intent-Based EW",
	IOActionIntentBasedEWComputedEffects: "Intent-Based EW Computed Effects",
}

func (a IOActionType) String() string { return lookup(ioActionNames, a) }
func (a IOActionType) IsKnown() bool  { return known(ioActionNames, a) }

// IOActionPhase is the phase of an IO action.
type IOActionPhase uint16

const (
	IOActionPhaseNoStatement IOActionPhase = 0
	IOActionPhasePrior       IOActionPhase = 1
	IOActionPhaseStart       IOActionPhase = 2
	IOActionPhaseContinue    IOActionPhase = 3
	IOActionPhaseEnd         IOActionPhase = 4
)

var ioActionPhaseNames = map[IOActionPhase]string{
	IOActionPhaseNoStatement: "No Statement",
	IOActionPhasePrior:       "Prior",
	IOActionPhaseStart:       "Start",
	IOActionPhaseContinue:    "Continue",
	IOActionPhaseEnd:         "End",
}

func (p IOActionPhase) String() string { return lookup(ioActionPhaseNames, p) }
func (p IOActionPhase) IsKnown() bool  { return known(ioActionPhaseNames, p) }

// IOReportType distinguishes initial, update and final IO reports.
type IOReportType uint8

const (
	IOReportNoStatement IOReportType = 0
	IOReportInitial     IOReportType = 1
	IOReportUpdate      IOReportType = 2
	IOReportFinal       IOReportType = 3
)

var ioReportNames = map[IOReportType]string{
	IOReportNoStatement: "No Statement",
	IOReportInitial:     "Initial Report",
	IOReportUpdate:      "Update Report",
	IOReportFinal:       "Final Report",
}

func (r IOReportType) String() string { return lookup(ioReportNames, r) }
func (r IOReportType) IsKnown() bool  { return known(ioReportNames, r) }
