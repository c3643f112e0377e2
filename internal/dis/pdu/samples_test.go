package pdu

import (
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

func ptr[T any](v T) *T { return &v }

var (
	entA = record.EntityID{Site: 1, Application: 2, Entity: 3}
	entB = record.EntityID{Site: 4, Application: 5, Entity: 6}
	evt  = record.EventID{Site: 1, Application: 2, Event: 99}
	tank = record.EntityType{Kind: enums.EntityKind(1), Domain: 1, Country: 225, Category: 1, Subcategory: 1, Specific: 3}
	vp   = record.VariableParameter{RecordType: enums.VariableParameterType(0), Data: [15]byte{1, 2, 3}}
)

func datums() record.DatumSpecification {
	return record.DatumSpecification{
		Fixed:    []record.FixedDatum{{ID: 100, Value: 7}},
		Variable: []record.VariableDatum{record.NewVariableDatum(200, []byte("abc"))},
	}
}

func recordSets() []record.RecordSet {
	return []record.RecordSet{{
		RecordID:         42,
		SerialNumber:     1,
		RecordLengthBits: 12,
		RecordCount:      3,
		Values:           []byte{1, 2, 3, 4, 5},
	}}
}

// populated returns one PDU per family with every variable-length section
// and optional field exercised.
func populated() []PDU {
	es := NewEntityState()
	es.EntityID = entA
	es.ForceID = enums.ForceID(2)
	es.EntityType = tank
	es.Location = record.Vector3Double{X: 1e6, Y: -2e6, Z: 3e5}
	es.Marking = record.NewEntityMarking("TANK01")
	es.VariableParameters = []record.VariableParameter{vp, vp}
	es.Header().ExerciseID = 7
	es.Header().Timestamp = NewTimestamp(0, true)
	es.Header().Status = 0x13

	det := NewDetonation()
	det.FiringEntityID = entA
	det.EventID = evt
	det.Result = enums.DetonationResult(1)
	det.VariableParameters = []record.VariableParameter{vp}

	attr := NewAttribute()
	attr.OriginatingSimulation = record.SimulationAddress{Site: 9, Application: 9}
	attr.RecordPduType = enums.PduTypeEntityState
	attr.RecordProtocolVersion = enums.ProtocolVersionIEEE1278_1_2012
	attr.RecordSets = []AttributeRecordSet{
		{EntityID: entA, Records: []record.VariableRecord{{RecordType: 3000, Value: []byte{1, 2}}}},
		{EntityID: entB},
	}

	def := NewDirectedEnergyFire()
	def.FiringEntityID = entA
	def.Records = []record.VariableRecord{{RecordType: 4000, Value: []byte{9, 9, 9, 9, 9, 9, 9, 9, 9, 9}}}

	eds := NewEntityDamageStatus()
	eds.DamagedEntityID = entB
	eds.Damage = []record.DirectedEnergyDamage{{BeamDiameter: 0.5, ComponentID: 3, FireEventID: evt}}

	sr := NewServiceRequest()
	sr.RequestingEntityID = entA
	sr.ServicingEntityID = entB
	sr.Supplies = []record.SupplyQuantity{{SupplyType: tank, Quantity: 12.5}}

	offer := NewResupplyOffer()
	offer.Supplies = []record.SupplyQuantity{{Quantity: 1}, {Quantity: 2}}

	ar := NewActionRequest()
	ar.RequestID = 5
	ar.Datums = datums()

	dq := NewDataQuery()
	dq.FixedDatumIDs = []uint32{1, 2}
	dq.VariableDatumIDs = []uint32{3}

	ee := NewElectromagneticEmission()
	ee.EmittingEntityID = entA
	ee.Systems = []record.EmissionSystem{{
		System: record.EmitterSystem{Name: 100, Function: enums.EmitterFunction(2), Number: 1},
		Beams: []record.EmissionBeam{{
			BeamID:   1,
			Function: enums.BeamFunction(3),
			Targets:  []record.TrackJam{{Entity: entB, Emitter: 1, Beam: 1}},
		}},
	}}

	ua := NewUnderwaterAcoustic()
	ua.Shafts = []record.UAShaft{{CurrentRPM: 100, OrderedRPM: 120, RPMRateOfChange: -4}}
	ua.APAs = []record.UAAPA{{ParameterIndex: 1, Value: -1}}
	ua.Systems = []record.UAEmitterSystem{{
		Emitter: record.AcousticEmitter{Name: 7, Function: 1, ID: 1},
		Beams:   []record.UABeam{{BeamID: 1, AzimuthWidth: 0.25}},
	}}

	iff := NewIFF()
	iff.EmittingEntityID = entA
	iff.OperationalData.Parameters = [6]uint16{1, 2, 3, 4, 5, 6}
	iff.Layer2 = &record.IFFLayer2{
		LayerNumber: 2,
		Parameters:  []record.IFFParameter{{Frequency: 1030e6, SystemSpecific: [3]byte{1, 2, 3}}},
	}

	sees := NewSupplementalEmission()
	sees.PropulsionSystems = []record.PropulsionSystem{{PowerSetting: 0.8, EngineRPM: 3000}}
	sees.VectoringNozzles = []record.VectoringNozzle{{HorizontalDeflection: 1}, {VerticalDeflection: -1}}

	tx := NewTransmitter()
	tx.RadioReferenceID = entA
	tx.TransmitState = enums.TransmitOnAndTransmitting
	tx.Frequency = 243_000_000
	tx.ModulationParameters = []byte{1, 2, 3, 4}
	tx.AntennaPattern = []byte{5, 6, 7, 8, 9, 10, 11, 12}
	tx.VariableRecords = []record.VariableRecord{{RecordType: 3000, Value: []byte{1, 2}}}

	sig := NewSignal()
	sig.RadioReferenceID = entA
	sig.Encoding = enums.NewEncodingScheme(enums.EncodingClassEncodedAudio, 1)
	sig.SampleRate = 8000
	sig.Samples = 5
	sig.SetData([]byte{1, 2, 3, 4, 5})

	isig := NewIntercomSignal()
	isig.LengthBits = 12
	isig.Data = []byte{0xAB, 0xC0}

	ic := NewIntercomControl()
	ic.Parameters = []record.IntercomParameter{{RecordType: 1, Value: []byte{1, 2, 3}}, {RecordType: 2}}

	agg := NewAggregateState()
	agg.AggregateID = entA
	agg.Marking = record.NewAggregateMarking("PLATOON 1")
	agg.AggregateIDs = []record.AggregateID{entB}
	agg.EntityIDs = []record.EntityID{entA, entB, entA}
	agg.SilentAggregateSystems = []record.SilentAggregateSystem{{NumberOfAggregates: 2, AggregateType: tank}}
	agg.SilentEntitySystems = []record.SilentEntitySystem{{NumberOfEntities: 2, EntityType: tank, Appearances: []uint32{1, 2}}}
	agg.VariableDatums = []record.VariableDatum{record.NewVariableDatum(1, []byte{1})}

	grp := NewIsGroupOf()
	grp.GroupEntityID = entA
	grp.GroupedEntityCount = 1
	grp.Latitude = 36.5
	grp.Descriptions = []byte{1, 2, 3, 4, 5, 6, 7, 8}

	xfer := NewTransferOwnership()
	xfer.TransferType = enums.TransferType(1)
	xfer.TransferEntityID = entB
	xfer.RecordSets = recordSets()

	mfs := NewMinefieldState()
	mfs.MinefieldID = record.MinefieldIdentifier{Simulation: record.SimulationAddress{Site: 1, Application: 1}, Minefield: 3}
	mfs.PerimeterPoints = []record.Point{{X: 1, Y: 1}, {X: 10, Y: 10}}
	mfs.MineTypes = []record.EntityType{tank}

	mfq := NewMinefieldQuery()
	mfq.PerimeterPoints = []record.Point{{X: 1, Y: 2}}
	mfq.SensorTypes = []uint16{1, 2, 3}

	mfd := NewMinefieldData()
	mfd.DataFilter = 0x0FFF
	mfd.SensorTypes = []uint16{7}
	mfd.Mines = []Mine{
		{
			Location:                   record.Vector3Float{X: 1, Y: 2, Z: 3},
			GroundBurialDepthOffset:    0.1,
			WaterBurialDepthOffset:     0.2,
			SnowBurialDepthOffset:      0.3,
			Orientation:                record.EulerAngles{Psi: 1},
			ThermalContrast:            0.4,
			Reflectance:                0.5,
			EmplacementTime:            record.ClockTime{Hour: 3, TimePastHour: 10},
			EntityNumber:               11,
			Fusing:                     2,
			ScalarDetectionCoefficient: 9,
			PaintScheme:                1,
			Wires: [][]record.Vector3Float{
				{{X: 1}, {Y: 1}},
				{{Z: 1}},
			},
		},
		{Location: record.Vector3Float{X: 4}, EntityNumber: 12},
	}

	nack := NewMinefieldResponseNack()
	nack.MissingPduSequence = []uint8{2, 4, 5}

	env := NewEnvironmentalProcess()
	env.Records = []record.EnvironmentRecord{{RecordType: 256, LengthBits: 20, Index: 1, Data: []byte{1, 2, 3}}}

	grid := NewGriddedData()
	grid.Axes = []record.GridAxis{
		{DomainInitial: 0, DomainFinal: 10, DomainPoints: 3, InterleafFactor: 1},
		{DomainFinal: 5, AxisType: record.GridAxisIrregular, PointsOnAxis: 3, CoordinateScale: 1, Values: []uint16{1, 2, 4}},
	}
	grid.Data = []record.GridData{
		{SampleType: 1, Representation: record.GridDataOctets, Octets: []byte{1, 2, 3}},
		{SampleType: 2, Representation: record.GridDataScaled16, Scale: 2, Offset: 1, Scaled: []uint16{5}},
		{SampleType: 3, Representation: record.GridDataFloat32, Floats: []float32{1.5, 2.5}},
	}

	pos := NewPointObjectState()
	pos.ObjectID = entA
	pos.ObjectType = record.ObjectType{Domain: 1, Kind: 2, Category: 3}
	pos.RequesterID = record.SimulationAddress{Site: 1, Application: 2}

	los := NewLinearObjectState()
	los.Segments = []record.LinearSegment{{Number: 1, SegmentLength: 100}, {Number: 2, SegmentWidth: 3}}

	aos := NewArealObjectState()
	aos.Points = []record.Vector3Double{{X: 1}, {Y: 2}, {Z: 3}}

	tspi := NewTSPI()
	tspi.LiveEntityID = entA
	tspi.Location = record.RelativeWorldCoordinates{ReferencePoint: 1, DeltaX: -5}
	tspi.LinearVelocity = &record.LEVector{X: 1}
	tspi.Orientation = &record.LEEulerAngles{Psi: -3}
	tspi.PositionError = &record.LEPositionError{HorizontalError: 2}
	tspi.OrientationError = &record.LEOrientationError{RotationError: 1}
	tspi.DeadReckoning = &record.LEDeadReckoning{Algorithm: enums.DeadReckoningAlgorithm(4)}
	tspi.MeasuredSpeed = ptr(uint16(30))
	tspi.SystemData = []byte{1, 2, 3}

	app := NewAppearance()
	app.LiveEntityID = entA
	app.ForceID = ptr(enums.ForceID(1))
	app.Marking = ptr(record.NewEntityMarking("LIVE"))
	app.VisualAppearance = ptr(uint32(0x10))
	app.AudioAppearance = ptr(uint32(5))

	parts := NewArticulatedParts()
	parts.VariableParameters = []record.VariableParameter{vp}

	lefire := NewLEFire()
	lefire.TargetEntityID = &entB
	lefire.Descriptor = &record.MunitionDescriptor{MunitionType: tank, Quantity: 1}
	lefire.Range = ptr(uint16(900))

	ledet := NewLEDetonation()
	ledet.MunitionID = &entB
	ledet.MunitionOrientation = &record.LEEulerAngles{Phi: 2}
	ledet.EntityLocation = &record.LEVector{Z: -1}
	ledet.Result = enums.DetonationResult(5)

	arr := NewActionRequestR()
	arr.Reliability = enums.ReliabilityService(1)
	arr.Datums = datums()

	dqr := NewDataQueryR()
	dqr.TimeInterval = 1000
	dqr.VariableDatumIDs = []uint32{9}

	rr := NewRecordR()
	rr.EventType = 3
	rr.RecordSets = recordSets()

	srr := NewSetRecordR()
	srr.RecordSets = recordSets()

	rq := NewRecordQueryR()
	rq.RecordIDs = []uint32{1, 2, 3}

	ioa := NewInformationOperationsAction()
	ioa.WarfareType = enums.IOWarfareType(1)
	ioa.AttackerID = entA
	ioa.PrimaryTargetID = entB
	ioa.Records = []record.VariableRecord{{RecordType: 5000, Value: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}}

	ior := NewInformationOperationsReport()
	ior.ReportType = enums.IOReportType(2)
	ior.Records = []record.VariableRecord{{RecordType: 5001, Value: []byte{1, 2}}}

	return []PDU{
		es, det, attr, def, eds, sr, offer, ar, dq, ee, ua, iff, sees,
		tx, sig, isig, ic, agg, grp, xfer, mfs, mfq, mfd, nack, env, grid,
		pos, los, aos, tspi, app, parts, lefire, ledet, arr, dqr, rr, srr,
		rq, ioa, ior,
	}
}
