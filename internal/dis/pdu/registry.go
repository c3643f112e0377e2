package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
)

// New returns an empty PDU of type t with a default header. Codes outside
// 1..72 fail with ErrUnsupportedPDUType.
func New(t enums.PduType) (PDU, error) {
	switch t {
	case enums.PduTypeEntityState:
		return NewEntityState(), nil
	case enums.PduTypeFire:
		return NewFire(), nil
	case enums.PduTypeDetonation:
		return NewDetonation(), nil
	case enums.PduTypeCollision:
		return NewCollision(), nil
	case enums.PduTypeServiceRequest:
		return NewServiceRequest(), nil
	case enums.PduTypeResupplyOffer:
		return NewResupplyOffer(), nil
	case enums.PduTypeResupplyReceived:
		return NewResupplyReceived(), nil
	case enums.PduTypeResupplyCancel:
		return NewResupplyCancel(), nil
	case enums.PduTypeRepairComplete:
		return NewRepairComplete(), nil
	case enums.PduTypeRepairResponse:
		return NewRepairResponse(), nil
	case enums.PduTypeCreateEntity:
		return NewCreateEntity(), nil
	case enums.PduTypeRemoveEntity:
		return NewRemoveEntity(), nil
	case enums.PduTypeStartResume:
		return NewStartResume(), nil
	case enums.PduTypeStopFreeze:
		return NewStopFreeze(), nil
	case enums.PduTypeAcknowledge:
		return NewAcknowledge(), nil
	case enums.PduTypeActionRequest:
		return NewActionRequest(), nil
	case enums.PduTypeActionResponse:
		return NewActionResponse(), nil
	case enums.PduTypeDataQuery:
		return NewDataQuery(), nil
	case enums.PduTypeSetData:
		return NewSetData(), nil
	case enums.PduTypeData:
		return NewData(), nil
	case enums.PduTypeEventReport:
		return NewEventReport(), nil
	case enums.PduTypeComment:
		return NewComment(), nil
	case enums.PduTypeElectromagneticEmission:
		return NewElectromagneticEmission(), nil
	case enums.PduTypeDesignator:
		return NewDesignator(), nil
	case enums.PduTypeTransmitter:
		return NewTransmitter(), nil
	case enums.PduTypeSignal:
		return NewSignal(), nil
	case enums.PduTypeReceiver:
		return NewReceiver(), nil
	case enums.PduTypeIFF:
		return NewIFF(), nil
	case enums.PduTypeUnderwaterAcoustic:
		return NewUnderwaterAcoustic(), nil
	case enums.PduTypeSupplementalEmission:
		return NewSupplementalEmission(), nil
	case enums.PduTypeIntercomSignal:
		return NewIntercomSignal(), nil
	case enums.PduTypeIntercomControl:
		return NewIntercomControl(), nil
	case enums.PduTypeAggregateState:
		return NewAggregateState(), nil
	case enums.PduTypeIsGroupOf:
		return NewIsGroupOf(), nil
	case enums.PduTypeTransferOwnership:
		return NewTransferOwnership(), nil
	case enums.PduTypeIsPartOf:
		return NewIsPartOf(), nil
	case enums.PduTypeMinefieldState:
		return NewMinefieldState(), nil
	case enums.PduTypeMinefieldQuery:
		return NewMinefieldQuery(), nil
	case enums.PduTypeMinefieldData:
		return NewMinefieldData(), nil
	case enums.PduTypeMinefieldResponseNack:
		return NewMinefieldResponseNack(), nil
	case enums.PduTypeEnvironmentalProcess:
		return NewEnvironmentalProcess(), nil
	case enums.PduTypeGriddedData:
		return NewGriddedData(), nil
	case enums.PduTypePointObjectState:
		return NewPointObjectState(), nil
	case enums.PduTypeLinearObjectState:
		return NewLinearObjectState(), nil
	case enums.PduTypeArealObjectState:
		return NewArealObjectState(), nil
	case enums.PduTypeTSPI:
		return NewTSPI(), nil
	case enums.PduTypeAppearance:
		return NewAppearance(), nil
	case enums.PduTypeArticulatedParts:
		return NewArticulatedParts(), nil
	case enums.PduTypeLEFire:
		return NewLEFire(), nil
	case enums.PduTypeLEDetonation:
		return NewLEDetonation(), nil
	case enums.PduTypeCreateEntityR:
		return NewCreateEntityR(), nil
	case enums.PduTypeRemoveEntityR:
		return NewRemoveEntityR(), nil
	case enums.PduTypeStartResumeR:
		return NewStartResumeR(), nil
	case enums.PduTypeStopFreezeR:
		return NewStopFreezeR(), nil
	case enums.PduTypeAcknowledgeR:
		return NewAcknowledgeR(), nil
	case enums.PduTypeActionRequestR:
		return NewActionRequestR(), nil
	case enums.PduTypeActionResponseR:
		return NewActionResponseR(), nil
	case enums.PduTypeDataQueryR:
		return NewDataQueryR(), nil
	case enums.PduTypeSetDataR:
		return NewSetDataR(), nil
	case enums.PduTypeDataR:
		return NewDataR(), nil
	case enums.PduTypeEventReportR:
		return NewEventReportR(), nil
	case enums.PduTypeCommentR:
		return NewCommentR(), nil
	case enums.PduTypeRecordR:
		return NewRecordR(), nil
	case enums.PduTypeSetRecordR:
		return NewSetRecordR(), nil
	case enums.PduTypeRecordQueryR:
		return NewRecordQueryR(), nil
	case enums.PduTypeCollisionElastic:
		return NewCollisionElastic(), nil
	case enums.PduTypeEntityStateUpdate:
		return NewEntityStateUpdate(), nil
	case enums.PduTypeDirectedEnergyFire:
		return NewDirectedEnergyFire(), nil
	case enums.PduTypeEntityDamageStatus:
		return NewEntityDamageStatus(), nil
	case enums.PduTypeInformationOperationsAction:
		return NewInformationOperationsAction(), nil
	case enums.PduTypeInformationOperationsReport:
		return NewInformationOperationsReport(), nil
	case enums.PduTypeAttribute:
		return NewAttribute(), nil
	}
	return nil, codec.Unsupported(uint8(t))
}
