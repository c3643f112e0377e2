package enums

import "testing"

func TestPduTypeString(t *testing.T) {
	tests := []struct {
		code PduType
		want string
	}{
		{PduTypeEntityState, "Entity State"},
		{PduTypeAcknowledge, "Acknowledge"},
		{PduTypeAttribute, "Attribute"},
		{PduType(73), "Unknown(73)"},
		{PduType(255), "Unknown(255)"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("PduType(%d).String() = %q, want %q", uint8(tt.code), got, tt.want)
		}
	}
}

func TestPduTypesCoverEveryBody(t *testing.T) {
	types := PduTypes()
	if len(types) != 72 {
		t.Fatalf("len(PduTypes()) = %d, want 72", len(types))
	}
	for i, typ := range types {
		if typ != PduType(i+1) {
			t.Errorf("PduTypes()[%d] = %d, want %d", i, typ, i+1)
		}
		if !typ.IsKnown() {
			t.Errorf("%d not in name table", typ)
		}
		if typ.Family() == FamilyOther {
			t.Errorf("%s has no family", typ)
		}
	}
}

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		code PduType
		want ProtocolFamily
	}{
		{PduTypeEntityState, FamilyEntityInformation},
		{PduTypeCollisionElastic, FamilyEntityInformation},
		{PduTypeFire, FamilyWarfare},
		{PduTypeEntityDamageStatus, FamilyWarfare},
		{PduTypeRepairResponse, FamilyLogistics},
		{PduTypeComment, FamilySimulationManagement},
		{PduTypeIFF, FamilyDistributedEmissionRegeneration},
		{PduTypeIntercomControl, FamilyRadioCommunications},
		{PduTypeIsPartOf, FamilyEntityManagement},
		{PduTypeMinefieldResponseNack, FamilyMinefield},
		{PduTypeArealObjectState, FamilySyntheticEnvironment},
		{PduTypeLEDetonation, FamilyLiveEntity},
		{PduTypeRecordQueryR, FamilySimulationManagementReliability},
		{PduTypeInformationOperationsReport, FamilyInformationOperations},
		{PduType(200), FamilyOther},
	}
	for _, tt := range tests {
		if got := FamilyOf(tt.code); got != tt.want {
			t.Errorf("FamilyOf(%s) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestUnknownCodesRoundTrip(t *testing.T) {
	kind := EntityKind(0xEE)
	if kind.IsKnown() {
		t.Error("0xEE should not be a known entity kind")
	}
	if uint8(kind) != 0xEE {
		t.Errorf("code = %#x, want 0xEE", uint8(kind))
	}
	if got := kind.String(); got != "Unknown(238)" {
		t.Errorf("String() = %q", got)
	}

	status := RequestStatus(0xDEADBEEF)
	if got := status.String(); got != "Unknown(3735928559)" {
		t.Errorf("String() = %q", got)
	}
}

func TestForceIDSides(t *testing.T) {
	tests := []struct {
		code ForceID
		want string
	}{
		{ForceFriendly, "Friendly"},
		{ForceID(4), "Friendly 2"},
		{ForceID(8), "Opposing 3"},
		{ForceID(30), "Neutral 10"},
		{ForceID(31), "Unknown(31)"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ForceID(%d).String() = %q, want %q", uint8(tt.code), got, tt.want)
		}
	}
}

func TestEncodingScheme(t *testing.T) {
	e := NewEncodingScheme(EncodingClassRawBinary, 0x0123)
	if uint16(e) != 0x4123 {
		t.Errorf("packed = %#x, want 0x4123", uint16(e))
	}
	if e.Class() != EncodingClassRawBinary || e.Type() != 0x0123 {
		t.Errorf("Class/Type = %s/%#x", e.Class(), e.Type())
	}
}
