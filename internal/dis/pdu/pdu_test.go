package pdu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// pduOpts compares PDUs field by field, including the embedded base and
// the unexported header fields.
var pduOpts = cmp.Options{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateEmpty(),
}

// defaultSizes is the encoded size of every PDU type with all
// variable-length sections empty.
var defaultSizes = map[enums.PduType]int{
	1: 144, 2: 96, 3: 104, 4: 60, 5: 28, 6: 28, 7: 28, 8: 24, 9: 28, 10: 28,
	11: 28, 12: 28, 13: 44, 14: 40, 15: 32, 16: 40, 17: 40, 18: 40, 19: 40, 20: 40,
	21: 40, 22: 32, 23: 28, 24: 88, 25: 104, 26: 32, 27: 36, 28: 60, 29: 32, 30: 28,
	31: 32, 32: 40, 33: 136, 34: 40, 35: 40, 36: 52, 37: 72, 38: 40, 39: 44, 40: 26,
	41: 32, 42: 64, 43: 88, 44: 40, 45: 48, 46: 28, 47: 19, 48: 19, 49: 39, 50: 40,
	51: 32, 52: 32, 53: 48, 54: 40, 55: 32, 56: 44, 57: 40, 58: 44, 59: 40, 60: 40,
	61: 40, 62: 32, 63: 40, 64: 40, 65: 40, 66: 100, 67: 72, 68: 88, 69: 24, 70: 56,
	71: 40, 72: 32,
}

func roundTrip(t *testing.T, p PDU) PDU {
	t.Helper()
	b, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal(%s): %v", p.Type(), err)
	}
	if got, want := len(b), Length(p); got != want {
		t.Fatalf("%s: encoded %d bytes, Length says %d", p.Type(), got, want)
	}
	if got := p.Header().Length(); got != len(b) {
		t.Fatalf("%s: header length %d after Marshal, encoded %d", p.Type(), got, len(b))
	}
	if got := int(binary.BigEndian.Uint16(b[8:10])); got != len(b) {
		t.Fatalf("%s: wire length %d, encoded %d", p.Type(), got, len(b))
	}
	q, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal(%s): %v", p.Type(), err)
	}
	if diff := cmp.Diff(p, q, pduOpts); diff != "" {
		t.Fatalf("%s round trip mismatch (-want +got):\n%s", p.Type(), diff)
	}
	return q
}

func TestDefaultSizes(t *testing.T) {
	types := SupportedTypes()
	if len(types) != 72 {
		t.Fatalf("SupportedTypes() = %d types, want 72", len(types))
	}
	for _, typ := range types {
		p, err := New(typ)
		if err != nil {
			t.Fatalf("New(%d): %v", typ, err)
		}
		if p.Type() != typ {
			t.Errorf("New(%d).Type() = %d", typ, p.Type())
		}
		if got, want := Length(p), defaultSizes[typ]; got != want {
			t.Errorf("Length(%s) = %d, want %d", typ, got, want)
		}
		if got := p.Header().Length(); got != defaultSizes[typ] {
			t.Errorf("%s: fresh header length %d, want %d", typ, got, defaultSizes[typ])
		}
		if !p.Header().FamilyConsistent() {
			t.Errorf("%s: fresh header family %s is not the standard one", typ, p.Header().ProtocolFamily())
		}
	}
}

func TestDefaultRoundTrip(t *testing.T) {
	for _, typ := range SupportedTypes() {
		p, err := New(typ)
		if err != nil {
			t.Fatalf("New(%d): %v", typ, err)
		}
		q := roundTrip(t, p)
		if q.Header().ProtocolVersion != enums.ProtocolVersionIEEE1278_1_2012 {
			t.Errorf("%s: version %d after round trip", typ, q.Header().ProtocolVersion)
		}
	}
}

func TestPopulatedRoundTrip(t *testing.T) {
	for _, p := range populated() {
		p := p
		t.Run(p.Type().String(), func(t *testing.T) {
			roundTrip(t, p)
		})
	}
}

func TestEveryPrefixIsTruncated(t *testing.T) {
	for _, p := range populated() {
		b, err := Marshal(p)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", p.Type(), err)
		}
		for n := 0; n < len(b); n++ {
			_, err := Unmarshal(b[:n])
			if !errors.Is(err, codec.ErrTruncated) {
				t.Fatalf("%s: Unmarshal of %d/%d bytes: got %v, want ErrTruncated", p.Type(), n, len(b), err)
			}
		}
	}
}

func TestEveryBodyPrefixIsTruncated(t *testing.T) {
	for _, p := range populated() {
		b, err := Marshal(p)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", p.Type(), err)
		}
		h, _, err := DecodeHeader(b)
		if err != nil {
			t.Fatal(err)
		}
		for n := HeaderSize; n < len(b); n++ {
			_, err := UnmarshalBody(h, b[HeaderSize:n])
			if !errors.Is(err, codec.ErrTruncated) {
				t.Fatalf("%s: UnmarshalBody of %d/%d bytes: got %v, want ErrTruncated", p.Type(), n, len(b), err)
			}
		}
	}
}

func TestUnsupportedTypes(t *testing.T) {
	for _, code := range []uint8{0, 73, 129, 255} {
		if _, err := New(enums.PduType(code)); !errors.Is(err, codec.ErrUnsupportedPDUType) {
			t.Errorf("New(%d): got %v, want ErrUnsupportedPDUType", code, err)
		}
		b := make([]byte, 32)
		b[0] = 7
		b[2] = code
		binary.BigEndian.PutUint16(b[8:10], 32)
		if _, err := Unmarshal(b); !errors.Is(err, codec.ErrUnsupportedPDUType) {
			t.Errorf("Unmarshal type %d: got %v, want ErrUnsupportedPDUType", code, err)
		}
		got, err := Peek(b)
		if err != nil || got != enums.PduType(code) {
			t.Errorf("Peek type %d = %d, %v", code, got, err)
		}
	}
}

func TestLengthMismatch(t *testing.T) {
	b, err := Marshal(NewEntityState())
	if err != nil {
		t.Fatal(err)
	}

	short := bytes.Clone(b)
	binary.BigEndian.PutUint16(short[8:10], 8)
	if _, err := Unmarshal(short); !errors.Is(err, codec.ErrLengthMismatch) {
		t.Errorf("declared length 8: got %v, want ErrLengthMismatch", err)
	}

	long := append(bytes.Clone(b), 0, 0, 0, 0)
	binary.BigEndian.PutUint16(long[8:10], uint16(len(long)))
	if _, err := Unmarshal(long); !errors.Is(err, codec.ErrLengthMismatch) {
		t.Errorf("4 unread body bytes: got %v, want ErrLengthMismatch", err)
	}
}

func TestDecodeConcatenated(t *testing.T) {
	es := NewEntityState()
	es.EntityID = entA
	fire := NewFire()
	fire.FiringEntityID = entB
	fire.Range = 1500

	var buf []byte
	var err error
	for _, p := range []PDU{es, fire} {
		if buf, err = Append(buf, p); err != nil {
			t.Fatal(err)
		}
	}
	buf = append(buf, 0xde, 0xad, 0xbe)

	p1, n1, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n1 != 144 {
		t.Fatalf("first PDU consumed %d bytes, want 144", n1)
	}
	p2, n2, err := Decode(buf[n1:])
	if err != nil {
		t.Fatal(err)
	}
	if n2 != 96 {
		t.Fatalf("second PDU consumed %d bytes, want 96", n2)
	}
	if diff := cmp.Diff([]PDU{es, fire}, []PDU{p1, p2}, pduOpts); diff != "" {
		t.Fatalf("decoded PDUs mismatch (-want +got):\n%s", diff)
	}
	if _, _, err := Decode(buf[n1+n2:]); !errors.Is(err, codec.ErrTruncated) {
		t.Fatalf("3 trailing bytes: got %v, want ErrTruncated", err)
	}

	if _, err := Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal with trailing PDUs: %v", err)
	}
}

func TestDecodeAll(t *testing.T) {
	es := NewEntityState()
	fire := NewFire()
	buf, err := Append(nil, es)
	if err != nil {
		t.Fatal(err)
	}
	if buf, err = Append(buf, fire); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeAll(append(buf, 0, 0, 0))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if diff := cmp.Diff([]PDU{es, fire}, got, pduOpts); diff != "" {
		t.Fatalf("DecodeAll mismatch (-want +got):\n%s", diff)
	}

	// A damaged second PDU keeps the first.
	bad := append([]byte(nil), buf...)
	bad[144+2] = 200
	got, err = DecodeAll(bad)
	if !errors.Is(err, codec.ErrUnsupportedPDUType) {
		t.Fatalf("DecodeAll err = %v, want ErrUnsupportedPDUType", err)
	}
	if len(got) != 1 {
		t.Fatalf("DecodeAll kept %d PDUs, want 1", len(got))
	}

	if _, err := DecodeAll([]byte{7, 1}); !errors.Is(err, codec.ErrTruncated) {
		t.Fatalf("DecodeAll of 2 bytes: got %v, want ErrTruncated", err)
	}
}

func TestCountOverflow(t *testing.T) {
	es := NewEntityState()
	es.VariableParameters = make([]record.VariableParameter, 256)
	dst := []byte{1, 2, 3}
	got, err := Append(dst, es)
	if !errors.Is(err, codec.ErrValueOutOfRange) {
		t.Fatalf("256 variable parameters: got %v, want ErrValueOutOfRange", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("dst changed on failure: % x", got)
	}
	if es.Header().Length() != 144 {
		t.Fatalf("header length updated on failure: %d", es.Header().Length())
	}
}

func TestOversizePDU(t *testing.T) {
	c := NewComment()
	c.Datums.Variable = []record.VariableDatum{record.NewVariableDatum(1, make([]byte, 70000))}
	if _, err := Marshal(c); !errors.Is(err, codec.ErrValueOutOfRange) {
		t.Fatalf("70000-byte datum: got %v, want ErrValueOutOfRange", err)
	}
}

func TestEncodeValidation(t *testing.T) {
	sig := NewSignal()
	sig.Data = []byte{1, 2, 3}
	sig.LengthBits = 64
	if _, err := Marshal(sig); !errors.Is(err, codec.ErrValueOutOfRange) {
		t.Errorf("signal bits/data mismatch: got %v, want ErrValueOutOfRange", err)
	}

	rec := NewRecordR()
	rec.RecordSets = []record.RecordSet{{RecordLengthBits: 16, RecordCount: 2, Values: []byte{1}}}
	if _, err := Marshal(rec); !errors.Is(err, codec.ErrValueOutOfRange) {
		t.Errorf("short record set values: got %v, want ErrValueOutOfRange", err)
	}

	grid := NewGriddedData()
	grid.Axes = []record.GridAxis{{AxisType: record.GridAxisIrregular, PointsOnAxis: 4, Values: []uint16{1}}}
	if _, err := Marshal(grid); !errors.Is(err, codec.ErrValueOutOfRange) {
		t.Errorf("irregular axis value count: got %v, want ErrValueOutOfRange", err)
	}
}

func TestHugeCountIsMalformed(t *testing.T) {
	b, err := Marshal(NewDataQuery())
	if err != nil {
		t.Fatal(err)
	}
	// Fixed datum ID count follows the 20-byte request prefix.
	binary.BigEndian.PutUint32(b[HeaderSize+20:], 0xFFFFFFFF)
	if _, err := Unmarshal(b); !errors.Is(err, codec.ErrMalformedRecord) {
		t.Fatalf("huge datum ID count: got %v, want ErrMalformedRecord", err)
	}
}

func TestMinefieldDataFilter(t *testing.T) {
	mfd := NewMinefieldData()
	mfd.Mines = []Mine{{
		Location:        record.Vector3Float{X: 1},
		ThermalContrast: 3,
		EntityNumber:    7,
	}}
	if got := Length(mfd); got != 56 {
		t.Fatalf("Length with only locations selected = %d, want 56", got)
	}
	b, err := Marshal(mfd)
	if err != nil {
		t.Fatal(err)
	}
	q, err := Unmarshal(b)
	if err != nil {
		t.Fatal(err)
	}
	got := q.(*MinefieldData).Mines
	want := []Mine{{Location: record.Vector3Float{X: 1}}}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("unselected attributes were encoded (-want +got):\n%s", diff)
	}

	mfd.DataFilter = MineThermalContrast | MineEntityNumber
	q = roundTrip(t, mfd)
	if n := q.(*MinefieldData).Mines[0].EntityNumber; n != 7 {
		t.Fatalf("entity number = %d, want 7", n)
	}
}

func TestAggregateStatePadding(t *testing.T) {
	one := NewAggregateState()
	one.AggregateIDs = []record.AggregateID{entB}
	if got := Length(one); got != 136+6+2 {
		t.Fatalf("one aggregate ID: Length = %d, want 144", got)
	}
	two := NewAggregateState()
	two.AggregateIDs = []record.AggregateID{entA, entB}
	if got := Length(two); got != 136+12 {
		t.Fatalf("two aggregate IDs: Length = %d, want 148", got)
	}
	roundTrip(t, one)
	roundTrip(t, two)
}

func TestSignalPadding(t *testing.T) {
	sig := NewSignal()
	sig.SetData([]byte{1, 2, 3, 4, 5})
	if sig.LengthBits != 40 {
		t.Fatalf("LengthBits = %d, want 40", sig.LengthBits)
	}
	if got := Length(sig); got != 32+8 {
		t.Fatalf("Length = %d, want 40", got)
	}
}

func TestLiveEntityFlags(t *testing.T) {
	tspi := NewTSPI()
	tspi.Orientation = &record.LEEulerAngles{Theta: 1}
	tspi.MeasuredSpeed = ptr(uint16(12))
	b, err := Marshal(tspi)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 28+3+2 {
		t.Fatalf("TSPI with two optionals = %d bytes, want 33", len(b))
	}
	q := roundTrip(t, tspi).(*TSPI)
	if q.LinearVelocity != nil || q.DeadReckoning != nil {
		t.Fatalf("absent optionals decoded as present: %+v", q)
	}

	app := NewAppearance()
	app.EMAppearance = ptr(uint32(1))
	if got := Length(app); got != 19+1+4 {
		t.Fatalf("Appearance with EM appearance = %d, want 24", got)
	}
	roundTrip(t, app)

	app.AudioAppearance = ptr(uint32(2))
	f1, f2 := app.Flags()
	if f1 != 0x80 || f2 != 0x06 {
		t.Fatalf("Appearance flags = %#02x %#02x, want 0x80 0x06", f1, f2)
	}
	b, err = Marshal(app)
	if err != nil {
		t.Fatal(err)
	}
	// Flag bytes follow the 6-byte live entity ID.
	if b[HeaderSize+6] != 0x80 || b[HeaderSize+7] != 0x06 {
		t.Fatalf("wire flags = % x", b[HeaderSize+6:HeaderSize+8])
	}
	q2 := roundTrip(t, app).(*Appearance)
	if q2.EMAppearance == nil || *q2.AudioAppearance != 2 {
		t.Fatalf("EM/audio appearance lost: %+v", q2)
	}
}

func TestUnknownEnumCodes(t *testing.T) {
	es := NewEntityState()
	es.ForceID = enums.ForceID(200)
	es.EntityType.Kind = enums.EntityKind(250)
	es.DeadReckoning.Algorithm = enums.DeadReckoningAlgorithm(99)
	q := roundTrip(t, es).(*EntityState)
	if q.ForceID != 200 || q.EntityType.Kind != 250 || q.DeadReckoning.Algorithm != 99 {
		t.Fatalf("unknown codes not preserved: %+v", q)
	}
	if q.ForceID.IsKnown() {
		t.Fatalf("force 200 reported as known")
	}
}

func TestHeader(t *testing.T) {
	es := NewEntityState()
	h := es.Header()
	h.ExerciseID = 3
	h.Status = 0x13
	h.Timestamp = NewTimestamp(30*time.Minute, true)

	b, err := Marshal(es)
	if err != nil {
		t.Fatal(err)
	}
	got, n, err := DecodeHeader(b)
	if err != nil {
		t.Fatal(err)
	}
	if n != HeaderSize {
		t.Fatalf("DecodeHeader consumed %d bytes", n)
	}
	if got.PduType() != enums.PduTypeEntityState || got.ProtocolFamily() != enums.FamilyEntityInformation {
		t.Fatalf("header type/family = %d/%d", got.PduType(), got.ProtocolFamily())
	}
	if got.Length() != 144 || got.ExerciseID != 3 {
		t.Fatalf("header length/exercise = %d/%d", got.Length(), got.ExerciseID)
	}
	if !got.TransferredEntity() || got.LVC() != 1 || got.CoupledExtension() || got.TypeStatus() != 1 {
		t.Fatalf("status bits decoded wrong from %#x", got.Status)
	}
	if !bytes.Equal(got.AppendTo(nil), b[:HeaderSize]) {
		t.Fatalf("AppendTo does not reproduce the wire header")
	}

	if _, _, err := DecodeHeader(b[:11]); !errors.Is(err, codec.ErrTruncated) {
		t.Fatalf("11-byte header: got %v, want ErrTruncated", err)
	}
	if _, err := Peek(b[:2]); !errors.Is(err, codec.ErrTruncated) {
		t.Fatalf("Peek of 2 bytes: got %v, want ErrTruncated", err)
	}

	body, err := UnmarshalBody(got, b[HeaderSize:])
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(PDU(es), body, pduOpts); diff != "" {
		t.Fatalf("UnmarshalBody mismatch (-want +got):\n%s", diff)
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		past     time.Duration
		absolute bool
		units    uint32
	}{
		{"zero", 0, false, 0},
		{"half hour", 30 * time.Minute, true, 1 << 30},
		{"wraps", 90 * time.Minute, false, 1 << 30},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ts := NewTimestamp(tc.past, tc.absolute)
			if ts.Units() != tc.units {
				t.Fatalf("Units() = %d, want %d", ts.Units(), tc.units)
			}
			if ts.Absolute() != tc.absolute {
				t.Fatalf("Absolute() = %v", ts.Absolute())
			}
			want := tc.past % time.Hour
			if d := ts.PastHour() - want; d > time.Microsecond || d < -time.Microsecond {
				t.Fatalf("PastHour() = %v, want %v", ts.PastHour(), want)
			}
		})
	}
}

func TestSetProtocolFamily(t *testing.T) {
	p := NewFire()
	if err := p.Header().SetProtocolFamily(enums.FamilyLogistics); !errors.Is(err, codec.ErrValueOutOfRange) {
		t.Fatalf("logistics family on a Fire PDU: got %v", err)
	}
	if err := p.Header().SetProtocolFamily(enums.ProtocolFamily(150)); err != nil {
		t.Fatal(err)
	}
	if p.Header().FamilyConsistent() {
		t.Fatalf("family 150 reported consistent")
	}
	q := roundTrip(t, p)
	if q.Header().ProtocolFamily() != 150 {
		t.Fatalf("family after round trip = %d", q.Header().ProtocolFamily())
	}
}

func TestSetSubject(t *testing.T) {
	id := record.EntityID{Site: 4, Application: 5, Entity: 6}
	for _, typ := range SupportedTypes() {
		p, err := New(typ)
		if err != nil {
			t.Fatalf("New(%s): %v", typ, err)
		}
		set := SetSubject(p, id)
		got, ok := Subject(p)
		if set != ok {
			t.Errorf("%s: SetSubject = %v but Subject ok = %v", typ, set, ok)
			continue
		}
		if ok && got != id {
			t.Errorf("%s: Subject = %v, want %v", typ, got, id)
		}
	}
}

func TestSummaryNamesEntity(t *testing.T) {
	es := NewEntityState()
	es.Header().ExerciseID = 2
	SetSubject(es, record.EntityID{Site: 1, Application: 2, Entity: 3})
	es.Marking = record.NewEntityMarking("EAGLE1")
	got := Summary(es)
	for _, want := range []string{"Entity State(1)", "ex=2", "entity=1:2:3", `marking="EAGLE1"`} {
		if !bytes.Contains([]byte(got), []byte(want)) {
			t.Errorf("Summary = %q, missing %q", got, want)
		}
	}
}
