package ui

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/dis/record"
)

func TestPDUSpecBuild(t *testing.T) {
	id := record.EntityID{Site: 1, Application: 2, Entity: 3}

	p, err := PDUSpec{Type: enums.PduTypeEntityState, ExerciseID: 4, Entity: id, Marking: "VIPER"}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	es, ok := p.(*pdu.EntityState)
	if !ok {
		t.Fatalf("Build returned %T", p)
	}
	if es.Header().ExerciseID != 4 || es.EntityID != id || es.Marking.Text() != "VIPER" {
		t.Errorf("entity state = ex %d id %v marking %q", es.Header().ExerciseID, es.EntityID, es.Marking.Text())
	}
	if pdu.Length(es) != 144 {
		t.Errorf("Length = %d, want 144", pdu.Length(es))
	}

	p, err = PDUSpec{Type: enums.PduTypeComment, ExerciseID: 1, Entity: id, Comment: "hello", DatumID: 42}.Build()
	if err != nil {
		t.Fatalf("Build comment: %v", err)
	}
	c := p.(*pdu.Comment)
	want := []record.VariableDatum{record.NewVariableDatum(42, []byte("hello"))}
	if diff := cmp.Diff(want, c.Datums.Variable); diff != "" {
		t.Errorf("comment datums (-want +got):\n%s", diff)
	}
	if c.OriginatingID != id {
		t.Errorf("OriginatingID = %v, want %v", c.OriginatingID, id)
	}
	if _, err := pdu.Marshal(c); err != nil {
		t.Errorf("Marshal comment: %v", err)
	}

	p, err = PDUSpec{Type: enums.PduTypeFire, Entity: id, Stamp: true}.Build()
	if err != nil {
		t.Fatalf("Build fire: %v", err)
	}
	if got, _ := pdu.Subject(p); got != id {
		t.Errorf("fire subject = %v, want %v", got, id)
	}
}

func TestPDUSpecBuildErrors(t *testing.T) {
	if _, err := (PDUSpec{Type: 200}).Build(); !errors.Is(err, codec.ErrUnsupportedPDUType) {
		t.Errorf("type 200: err = %v, want ErrUnsupportedPDUType", err)
	}
	if _, err := (PDUSpec{Type: enums.PduTypeEntityState, Marking: "TWELVE CHARS"}).Build(); err == nil {
		t.Error("12-character marking: expected error")
	}
}

func TestPDUFormSpec(t *testing.T) {
	f := BuildPDUForm(PDUSpec{ExerciseID: 7, Entity: record.EntityID{Site: 1, Application: 1, Entity: 9}})
	if f.typ != enums.PduTypeEntityState {
		t.Errorf("default type = %v", f.typ)
	}
	if f.entity != "1:1:9" || f.exercise != "7" {
		t.Errorf("prefill entity=%q exercise=%q", f.entity, f.exercise)
	}

	f.typ = enums.PduTypeTransmitter
	f.entity = " 2:3:4 "
	got, err := f.Spec()
	if err != nil {
		t.Fatalf("Spec: %v", err)
	}
	want := PDUSpec{Type: enums.PduTypeTransmitter, ExerciseID: 7, Entity: record.EntityID{Site: 2, Application: 3, Entity: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Spec (-want +got):\n%s", diff)
	}

	f.exercise = "300"
	if _, err := f.Spec(); err == nil {
		t.Error("exercise 300: expected error")
	}
}

func TestParseEntityID(t *testing.T) {
	tests := []struct {
		in      string
		want    record.EntityID
		wantErr bool
	}{
		{in: "1:2:3", want: record.EntityID{Site: 1, Application: 2, Entity: 3}},
		{in: "65535:0:65535", want: record.EntityID{Site: 65535, Entity: 65535}},
		{in: "1:2", wantErr: true},
		{in: "1:2:x", wantErr: true},
		{in: "1:2:70000", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEntityID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEntityID(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEntityID(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTypeOptions(t *testing.T) {
	opts := TypeOptions()
	if len(opts) != int(enums.MaxPduType) {
		t.Fatalf("len = %d, want %d", len(opts), enums.MaxPduType)
	}
	if opts[0].Value != enums.PduTypeEntityState || opts[0].Key != " 1  Entity State" {
		t.Errorf("first option = %q/%v", opts[0].Key, opts[0].Value)
	}
}

func TestValidateUint(t *testing.T) {
	v := validateUint(8)
	if err := v("255"); err != nil {
		t.Errorf("255: %v", err)
	}
	if err := v("256"); err == nil {
		t.Error("256: expected error")
	}
	if err := v("abc"); err == nil {
		t.Error("abc: expected error")
	}
}
