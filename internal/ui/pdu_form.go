package ui

// Interactive PDU builder.

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/dis/record"
)

// PDUSpec is what the builder collects: enough to produce a default PDU
// of one type, addressed to an exercise and an entity.
type PDUSpec struct {
	Type       enums.PduType
	ExerciseID uint8
	Entity     record.EntityID
	Marking    string // Entity State only
	Comment    string // Comment only, sent as one variable datum
	DatumID    uint32
	Stamp      bool // set a relative timestamp from the clock
}

// Build produces the PDU described by s. Fields the PDU type has no place
// for are ignored.
func (s PDUSpec) Build() (pdu.PDU, error) {
	p, err := pdu.New(s.Type)
	if err != nil {
		return nil, err
	}
	h := p.Header()
	h.ExerciseID = s.ExerciseID
	if s.Stamp {
		h.Timestamp = pdu.TimestampAt(time.Now())
	}
	pdu.SetSubject(p, s.Entity)

	switch v := p.(type) {
	case *pdu.EntityState:
		if len(s.Marking) > len(v.Marking.Characters) {
			return nil, fmt.Errorf("marking %q is longer than %d characters", s.Marking, len(v.Marking.Characters))
		}
		v.Marking = record.NewEntityMarking(s.Marking)
	case *pdu.Comment:
		v.OriginatingID = s.Entity
		if s.Comment != "" {
			v.Datums.Variable = append(v.Datums.Variable, record.NewVariableDatum(s.DatumID, []byte(s.Comment)))
		}
	}
	return p, nil
}

// PDUForm is a huh form bound to a PDUSpec.
type PDUForm struct {
	Form *huh.Form

	typ      enums.PduType
	exercise string
	entity   string
	marking  string
	comment  string
	datumID  string
	stamp    bool
}

// BuildPDUForm returns a form prefilled from defaults. After the form
// completes, Spec returns the values entered.
func BuildPDUForm(defaults PDUSpec) *PDUForm {
	if defaults.Type == 0 {
		defaults.Type = enums.PduTypeEntityState
	}
	f := &PDUForm{
		typ:      defaults.Type,
		exercise: strconv.Itoa(int(defaults.ExerciseID)),
		entity:   defaults.Entity.String(),
		marking:  defaults.Marking,
		comment:  defaults.Comment,
		datumID:  strconv.FormatUint(uint64(defaults.DatumID), 10),
		stamp:    defaults.Stamp,
	}

	typeGroup := huh.NewGroup(
		huh.NewSelect[enums.PduType]().
			Title("PDU type").
			Description("Every PDU type of IEEE 1278.1-2012.").
			Key("pdu_type").
			Options(TypeOptions()...).
			Height(12).
			Value(&f.typ),
	)

	addressGroup := huh.NewGroup(
		huh.NewInput().
			Title("Exercise ID").
			Description("1-255; 0 is not a valid exercise on the wire.").
			Key("exercise_id").
			Validate(validateUint(8)).
			Value(&f.exercise),
		huh.NewInput().
			Title("Entity").
			Description("site:application:entity, e.g. 1:1:42.").
			Key("entity").
			Validate(func(s string) error {
				_, err := ParseEntityID(s)
				return err
			}).
			Value(&f.entity),
		huh.NewConfirm().
			Title("Timestamp").
			Description("Stamp the header with the current time.").
			Key("stamp").
			Value(&f.stamp),
	)

	markingGroup := huh.NewGroup(
		huh.NewInput().
			Title("Marking").
			Description("Up to 11 ASCII characters.").
			Key("marking").
			CharLimit(11).
			Value(&f.marking),
	).WithHideFunc(func() bool { return f.typ != enums.PduTypeEntityState })

	commentGroup := huh.NewGroup(
		huh.NewInput().
			Title("Comment text").
			Key("comment").
			Value(&f.comment),
		huh.NewInput().
			Title("Datum ID").
			Description("Variable datum ID the text is sent under.").
			Key("datum_id").
			Validate(validateUint(32)).
			Value(&f.datumID),
	).WithHideFunc(func() bool { return f.typ != enums.PduTypeComment })

	f.Form = huh.NewForm(typeGroup, addressGroup, markingGroup, commentGroup)
	return f
}

// Spec parses the values currently held by the form.
func (f *PDUForm) Spec() (PDUSpec, error) {
	exercise, err := strconv.ParseUint(strings.TrimSpace(f.exercise), 10, 8)
	if err != nil {
		return PDUSpec{}, fmt.Errorf("exercise id: %w", err)
	}
	entity, err := ParseEntityID(f.entity)
	if err != nil {
		return PDUSpec{}, err
	}
	datumID, err := strconv.ParseUint(strings.TrimSpace(f.datumID), 10, 32)
	if err != nil {
		return PDUSpec{}, fmt.Errorf("datum id: %w", err)
	}
	return PDUSpec{
		Type:       f.typ,
		ExerciseID: uint8(exercise),
		Entity:     entity,
		Marking:    f.marking,
		Comment:    f.comment,
		DatumID:    uint32(datumID),
		Stamp:      f.stamp,
	}, nil
}

// TypeOptions lists every supported PDU type as a select option.
func TypeOptions() []huh.Option[enums.PduType] {
	types := pdu.SupportedTypes()
	opts := make([]huh.Option[enums.PduType], 0, len(types))
	for _, t := range types {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%2d  %s", uint8(t), t), t))
	}
	return opts
}

// ParseEntityID parses "site:application:entity".
func ParseEntityID(s string) (record.EntityID, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return record.EntityID{}, fmt.Errorf("entity %q: want site:application:entity", s)
	}
	var v [3]uint16
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 16)
		if err != nil {
			return record.EntityID{}, fmt.Errorf("entity %q: %w", s, err)
		}
		v[i] = uint16(n)
	}
	return record.EntityID{Site: v[0], Application: v[1], Entity: v[2]}, nil
}

func validateUint(bits int) func(string) error {
	return func(s string) error {
		if _, err := strconv.ParseUint(strings.TrimSpace(s), 10, bits); err != nil {
			return fmt.Errorf("enter a number that fits in %d bits", bits)
		}
		return nil
	}
}
