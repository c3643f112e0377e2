package record

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
)

// Live entity records use scaled integers in place of floats to keep the
// PDUs small.
const (
	RelativeWorldCoordinatesSize = 8
	LEVectorSize                 = 6
	LEEulerAnglesSize            = 3
	LEPositionErrorSize          = 4
	LEOrientationErrorSize       = 6
	LEDeadReckoningSize          = 13
)

// RelativeWorldCoordinates is an offset from a numbered reference point.
type RelativeWorldCoordinates struct {
	ReferencePoint uint16
	DeltaX         int16
	DeltaY         int16
	DeltaZ         int16
}

func (c RelativeWorldCoordinates) Marshal(w *codec.Writer) {
	w.Uint16(c.ReferencePoint)
	w.Int16(c.DeltaX)
	w.Int16(c.DeltaY)
	w.Int16(c.DeltaZ)
}

func (c *RelativeWorldCoordinates) Unmarshal(r *codec.Reader) {
	c.ReferencePoint = r.Uint16()
	c.DeltaX = r.Int16()
	c.DeltaY = r.Int16()
	c.DeltaZ = r.Int16()
}

// LEVector is a velocity, acceleration or offset in scaled 16-bit units.
type LEVector struct {
	X, Y, Z int16
}

func (v LEVector) Marshal(w *codec.Writer) {
	w.Int16(v.X)
	w.Int16(v.Y)
	w.Int16(v.Z)
}

func (v *LEVector) Unmarshal(r *codec.Reader) {
	v.X = r.Int16()
	v.Y = r.Int16()
	v.Z = r.Int16()
}

// LEEulerAngles is an orientation in binary angle units.
type LEEulerAngles struct {
	Psi, Theta, Phi int8
}

func (e LEEulerAngles) Marshal(w *codec.Writer) {
	w.Int8(e.Psi)
	w.Int8(e.Theta)
	w.Int8(e.Phi)
}

func (e *LEEulerAngles) Unmarshal(r *codec.Reader) {
	e.Psi = r.Int8()
	e.Theta = r.Int8()
	e.Phi = r.Int8()
}

type LEPositionError struct {
	HorizontalError uint16
	VerticalError   uint16
}

func (e LEPositionError) Marshal(w *codec.Writer) {
	w.Uint16(e.HorizontalError)
	w.Uint16(e.VerticalError)
}

func (e *LEPositionError) Unmarshal(r *codec.Reader) {
	e.HorizontalError = r.Uint16()
	e.VerticalError = r.Uint16()
}

type LEOrientationError struct {
	AzimuthError   uint16
	ElevationError uint16
	RotationError  uint16
}

func (e LEOrientationError) Marshal(w *codec.Writer) {
	w.Uint16(e.AzimuthError)
	w.Uint16(e.ElevationError)
	w.Uint16(e.RotationError)
}

func (e *LEOrientationError) Unmarshal(r *codec.Reader) {
	e.AzimuthError = r.Uint16()
	e.ElevationError = r.Uint16()
	e.RotationError = r.Uint16()
}

// LEDeadReckoning is the compact dead reckoning record.
type LEDeadReckoning struct {
	Algorithm          enums.DeadReckoningAlgorithm
	LinearAcceleration LEVector
	AngularVelocity    LEVector
}

func (d LEDeadReckoning) Marshal(w *codec.Writer) {
	w.Uint8(uint8(d.Algorithm))
	d.LinearAcceleration.Marshal(w)
	d.AngularVelocity.Marshal(w)
}

func (d *LEDeadReckoning) Unmarshal(r *codec.Reader) {
	d.Algorithm = enums.DeadReckoningAlgorithm(r.Uint8())
	d.LinearAcceleration.Unmarshal(r)
	d.AngularVelocity.Unmarshal(r)
}
