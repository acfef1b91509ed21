package offset

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/p3d_offset/utils"
)

var (
	ErrNoopTransform    = errors.New("translation and rotation are both zero")
	ErrInvalidAxisOrder = errors.New("axis order must be a permutation of X, Y and Z")
)

type Axis int

const (
	AXIS_X Axis = iota
	AXIS_Y
	AXIS_Z
)

func (a Axis) String() string {
	return string("XYZ"[a])
}

func (a Axis) rotate(angle float32) mgl32.Mat4 {
	switch a {
	case AXIS_X:
		return mgl32.HomogRotate3DX(angle)
	case AXIS_Y:
		return mgl32.HomogRotate3DY(angle)
	default:
		return mgl32.HomogRotate3DZ(angle)
	}
}

// AxisOrder lists axes from the one applied last to the one applied first.
type AxisOrder [3]Axis

var DefaultAxisOrder = AxisOrder{AXIS_Z, AXIS_Y, AXIS_X}

func ParseAxisOrder(s string) (AxisOrder, error) {
	var order AxisOrder
	if len(s) != 3 {
		return order, errors.Wrapf(ErrInvalidAxisOrder, "%q", s)
	}
	var seen [3]bool
	for i, c := range strings.ToUpper(s) {
		idx := strings.IndexRune("XYZ", c)
		if idx < 0 || seen[idx] {
			return order, errors.Wrapf(ErrInvalidAxisOrder, "%q", s)
		}
		seen[idx] = true
		order[i] = Axis(idx)
	}
	return order, nil
}

func (o AxisOrder) String() string {
	return o[0].String() + o[1].String() + o[2].String()
}

// Transform is one rigid edit. All derived forms are built once by Compose.
type Transform struct {
	translation mgl32.Vec3
	rotation    mgl32.Vec3 // degrees, normalized
	order       AxisOrder

	rotationMat mgl32.Mat4
	affine      mgl32.Mat4
	quat        mgl32.Quat
}

// Compose builds a transform without validating it.
func Compose(translation, rotationDegrees mgl32.Vec3, order AxisOrder) *Transform {
	t := &Transform{translation: translation, order: order}
	for i, a := range rotationDegrees {
		t.rotation[i] = utils.NormalizeDegrees(a)
	}

	radians := utils.DegreesToRadiansV3(t.rotation)
	t.rotationMat = mgl32.Ident4()
	for _, axis := range order {
		t.rotationMat = t.rotationMat.Mul4(axis.rotate(radians[axis]))
	}
	t.quat = mgl32.Mat4ToQuat(t.rotationMat)
	t.affine = mgl32.Translate3D(translation[0], translation[1], translation[2]).Mul4(t.rotationMat)
	return t
}

// NewTransform parses the axis order and rejects transforms that change
// nothing.
func NewTransform(translation, rotationDegrees mgl32.Vec3, order string) (*Transform, error) {
	axisOrder := DefaultAxisOrder
	if order != "" {
		var err error
		if axisOrder, err = ParseAxisOrder(order); err != nil {
			return nil, err
		}
	}
	t := Compose(translation, rotationDegrees, axisOrder)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Transform) Validate() error {
	if t.translation == (mgl32.Vec3{}) && t.rotation == (mgl32.Vec3{}) {
		return ErrNoopTransform
	}
	return nil
}

func (t *Transform) Translation() mgl32.Vec3 { return t.translation }
func (t *Transform) Rotation() mgl32.Vec3    { return t.rotation }
func (t *Transform) Order() AxisOrder        { return t.order }

// Affine is translation composed with rotation, for positions.
func (t *Transform) Affine() mgl32.Mat4 { return t.affine }

// RotationMatrix has no translation, for directions.
func (t *Transform) RotationMatrix() mgl32.Mat4 { return t.rotationMat }

func (t *Transform) Quat() mgl32.Quat { return t.quat }

func (t *Transform) String() string {
	return fmt.Sprintf("translate %v rotate %v order %v", t.translation, t.rotation, t.order)
}

func (t *Transform) point(v mgl32.Vec3) mgl32.Vec3 {
	return utils.TransformPoint(t.affine, v)
}

func (t *Transform) direction(v mgl32.Vec3) mgl32.Vec3 {
	return utils.TransformDirection(t.rotationMat, v)
}

// position moves v, or only rotates it when translate is false.
func (t *Transform) position(v mgl32.Vec3, translate bool) mgl32.Vec3 {
	if translate {
		return t.point(v)
	}
	return t.direction(v)
}

func (t *Transform) matrix(translate bool) mgl32.Mat4 {
	if translate {
		return t.affine
	}
	return t.rotationMat
}
