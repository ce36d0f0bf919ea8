// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// parallelDotThreshold は2方向を平行とみなす内積しきい値。
	parallelDotThreshold = 0.9999
	// quaternionAxisEpsilon は回転軸の縮退判定しきい値。
	quaternionAxisEpsilon = 1e-8
)

// Quaternion は回転を表す。
type Quaternion struct {
	mgl64.Quat
}

// NewQuaternion は単位クォータニオンを生成する。
func NewQuaternion() Quaternion {
	return Quaternion{Quat: mgl64.QuatIdent()}
}

// NewQuaternionXYZW は成分指定で回転を生成する。正規化して返す。
func NewQuaternionXYZW(x, y, z, w float64) Quaternion {
	return Quaternion{Quat: mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}}.Normalized()
}

// NewQuaternionFromDegrees はXYZ順のオイラー角(度)から回転を生成する。
func NewQuaternionFromDegrees(xDegree, yDegree, zDegree float64) Quaternion {
	return Quaternion{Quat: mgl64.AnglesToQuat(
		DegToRad(xDegree), DegToRad(yDegree), DegToRad(zDegree), mgl64.XYZ)}
}

// NewQuaternionFromAxisAngle は軸と角度(ラジアン)から回転を生成する。
func NewQuaternionFromAxisAngle(axis Vec3, radian float64) Quaternion {
	normalized := axis.Normalized()
	return Quaternion{Quat: mgl64.QuatRotate(radian,
		mgl64.Vec3{normalized.X, normalized.Y, normalized.Z})}
}

// NewQuaternionRotate はfromをtoへ写す最短弧回転を生成する。
// 平行なら単位回転、反平行ならfromに垂直な軸での180度回転を返す。
func NewQuaternionRotate(from Vec3, to Vec3) Quaternion {
	fromNorm := from.Normalized()
	toNorm := to.Normalized()
	if fromNorm.Length() <= quaternionAxisEpsilon || toNorm.Length() <= quaternionAxisEpsilon {
		return NewQuaternion()
	}

	dot := Clamped(fromNorm.Dot(toNorm), -1.0, 1.0)
	if dot > parallelDotThreshold {
		return NewQuaternion()
	}
	if dot < -parallelDotThreshold {
		return NewQuaternionFromAxisAngle(perpendicularAxis(fromNorm), math.Pi)
	}

	axis := fromNorm.Cross(toNorm)
	if axis.Length() <= quaternionAxisEpsilon {
		return NewQuaternion()
	}
	return NewQuaternionFromAxisAngle(axis, math.Acos(dot))
}

// perpendicularAxis は指定方向に垂直な軸を返す。
func perpendicularAxis(direction Vec3) Vec3 {
	axis := direction.Cross(UNIT_Y_VEC3)
	if axis.Length() <= quaternionAxisEpsilon {
		axis = direction.Cross(UNIT_X_VEC3)
	}
	return axis.Normalized()
}

// Muled は回転の合成結果(q∘other)を返す。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion{Quat: q.Quat.Mul(other.Quat)}
}

// MulVec3 はベクトルへ回転を適用する。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	rotated := q.Quat.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return NewVec3(rotated.X(), rotated.Y(), rotated.Z())
}

// Inverted は逆回転を返す。
func (q Quaternion) Inverted() Quaternion {
	return Quaternion{Quat: q.Quat.Inverse()}
}

// Negated は全成分の符号を反転した結果を返す。回転としてはqと同一。
func (q Quaternion) Negated() Quaternion {
	return Quaternion{Quat: mgl64.Quat{W: -q.W, V: q.V.Mul(-1)}}
}

// Normalized は正規化結果を返す。
func (q Quaternion) Normalized() Quaternion {
	return Quaternion{Quat: q.Quat.Normalize()}
}

// Slerped は球面線形補間の結果を返す。
func (q Quaternion) Slerped(other Quaternion, t float64) Quaternion {
	return Quaternion{Quat: mgl64.QuatSlerp(q.Quat, other.Quat, t)}
}

// Dot は内積を返す。
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.Quat.Dot(other.Quat)
}

// NearEquals は回転として許容誤差内で一致するか判定する。
// qと-qは同一回転として扱う。
func (q Quaternion) NearEquals(other Quaternion, epsilon float64) bool {
	return math.Abs(q.Dot(other)) >= 1.0-epsilon
}

// IsFinite は全成分が有限値か判定する。
func (q Quaternion) IsFinite() bool {
	values := []float64{q.W, q.X(), q.Y(), q.Z()}
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}
	return true
}

// ToDegrees はXYZ順のオイラー角(度)を返す。
func (q Quaternion) ToDegrees() Vec3 {
	m := q.Quat.Mat4()
	sy := Clamped(m.At(0, 2), -1.0, 1.0)
	yRad := math.Asin(sy)
	xRad := math.Atan2(-m.At(1, 2), m.At(2, 2))
	zRad := math.Atan2(-m.At(0, 1), m.At(0, 0))
	return NewVec3(RadToDeg(xRad), RadToDeg(yRad), RadToDeg(zRad))
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(degree float64) float64 {
	return degree * math.Pi / 180.0
}

// RadToDeg はラジアンを度へ変換する。
func RadToDeg(radian float64) float64 {
	return radian * 180.0 / math.Pi
}

// Clamped はmin-maxで値をクランプする。
func Clamped(value float64, min float64, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Lerp は線形補間の結果を返す。
func Lerp(from float64, to float64, t float64) float64 {
	return from + (to-from)*t
}
