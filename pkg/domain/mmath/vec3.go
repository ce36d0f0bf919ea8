// 指示: miu200521358
// Package mmath はリターゲットエンジンで使うベクトル・回転の数学型を提供する。
package mmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// ZERO_VEC3 は零ベクトル。
var ZERO_VEC3 = Vec3{}

// UNIT_X_VEC3 はX軸単位ベクトル。
var UNIT_X_VEC3 = Vec3{Vec: r3.Vec{X: 1}}

// UNIT_Y_VEC3 はY軸単位ベクトル。
var UNIT_Y_VEC3 = Vec3{Vec: r3.Vec{Y: 1}}

// UNIT_Z_VEC3 はZ軸単位ベクトル。
var UNIT_Z_VEC3 = Vec3{Vec: r3.Vec{Z: 1}}

// UNIT_Y_NEG_VEC3 はY軸負方向の単位ベクトル。
var UNIT_Y_NEG_VEC3 = Vec3{Vec: r3.Vec{Y: -1}}

// NewVec3 は成分指定でベクトルを生成する。
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍の結果を返す。
func (v Vec3) MuledScalar(scale float64) Vec3 {
	return Vec3{Vec: r3.Scale(scale, v.Vec)}
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.Vec, other.Vec)
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{Vec: r3.Cross(v.Vec, other.Vec)}
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Distance は2点間距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return r3.Norm(r3.Sub(v.Vec, other.Vec))
}

// Normalized は正規化結果を返す。零ベクトルはそのまま返す。
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length <= 0 {
		return v
	}
	return Vec3{Vec: r3.Scale(1.0/length, v.Vec)}
}

// NearEquals は許容誤差内で一致するか判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// IsZero は零ベクトルか判定する。
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// MidPoint は2点の中点を返す。
func MidPoint(a Vec3, b Vec3) Vec3 {
	return Vec3{Vec: r3.Scale(0.5, r3.Add(a.Vec, b.Vec))}
}
