// 指示: miu200521358
package rinteractor

import (
	"math"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

const (
	// tStanceVerticalToleranceRadian は腕の上下ぶれの許容角。
	tStanceVerticalToleranceRadian = 10.0 * math.Pi / 180.0
	// tStanceDepthToleranceRadian は腕の前後ぶれの許容角。
	tStanceDepthToleranceRadian = 30.0 * math.Pi / 180.0
)

// isTstanceBinding はバインド済みボーン位置から骨格がTスタンス相当か判定する。
// 左右上腕→前腕の方向がほぼ水平かつ横向きで、左右のX符号が逆なら真とする。
// 判定に必要なボーンが揃っていない場合は判定不能として真を返す。
func isTstanceBinding(bindings map[model.JointKey][]*model.Bone) bool {
	leftUpper := firstBone(bindings, model.JointLeftUpperArm)
	leftLower := firstBone(bindings, model.JointLeftLowerArm)
	rightUpper := firstBone(bindings, model.JointRightUpperArm)
	rightLower := firstBone(bindings, model.JointRightLowerArm)
	if leftUpper == nil || leftLower == nil || rightUpper == nil || rightLower == nil {
		return true
	}

	leftDirection := leftLower.Position.Subed(leftUpper.Position)
	rightDirection := rightLower.Position.Subed(rightUpper.Position)
	if leftDirection.Length() <= degenerateLengthEpsilon ||
		rightDirection.Length() <= degenerateLengthEpsilon {
		return true
	}

	if !isSidewaysArmDirection(leftDirection.Normalized()) ||
		!isSidewaysArmDirection(rightDirection.Normalized()) {
		return false
	}

	// Tスタンスなら左右の腕は反対方向へ伸びる。
	return leftDirection.X*rightDirection.X < 0
}

// isSidewaysArmDirection は正規化済み腕方向が水平・横向きの許容範囲内か判定する。
func isSidewaysArmDirection(direction mmath.Vec3) bool {
	verticalAngle := math.Asin(mmath.Clamped(direction.Y, -1, 1))
	if math.Abs(verticalAngle) > tStanceVerticalToleranceRadian {
		return false
	}
	depthAngle := math.Asin(mmath.Clamped(direction.Z, -1, 1))
	return math.Abs(depthAngle) <= tStanceDepthToleranceRadian
}

// firstBone は関節キーの先頭バインドボーンを返す。
func firstBone(bindings map[model.JointKey][]*model.Bone, key model.JointKey) *model.Bone {
	bones := bindings[key]
	if len(bones) == 0 {
		return nil
	}
	return bones[0]
}
