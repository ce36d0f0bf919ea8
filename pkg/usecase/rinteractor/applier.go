// 指示: miu200521358
package rinteractor

import (
	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// applyRotationDelta は平滑化済みデルタを関節キーの全バインドボーンへ書き込む。
// 各ボーンは自身の安静回転にデルタを合成するため、同一関節キーでも
// 安静回転が異なるアーマチュア間で最終値は一致しない。
func applyRotationDelta(
	skeleton *model.Skeleton, bones []*model.Bone,
	restPoses map[int]RestPose, delta mmath.Quaternion,
) {
	for _, bone := range bones {
		rest, exists := restPoses[bone.Index()]
		if !exists {
			continue
		}
		bone.LocalRotation = rest.Rotation.Muled(delta).Normalized()
		skeleton.InvalidateWorld(bone.Index())
	}
}

// applyAxisDegree は平滑化済み軸角度(度)を関節キーの全バインドボーンへ書き込む。
// 対象軸以外のオイラー角は安静値を保持する。
func applyAxisDegree(
	skeleton *model.Skeleton, bones []*model.Bone,
	restPoses map[int]RestPose, degree float64,
) {
	for _, bone := range bones {
		rest, exists := restPoses[bone.Index()]
		if !exists {
			continue
		}
		bone.LocalRotation = mmath.NewQuaternionFromDegrees(
			rest.EulerDegrees.X, rest.EulerDegrees.Y, degree)
		skeleton.InvalidateWorld(bone.Index())
	}
}
