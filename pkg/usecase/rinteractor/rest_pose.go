// 指示: miu200521358
package rinteractor

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// RestPose は1ボーンのバインド時ローカル回転スナップショットを表す。
// EulerDegreesは戦略Bの単一軸書き込みで非対象軸の保持に使う。
type RestPose struct {
	Rotation     mmath.Quaternion
	EulerDegrees mmath.Vec3
}

// captureRestPoses はバインド済み全ボーンの現在ローカル回転を取得する。
// キーはボーンindex(同一コレクション内で安定)で、同名ボーンも別々に保持する。
// 取得は1回きりで、以降のフレーム適用がこのスナップショットを書き換えることはない。
func captureRestPoses(bindings map[model.JointKey][]*model.Bone) (map[int]RestPose, error) {
	restPoses := map[int]RestPose{}
	for key, bones := range bindings {
		for _, bone := range bones {
			if bone == nil {
				continue
			}
			if _, exists := restPoses[bone.Index()]; exists {
				continue
			}
			var rotation mmath.Quaternion
			if err := deepcopy.Copy(&rotation, &bone.LocalRotation); err != nil {
				return nil, fmt.Errorf("安静姿勢の取得に失敗しました: %s(%s): %w",
					bone.Name(), key, err)
			}
			restPoses[bone.Index()] = RestPose{
				Rotation:     rotation,
				EulerDegrees: rotation.ToDegrees(),
			}
		}
	}
	return restPoses, nil
}
