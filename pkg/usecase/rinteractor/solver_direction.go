// 指示: miu200521358
package rinteractor

import (
	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// chainConfig は戦略Aの1関節分の方向設定を表す。
// バインド時安静方向からFrom→To観測方向への最短弧回転が目標デルタとなる。
type chainConfig struct {
	Key  model.JointKey
	From model.LandmarkIndex
	To   model.LandmarkIndex
}

// chainConfigs は四肢の方向設定表。
var chainConfigs = []*chainConfig{
	{Key: model.JointLeftUpperArm, From: model.LandmarkLeftShoulder, To: model.LandmarkLeftElbow},
	{Key: model.JointLeftLowerArm, From: model.LandmarkLeftElbow, To: model.LandmarkLeftWrist},
	{Key: model.JointRightUpperArm, From: model.LandmarkRightShoulder, To: model.LandmarkRightElbow},
	{Key: model.JointRightLowerArm, From: model.LandmarkRightElbow, To: model.LandmarkRightWrist},
	{Key: model.JointLeftUpperLeg, From: model.LandmarkLeftHip, To: model.LandmarkLeftKnee},
	{Key: model.JointLeftLowerLeg, From: model.LandmarkLeftKnee, To: model.LandmarkLeftAnkle},
	{Key: model.JointRightUpperLeg, From: model.LandmarkRightHip, To: model.LandmarkRightKnee},
	{Key: model.JointRightLowerLeg, From: model.LandmarkRightKnee, To: model.LandmarkRightAnkle},
}

// spineChainKeys は胴体デルタを分配する脊椎セグメントの関節キー。
var spineChainKeys = []model.JointKey{
	model.JointSpine,
	model.JointNeck,
}

// solveDirectionTargets は戦略Aの目標デルタ回転を関節キーごとに計算する。
// 観測方向が縮退しているか可視度が不足する関節は結果に含めない。
// degenerateKeysには縮退により単位回転へ落とした関節キーが入る。
func solveDirectionTargets(
	processed *PreprocessedFrame, config EngineConfig,
) (targets map[model.JointKey]mmath.Quaternion, degenerateKeys []model.JointKey) {
	targets = map[model.JointKey]mmath.Quaternion{}

	for _, chain := range chainConfigs {
		if !processed.IsVisible(chain.From, config.VisibilityThreshold) ||
			!processed.IsVisible(chain.To, config.VisibilityThreshold) {
			continue
		}
		restDirection, exists := config.restDirection(chain.Key)
		if !exists {
			continue
		}
		observed := processed.Direction(chain.From, chain.To)
		if observed.Length() <= degenerateLengthEpsilon {
			// 縮退方向は回さない。スムーザーを経由させるため単位回転を目標にする。
			targets[chain.Key] = mmath.NewQuaternion()
			degenerateKeys = append(degenerateKeys, chain.Key)
			continue
		}
		targets[chain.Key] = mmath.NewQuaternionRotate(restDirection, observed.Normalized())
	}

	solveTorsoTargets(processed, config, targets)
	return targets, degenerateKeys
}

// solveTorsoTargets は腰中点→肩中点の方向から胴体デルタを求め、
// 脊椎セグメントへ一部割合ずつ分配する。全量を各セグメントへ書くと
// 実際の前屈量を大きく超えるため、割合適用が前提となる。
func solveTorsoTargets(
	processed *PreprocessedFrame, config EngineConfig,
	targets map[model.JointKey]mmath.Quaternion,
) {
	if !processed.IsVisible(model.LandmarkLeftHip, config.VisibilityThreshold) ||
		!processed.IsVisible(model.LandmarkRightHip, config.VisibilityThreshold) ||
		!processed.IsVisible(model.LandmarkLeftShoulder, config.VisibilityThreshold) ||
		!processed.IsVisible(model.LandmarkRightShoulder, config.VisibilityThreshold) {
		return
	}

	hipMid := processed.MidPosition(model.LandmarkLeftHip, model.LandmarkRightHip)
	shoulderMid := processed.MidPosition(model.LandmarkLeftShoulder, model.LandmarkRightShoulder)
	torsoDirection := shoulderMid.Subed(hipMid)
	if torsoDirection.Length() <= degenerateLengthEpsilon {
		return
	}

	torsoDelta := mmath.NewQuaternionRotate(mmath.UNIT_Y_VEC3, torsoDirection.Normalized())
	turnDelta := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Y_VEC3, processed.BodyTurnAngle)
	combined := turnDelta.Muled(torsoDelta)

	identity := mmath.NewQuaternion()
	for _, key := range spineChainKeys {
		targets[key] = identity.Slerped(combined, config.SpineFraction)
	}
}
