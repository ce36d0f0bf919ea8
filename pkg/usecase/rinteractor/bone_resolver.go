// 指示: miu200521358
package rinteractor

import (
	"strings"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// jointNamePattern は1関節キーの名前解決規則を表す。
// Fragmentsは優先度順で、先頭ほど確度の高い候補名となる。
type jointNamePattern struct {
	Key       model.JointKey
	Fragments []string
}

// jointNamePatterns は関節キーごとの候補名表。
// 命名流派(UE系・Blender系・MMD系・Mixamo系)を優先度順に束ねる。
var jointNamePatterns = []*jointNamePattern{
	{Key: model.JointHips, Fragments: []string{
		"hips", "hip", "pelvis", "センター", "下半身",
	}},
	{Key: model.JointSpine, Fragments: []string{
		"spine", "chest", "torso", "上半身",
	}},
	{Key: model.JointNeck, Fragments: []string{
		"neck", "首",
	}},
	{Key: model.JointHead, Fragments: []string{
		"head", "頭",
	}},
	{Key: model.JointLeftShoulder, Fragments: []string{
		"leftshoulder", "shoulder_l", "shoulder.l", "clavicle_l", "左肩",
	}},
	{Key: model.JointRightShoulder, Fragments: []string{
		"rightshoulder", "shoulder_r", "shoulder.r", "clavicle_r", "右肩",
	}},
	{Key: model.JointLeftUpperArm, Fragments: []string{
		"leftupperarm", "upperarm_l", "upper_arm.l", "upperarm.l", "arm_l", "leftarm", "左腕",
	}},
	{Key: model.JointRightUpperArm, Fragments: []string{
		"rightupperarm", "upperarm_r", "upper_arm.r", "upperarm.r", "arm_r", "rightarm", "右腕",
	}},
	{Key: model.JointLeftLowerArm, Fragments: []string{
		"leftlowerarm", "lowerarm_l", "lower_arm.l", "forearm_l", "forearm.l", "leftforearm", "左ひじ",
	}},
	{Key: model.JointRightLowerArm, Fragments: []string{
		"rightlowerarm", "lowerarm_r", "lower_arm.r", "forearm_r", "forearm.r", "rightforearm", "右ひじ",
	}},
	{Key: model.JointLeftUpperLeg, Fragments: []string{
		"leftupperleg", "thigh_l", "thigh.l", "upperleg_l", "upper_leg.l", "leftupleg", "左足",
	}},
	{Key: model.JointRightUpperLeg, Fragments: []string{
		"rightupperleg", "thigh_r", "thigh.r", "upperleg_r", "upper_leg.r", "rightupleg", "右足",
	}},
	{Key: model.JointLeftLowerLeg, Fragments: []string{
		"leftlowerleg", "calf_l", "calf.l", "lowerleg_l", "lower_leg.l", "shin_l", "shin.l", "leftleg", "左ひざ",
	}},
	{Key: model.JointRightLowerLeg, Fragments: []string{
		"rightlowerleg", "calf_r", "calf.r", "lowerleg_r", "lower_leg.r", "shin_r", "shin.r", "rightleg", "右ひざ",
	}},
}

// excludedNameMarkers を含むボーン名は補助骨とみなし部分一致解決から除外する。
var excludedNameMarkers = []string{
	"twist", "corrective", "_in", "_out", "_fwd", "_bck", "捩",
}

// upperArmExcludedMarkers は上腕キーに限り追加で除外する筋肉補助骨マーカー。
var upperArmExcludedMarkers = []string{
	"bicep", "tricep",
}

// findJointNamePattern は指定関節キーの解決規則を返す。
func findJointNamePattern(key model.JointKey) *jointNamePattern {
	for _, pattern := range jointNamePatterns {
		if pattern.Key == key {
			return pattern
		}
	}
	return nil
}

// isExcludedBoneName は補助骨マーカーを含むボーン名か判定する。
func isExcludedBoneName(lowerName string, key model.JointKey) bool {
	for _, marker := range excludedNameMarkers {
		if strings.Contains(lowerName, marker) {
			return true
		}
	}
	if key.IsUpperArm() {
		for _, marker := range upperArmExcludedMarkers {
			if strings.Contains(lowerName, marker) {
				return true
			}
		}
	}
	return false
}

// resolveJointBones は関節キーに対応するボーン群を2段階照合で解決する。
// まず候補名ごとの完全一致を優先度順に試し、該当が無ければ部分一致へ落ちる。
// 同一候補名に複数アーマチュアのボーンが一致した場合は全件を返す。
func resolveJointBones(skeleton *model.Skeleton, key model.JointKey) []*model.Bone {
	pattern := findJointNamePattern(key)
	if pattern == nil || skeleton == nil || !skeleton.HasBones() {
		return nil
	}

	bones := skeleton.Bones.Values()

	// 完全一致パス。補助骨除外は適用しない(完全一致は意図が明確なため)。
	for _, fragment := range pattern.Fragments {
		var matched []*model.Bone
		for _, bone := range bones {
			if strings.EqualFold(bone.Name(), fragment) {
				matched = append(matched, bone)
			}
		}
		if len(matched) > 0 {
			return matched
		}
	}

	// 部分一致パス。twist等の補助骨を拾わないよう除外マーカーを適用する。
	for _, fragment := range pattern.Fragments {
		var matched []*model.Bone
		for _, bone := range bones {
			lowerName := strings.ToLower(bone.Name())
			if !strings.Contains(lowerName, fragment) {
				continue
			}
			if isExcludedBoneName(lowerName, key) {
				continue
			}
			matched = append(matched, bone)
		}
		if len(matched) > 0 {
			return matched
		}
	}

	return nil
}
