// 指示: miu200521358
package model

// JointKey は骨格の命名規則に依存しない意味的な関節識別子を表す。
type JointKey string

// 関節キー一覧。
const (
	JointHead          JointKey = "head"
	JointNeck          JointKey = "neck"
	JointSpine         JointKey = "spine"
	JointHips          JointKey = "hips"
	JointLeftShoulder  JointKey = "leftShoulder"
	JointRightShoulder JointKey = "rightShoulder"
	JointLeftUpperArm  JointKey = "leftUpperArm"
	JointRightUpperArm JointKey = "rightUpperArm"
	JointLeftLowerArm  JointKey = "leftLowerArm"
	JointRightLowerArm JointKey = "rightLowerArm"
	JointLeftUpperLeg  JointKey = "leftUpperLeg"
	JointRightUpperLeg JointKey = "rightUpperLeg"
	JointLeftLowerLeg  JointKey = "leftLowerLeg"
	JointRightLowerLeg JointKey = "rightLowerLeg"
)

// AllJointKeys は解決対象の関節キーを列挙順で返す。
func AllJointKeys() []JointKey {
	return []JointKey{
		JointHips,
		JointSpine,
		JointNeck,
		JointHead,
		JointLeftShoulder,
		JointRightShoulder,
		JointLeftUpperArm,
		JointRightUpperArm,
		JointLeftLowerArm,
		JointRightLowerArm,
		JointLeftUpperLeg,
		JointRightUpperLeg,
		JointLeftLowerLeg,
		JointRightLowerLeg,
	}
}

// String は関節キー文字列を返す。
func (k JointKey) String() string {
	return string(k)
}

// IsUpperArm は上腕キーか判定する。
func (k JointKey) IsUpperArm() bool {
	return k == JointLeftUpperArm || k == JointRightUpperArm
}
