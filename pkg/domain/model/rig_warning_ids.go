// 指示: miu200521358
package model

const (
	// RigWarningSkeletonMissing は骨格未検出警告。
	RigWarningSkeletonMissing = "RigWarningSkeletonMissing"
	// RigWarningJointUnresolved は関節キー解決不能警告。
	RigWarningJointUnresolved = "RigWarningJointUnresolved"
	// RigWarningNotTstance はバインド時Tスタンス非検出警告。
	RigWarningNotTstance = "RigWarningNotTstance"
	// RigWarningDegenerateDirection は縮退方向ベクトル警告。
	RigWarningDegenerateDirection = "RigWarningDegenerateDirection"
	// RigWarningFrameMalformed はランドマークフレーム不正警告。
	RigWarningFrameMalformed = "RigWarningFrameMalformed"
)
