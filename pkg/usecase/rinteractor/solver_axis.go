// 指示: miu200521358
package rinteractor

import (
	"math"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// axisChainConfig は戦略Bの1関節分の軸設定を表す。
// 対垂直角を[0,1]の比率へ写し、較正済みの2端点角度間を線形補間する。
type axisChainConfig struct {
	Key      model.JointKey
	Shoulder model.LandmarkIndex
	Elbow    model.LandmarkIndex
	// RollSign は書き込む軸角度の符号。左右でロール方向が逆になる。
	RollSign float64
}

// axisChainConfigs は戦略Bの対象関節表。現行は上腕のみを扱う。
var axisChainConfigs = []*axisChainConfig{
	{Key: model.JointLeftUpperArm, Shoulder: model.LandmarkLeftShoulder,
		Elbow: model.LandmarkLeftElbow, RollSign: 1.0},
	{Key: model.JointRightUpperArm, Shoulder: model.LandmarkRightShoulder,
		Elbow: model.LandmarkRightElbow, RollSign: -1.0},
}

// solveAxisTargets は戦略Bの目標軸角度(度)を関節キーごとに計算する。
// 腕が真下(-π/2)でArmsDownDegree、水平(0)でTposeDegreeへ写る。
func solveAxisTargets(
	processed *PreprocessedFrame, config EngineConfig,
) map[model.JointKey]float64 {
	targets := map[model.JointKey]float64{}

	for _, chain := range axisChainConfigs {
		if !processed.IsVisible(chain.Shoulder, config.VisibilityThreshold) ||
			!processed.IsVisible(chain.Elbow, config.VisibilityThreshold) {
			continue
		}
		angle := processed.VerticalArmAngle(chain.Shoulder, chain.Elbow)
		ratio := verticalAngleRatio(angle)
		degree := mmath.Lerp(config.ArmsDownDegree, config.TposeDegree, ratio)
		targets[chain.Key] = chain.RollSign * degree
	}

	return targets
}

// verticalAngleRatio は対垂直角[-π/2, 0]を比率[0, 1]へクランプ付きで写す。
func verticalAngleRatio(angle float64) float64 {
	return mmath.Clamped((angle+math.Pi/2.0)/(math.Pi/2.0), 0.0, 1.0)
}

// axisRollSign は関節キーのロール符号を返す。対象外キーは0を返す。
func axisRollSign(key model.JointKey) float64 {
	for _, chain := range axisChainConfigs {
		if chain.Key == key {
			return chain.RollSign
		}
	}
	return 0
}
