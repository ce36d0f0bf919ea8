// 指示: miu200521358
package rinteractor

import (
	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// TemporalSmoother はソルバー出力の単極ローパスフィルタを表す。
// 関節キーごとに独立した状態を持ち、初回書き込みは目標値をそのまま採用する。
type TemporalSmoother struct {
	alpha      float64
	quatStates map[model.JointKey]mmath.Quaternion
	axisStates map[model.JointKey]float64
}

// NewTemporalSmoother は平滑化係数alpha(0..1]のスムーザーを生成する。
func NewTemporalSmoother(alpha float64) *TemporalSmoother {
	return &TemporalSmoother{
		alpha:      mmath.Clamped(alpha, 0.0, 1.0),
		quatStates: map[model.JointKey]mmath.Quaternion{},
		axisStates: map[model.JointKey]float64{},
	}
}

// SmoothRotation は関節キーの回転目標値を平滑化して返す。
// 初回は目標値そのもの、2回目以降は前回値からのslerp補間となる。
// 目標が前回値と反対半球にある場合は符号を反転して短弧側で補間する。
func (s *TemporalSmoother) SmoothRotation(key model.JointKey, target mmath.Quaternion) mmath.Quaternion {
	current, initialized := s.quatStates[key]
	if !initialized {
		s.quatStates[key] = target
		return target
	}
	if current.Dot(target) < 0 {
		target = target.Negated()
	}
	smoothed := current.Slerped(target, s.alpha).Normalized()
	s.quatStates[key] = smoothed
	return smoothed
}

// SmoothAngle は関節キーの角度目標値(度)を平滑化して返す。
func (s *TemporalSmoother) SmoothAngle(key model.JointKey, target float64) float64 {
	current, initialized := s.axisStates[key]
	if !initialized {
		s.axisStates[key] = target
		return target
	}
	smoothed := mmath.Lerp(current, target, s.alpha)
	s.axisStates[key] = smoothed
	return smoothed
}

// Reset は全関節キーの平滑化状態を破棄する。
// 次回書き込みは再び目標値をそのまま採用する。
func (s *TemporalSmoother) Reset() {
	s.quatStates = map[model.JointKey]mmath.Quaternion{}
	s.axisStates = map[model.JointKey]float64{}
}
