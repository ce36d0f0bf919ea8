// 指示: miu200521358
// Package rinteractor はランドマーク列から骨格ボーン回転へのリターゲット処理を提供する。
package rinteractor

import (
	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// StrategyType はソルバー戦略種別を表す。
type StrategyType string

const (
	// StrategyDirection は方向ベクトル一致戦略(戦略A)を表す。
	StrategyDirection StrategyType = "direction"
	// StrategyAxis は単一軸比率マッピング戦略(戦略B)を表す。
	StrategyAxis StrategyType = "axis"
)

// EngineConfig はエンジン全体の調整値を保持する。
// 数値はすべて較正データであり、既定値は目安に過ぎない。
type EngineConfig struct {
	Strategy            StrategyType
	SmoothingFactor     float64
	Mirror              bool
	AspectRatio         float64
	DepthScale          float64
	BodyTurnScale       float64
	SpineFraction       float64
	ArmsDownDegree      float64
	TposeDegree         float64
	VisibilityThreshold float64
	RestDirections      map[model.JointKey]mmath.Vec3
}

// NewDefaultEngineConfig は既定の較正値を持つ設定を生成する。
func NewDefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Strategy:            StrategyDirection,
		SmoothingFactor:     0.35,
		Mirror:              false,
		AspectRatio:         16.0 / 9.0,
		DepthScale:          1.0,
		BodyTurnScale:       1.4,
		SpineFraction:       0.3,
		ArmsDownDegree:      13.0,
		TposeDegree:         -48.0,
		VisibilityThreshold: 0.5,
		RestDirections:      defaultRestDirections(),
	}
}

// defaultRestDirections はTスタンス相当の既定安静方向を関節キーごとに返す。
func defaultRestDirections() map[model.JointKey]mmath.Vec3 {
	return map[model.JointKey]mmath.Vec3{
		model.JointLeftUpperArm:  mmath.UNIT_X_VEC3,
		model.JointLeftLowerArm:  mmath.UNIT_X_VEC3,
		model.JointRightUpperArm: mmath.NewVec3(-1, 0, 0),
		model.JointRightLowerArm: mmath.NewVec3(-1, 0, 0),
		model.JointLeftUpperLeg:  mmath.UNIT_Y_NEG_VEC3,
		model.JointLeftLowerLeg:  mmath.UNIT_Y_NEG_VEC3,
		model.JointRightUpperLeg: mmath.UNIT_Y_NEG_VEC3,
		model.JointRightLowerLeg: mmath.UNIT_Y_NEG_VEC3,
		model.JointSpine:         mmath.UNIT_Y_VEC3,
		model.JointNeck:          mmath.UNIT_Y_VEC3,
		model.JointHead:          mmath.UNIT_Y_VEC3,
	}
}

// restDirection は関節キーの安静方向を設定優先で解決する。
func (c EngineConfig) restDirection(key model.JointKey) (mmath.Vec3, bool) {
	if c.RestDirections != nil {
		if direction, exists := c.RestDirections[key]; exists && !direction.IsZero() {
			return direction, true
		}
	}
	direction, exists := defaultRestDirections()[key]
	return direction, exists
}

// BindProgressEventType はバインド処理の進捗イベント種別を表す。
type BindProgressEventType string

const (
	// BindProgressEventTypeSkeletonValidated は骨格検証完了イベントを表す。
	BindProgressEventTypeSkeletonValidated BindProgressEventType = "skeleton_validated"
	// BindProgressEventTypeBonesResolved はボーン解決完了イベントを表す。
	BindProgressEventTypeBonesResolved BindProgressEventType = "bones_resolved"
	// BindProgressEventTypeRestPoseCaptured は安静姿勢取得完了イベントを表す。
	BindProgressEventTypeRestPoseCaptured BindProgressEventType = "rest_pose_captured"
	// BindProgressEventTypeStanceInspected はスタンス判定完了イベントを表す。
	BindProgressEventTypeStanceInspected BindProgressEventType = "stance_inspected"
)

// BindProgressEvent はバインド処理の進捗イベントを表す。
type BindProgressEvent struct {
	Type          BindProgressEventType
	ResolvedCount int
	BoneCount     int
}

// IBindProgressReporter はバインド処理の進捗通知契約を表す。
type IBindProgressReporter interface {
	// ReportBindProgress はバインド進捗を通知する。
	ReportBindProgress(event BindProgressEvent)
}

// reportBindProgress はバインド処理の進捗を通知する。
func reportBindProgress(reporter IBindProgressReporter, event BindProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportBindProgress(event)
}
