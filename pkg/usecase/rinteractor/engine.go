// 指示: miu200521358
package rinteractor

import (
	"fmt"

	"github.com/edaniels/golog"
	"github.com/tiendc/go-deepcopy"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// RetargetEngine はランドマーク列を骨格ボーン回転へ変換するエンジンを表す。
// Bind/Apply/Releaseは単一goroutineからの呼び出しを前提とする。
// フレームの受け渡しのみFrameBoxを介して別goroutineと共有できる。
type RetargetEngine struct {
	config EngineConfig
	logger golog.Logger

	skeleton  *model.Skeleton
	bindings  map[model.JointKey][]*model.Bone
	restPoses map[int]RestPose
	smoother  *TemporalSmoother
	overrides map[model.JointKey]mmath.Quaternion

	warnings         []string
	warnedDegenerate map[model.JointKey]struct{}
}

// NewRetargetEngine は設定のスナップショットを取りエンジンを生成する。
// 呼び出し側がconfigを後から書き換えてもエンジンの挙動は変わらない。
func NewRetargetEngine(config EngineConfig, logger golog.Logger) (*RetargetEngine, error) {
	var snapshot EngineConfig
	if err := deepcopy.Copy(&snapshot, &config); err != nil {
		return nil, fmt.Errorf("エンジン設定の複製に失敗しました: %w", err)
	}
	if logger == nil {
		logger = golog.NewLogger("pose2rig")
	}
	return &RetargetEngine{
		config:    snapshot,
		logger:    logger,
		smoother:  NewTemporalSmoother(snapshot.SmoothingFactor),
		overrides: map[model.JointKey]mmath.Quaternion{},
	}, nil
}

// Bind は骨格へバインドし、ボーン解決・安静姿勢取得・スタンス判定を行う。
// 既存バインドがある場合は先に全状態を破棄する。骨格がボーンを持たない
// 場合は警告を記録して未バインドのまま正常終了する。
func (e *RetargetEngine) Bind(skeleton *model.Skeleton, reporter IBindProgressReporter) error {
	e.Release()

	if !skeleton.HasBones() {
		e.addWarning(model.RigWarningSkeletonMissing, "骨格にボーンがありません")
		return nil
	}
	reportBindProgress(reporter, BindProgressEvent{
		Type:      BindProgressEventTypeSkeletonValidated,
		BoneCount: skeleton.Bones.Len(),
	})

	bindings := map[model.JointKey][]*model.Bone{}
	for _, key := range model.AllJointKeys() {
		bones := resolveJointBones(skeleton, key)
		if len(bones) == 0 {
			e.logger.Debugf("関節キー未解決: %s", key)
			e.addWarning(model.RigWarningJointUnresolved, string(key))
			continue
		}
		bindings[key] = bones
	}
	reportBindProgress(reporter, BindProgressEvent{
		Type:          BindProgressEventTypeBonesResolved,
		ResolvedCount: len(bindings),
		BoneCount:     skeleton.Bones.Len(),
	})

	restPoses, err := captureRestPoses(bindings)
	if err != nil {
		return fmt.Errorf("バインドに失敗しました: %w", err)
	}
	reportBindProgress(reporter, BindProgressEvent{
		Type:          BindProgressEventTypeRestPoseCaptured,
		ResolvedCount: len(bindings),
		BoneCount:     skeleton.Bones.Len(),
	})

	if !isTstanceBinding(bindings) {
		e.logger.Warnf("バインド時の骨格がTスタンスではありません")
		e.addWarning(model.RigWarningNotTstance, "バインド時姿勢")
	}
	reportBindProgress(reporter, BindProgressEvent{
		Type:          BindProgressEventTypeStanceInspected,
		ResolvedCount: len(bindings),
		BoneCount:     skeleton.Bones.Len(),
	})

	e.skeleton = skeleton
	e.bindings = bindings
	e.restPoses = restPoses
	return nil
}

// IsBound はバインド済みか判定する。
func (e *RetargetEngine) IsBound() bool {
	return e.skeleton != nil && len(e.bindings) > 0
}

// Release はバインド・安静姿勢・平滑化の全状態を破棄する。
// 手動上書きは較正値とみなし破棄しない。
func (e *RetargetEngine) Release() {
	e.skeleton = nil
	e.bindings = nil
	e.restPoses = nil
	e.smoother = NewTemporalSmoother(e.config.SmoothingFactor)
	e.warnedDegenerate = nil
}

// SetManualOverride は関節キーの目標回転を直接指定する。
// 指定された関節はソルバー出力の代わりにこの回転を使うが、
// 平滑化と適用は追跡経路と同一の処理を通る。
func (e *RetargetEngine) SetManualOverride(key model.JointKey, rotation mmath.Quaternion) {
	e.overrides[key] = rotation
}

// ClearManualOverride は関節キーの手動上書きを解除する。
func (e *RetargetEngine) ClearManualOverride(key model.JointKey) {
	delete(e.overrides, key)
}

// Apply は1フレーム分のランドマークをバインド済み骨格へ適用する。
// nilフレームは欠落とみなし無言で保持、不正フレームは警告を記録してスキップする。
// いずれも直前の適用結果と平滑化状態は変化しない。
func (e *RetargetEngine) Apply(frame *model.LandmarkFrame) error {
	if !e.IsBound() || frame == nil {
		return nil
	}
	if !frame.IsValid() {
		e.addWarning(model.RigWarningFrameMalformed,
			fmt.Sprintf("len=%d", landmarkLen(frame)))
		return nil
	}

	processed, err := preprocessFrame(frame, preprocessOptions{
		Mirror:        e.config.Mirror,
		AspectRatio:   e.config.AspectRatio,
		DepthScale:    e.config.DepthScale,
		BodyTurnScale: e.config.BodyTurnScale,
	})
	if err != nil {
		return fmt.Errorf("フレーム前処理に失敗しました: %w", err)
	}

	switch e.config.Strategy {
	case StrategyAxis:
		e.applyAxisStrategy(processed)
	default:
		e.applyDirectionStrategy(processed)
	}
	return nil
}

// applyDirectionStrategy は戦略Aの解決・平滑化・適用を行う。
func (e *RetargetEngine) applyDirectionStrategy(processed *PreprocessedFrame) {
	targets, degenerateKeys := solveDirectionTargets(processed, e.config)
	for _, key := range degenerateKeys {
		e.warnDegenerate(key)
	}
	for key, rotation := range e.overrides {
		targets[key] = rotation
	}

	for _, key := range model.AllJointKeys() {
		target, exists := targets[key]
		if !exists {
			continue
		}
		bones := e.bindings[key]
		if len(bones) == 0 {
			continue
		}
		smoothed := e.smoother.SmoothRotation(key, target)
		applyRotationDelta(e.skeleton, bones, e.restPoses, smoothed)
	}
}

// applyAxisStrategy は戦略Bの解決・平滑化・適用を行う。
// 手動上書きはオイラー角の対象軸成分として解釈する。
func (e *RetargetEngine) applyAxisStrategy(processed *PreprocessedFrame) {
	targets := solveAxisTargets(processed, e.config)
	for key, rotation := range e.overrides {
		if axisRollSign(key) == 0 {
			continue
		}
		targets[key] = rotation.ToDegrees().Z
	}

	for _, key := range model.AllJointKeys() {
		target, exists := targets[key]
		if !exists {
			continue
		}
		bones := e.bindings[key]
		if len(bones) == 0 {
			continue
		}
		smoothed := e.smoother.SmoothAngle(key, target)
		applyAxisDegree(e.skeleton, bones, e.restPoses, smoothed)
	}
}

// warnDegenerate は縮退方向警告を関節キーごとに1回だけ記録する。
func (e *RetargetEngine) warnDegenerate(key model.JointKey) {
	if e.warnedDegenerate == nil {
		e.warnedDegenerate = map[model.JointKey]struct{}{}
	}
	if _, exists := e.warnedDegenerate[key]; exists {
		return
	}
	e.warnedDegenerate[key] = struct{}{}
	e.logger.Debugf("方向ベクトル縮退: %s", key)
	e.addWarning(model.RigWarningDegenerateDirection, string(key))
}

// addWarning は警告を記録する。
func (e *RetargetEngine) addWarning(id string, detail string) {
	e.warnings = append(e.warnings, fmt.Sprintf("%s: %s", id, detail))
}

// Warnings は記録済み警告の複製を返す。
func (e *RetargetEngine) Warnings() []string {
	warnings := make([]string, len(e.warnings))
	copy(warnings, e.warnings)
	return warnings
}
