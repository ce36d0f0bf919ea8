// 指示: miu200521358
package rinteractor

import (
	"math"
	"strings"
	"testing"

	"github.com/edaniels/golog"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// appendTestBone はテスト用ボーンを骨格へ追加する。
func appendTestBone(skeleton *model.Skeleton, armature, name string, position mmath.Vec3) *model.Bone {
	bone := model.NewBoneByName(name)
	bone.Armature = armature
	bone.Position = position
	skeleton.Bones.AppendRaw(bone)
	return bone
}

// newTestSkeleton はTスタンス配置の単一アーマチュア骨格を生成する。
func newTestSkeleton() *model.Skeleton {
	skeleton := model.NewSkeleton()
	appendTestArmature(skeleton, "main")
	return skeleton
}

// appendTestArmature は1アーマチュア分のテスト用ボーン群を追加する。
func appendTestArmature(skeleton *model.Skeleton, armature string) {
	appendTestBone(skeleton, armature, "Hips", mmath.NewVec3(0, 10, 0))
	appendTestBone(skeleton, armature, "Spine", mmath.NewVec3(0, 12, 0))
	appendTestBone(skeleton, armature, "Neck", mmath.NewVec3(0, 15, 0))
	appendTestBone(skeleton, armature, "Head", mmath.NewVec3(0, 16, 0))
	appendTestBone(skeleton, armature, "Shoulder_L", mmath.NewVec3(0.5, 14.5, 0))
	appendTestBone(skeleton, armature, "Shoulder_R", mmath.NewVec3(-0.5, 14.5, 0))
	appendTestBone(skeleton, armature, "UpperArm_L", mmath.NewVec3(1, 14, 0))
	appendTestBone(skeleton, armature, "UpperArm_R", mmath.NewVec3(-1, 14, 0))
	appendTestBone(skeleton, armature, "LowerArm_L", mmath.NewVec3(2, 14, 0))
	appendTestBone(skeleton, armature, "LowerArm_R", mmath.NewVec3(-2, 14, 0))
	appendTestBone(skeleton, armature, "Thigh_L", mmath.NewVec3(0.5, 9, 0))
	appendTestBone(skeleton, armature, "Thigh_R", mmath.NewVec3(-0.5, 9, 0))
	appendTestBone(skeleton, armature, "Calf_L", mmath.NewVec3(0.5, 5, 0))
	appendTestBone(skeleton, armature, "Calf_R", mmath.NewVec3(-0.5, 5, 0))
}

// newNeutralFrame はTスタンス相当のランドマークフレームを生成する。
// 腕は真横、脚は真下、胴体は直立で、全ソルバーのデルタが単位回転になる配置。
func newNeutralFrame() *model.LandmarkFrame {
	frame := &model.LandmarkFrame{Index: 0, Landmarks: make([]model.Landmark, model.LandmarkCount)}
	for i := range frame.Landmarks {
		frame.Landmarks[i] = model.Landmark{X: 0.5, Y: 0.5, Visibility: 1.0, Presence: 1.0}
	}
	setTestLandmark(frame, model.LandmarkLeftShoulder, 0.6, 0.4)
	setTestLandmark(frame, model.LandmarkRightShoulder, 0.4, 0.4)
	setTestLandmark(frame, model.LandmarkLeftElbow, 0.7, 0.4)
	setTestLandmark(frame, model.LandmarkRightElbow, 0.3, 0.4)
	setTestLandmark(frame, model.LandmarkLeftWrist, 0.8, 0.4)
	setTestLandmark(frame, model.LandmarkRightWrist, 0.2, 0.4)
	setTestLandmark(frame, model.LandmarkLeftHip, 0.55, 0.55)
	setTestLandmark(frame, model.LandmarkRightHip, 0.45, 0.55)
	setTestLandmark(frame, model.LandmarkLeftKnee, 0.55, 0.75)
	setTestLandmark(frame, model.LandmarkRightKnee, 0.45, 0.75)
	setTestLandmark(frame, model.LandmarkLeftAnkle, 0.55, 0.95)
	setTestLandmark(frame, model.LandmarkRightAnkle, 0.45, 0.95)
	return frame
}

// setTestLandmark は指定ランドマークの位置を上書きする。
func setTestLandmark(frame *model.LandmarkFrame, index model.LandmarkIndex, x, y float64) {
	frame.Landmarks[index] = model.Landmark{X: x, Y: y, Visibility: 1.0, Presence: 1.0}
}

// newBoundEngine はバインド済みのテスト用エンジンを生成する。
func newBoundEngine(t *testing.T, config EngineConfig, skeleton *model.Skeleton) *RetargetEngine {
	t.Helper()
	engine, err := NewRetargetEngine(config, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("engine creation failed: %v", err)
	}
	if err := engine.Bind(skeleton, nil); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	return engine
}

// mustBoneByName は名前指定でボーンを取得する。
func mustBoneByName(t *testing.T, skeleton *model.Skeleton, name string) *model.Bone {
	t.Helper()
	bone, err := skeleton.Bones.GetByName(name)
	if err != nil {
		t.Fatalf("bone not found: %s: %v", name, err)
	}
	return bone
}

// rotationAngleDegree は回転の総角度(度)を返す。
func rotationAngleDegree(q mmath.Quaternion) float64 {
	w := mmath.Clamped(math.Abs(q.W), -1.0, 1.0)
	return mmath.RadToDeg(2.0 * math.Acos(w))
}

func TestBindResolvesAllJointKeys(t *testing.T) {
	skeleton := newTestSkeleton()
	engine := newBoundEngine(t, NewDefaultEngineConfig(), skeleton)

	if !engine.IsBound() {
		t.Fatalf("engine should be bound")
	}
	for _, warning := range engine.Warnings() {
		if strings.Contains(warning, model.RigWarningJointUnresolved) {
			t.Fatalf("unexpected unresolved warning: %s", warning)
		}
	}
}

func TestBindWithoutBonesRecordsWarning(t *testing.T) {
	engine, err := NewRetargetEngine(NewDefaultEngineConfig(), golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("engine creation failed: %v", err)
	}
	if err := engine.Bind(model.NewSkeleton(), nil); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if engine.IsBound() {
		t.Fatalf("engine should not be bound")
	}
	warnings := engine.Warnings()
	if len(warnings) == 0 || !strings.Contains(warnings[0], model.RigWarningSkeletonMissing) {
		t.Fatalf("missing skeleton warning not recorded: %v", warnings)
	}
}

func TestBindReportsProgressEvents(t *testing.T) {
	skeleton := newTestSkeleton()
	engine, err := NewRetargetEngine(NewDefaultEngineConfig(), golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("engine creation failed: %v", err)
	}

	reporter := &recordingBindReporter{}
	if err := engine.Bind(skeleton, reporter); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	expected := []BindProgressEventType{
		BindProgressEventTypeSkeletonValidated,
		BindProgressEventTypeBonesResolved,
		BindProgressEventTypeRestPoseCaptured,
		BindProgressEventTypeStanceInspected,
	}
	if len(reporter.events) != len(expected) {
		t.Fatalf("event count mismatch: %d != %d", len(reporter.events), len(expected))
	}
	for i, event := range reporter.events {
		if event.Type != expected[i] {
			t.Fatalf("event order mismatch at %d: %s != %s", i, event.Type, expected[i])
		}
	}
}

// recordingBindReporter はバインド進捗イベントを記録するテスト用レポーター。
type recordingBindReporter struct {
	events []BindProgressEvent
}

func (r *recordingBindReporter) ReportBindProgress(event BindProgressEvent) {
	r.events = append(r.events, event)
}

func TestApplyRestFrameKeepsRestRotation(t *testing.T) {
	skeleton := newTestSkeleton()
	engine := newBoundEngine(t, NewDefaultEngineConfig(), skeleton)

	if err := engine.Apply(newNeutralFrame()); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	identity := mmath.NewQuaternion()
	for _, name := range []string{"UpperArm_L", "LowerArm_L", "UpperArm_R", "Thigh_L", "Calf_R"} {
		bone := mustBoneByName(t, skeleton, name)
		if !bone.LocalRotation.NearEquals(identity, 1e-6) {
			t.Fatalf("%s should keep rest rotation: %v", name, bone.LocalRotation.ToDegrees())
		}
	}
}

func TestApplyFirstFrameWritesTargetExactly(t *testing.T) {
	skeleton := newTestSkeleton()
	engine := newBoundEngine(t, NewDefaultEngineConfig(), skeleton)

	// 左肘を肩の真下へ。左上腕の目標は+Xから-Yへの90度回転となる。
	frame := newNeutralFrame()
	setTestLandmark(frame, model.LandmarkLeftElbow, 0.6, 0.55)
	setTestLandmark(frame, model.LandmarkLeftWrist, 0.6, 0.7)
	if err := engine.Apply(frame); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	expected := mmath.NewQuaternionRotate(mmath.UNIT_X_VEC3, mmath.UNIT_Y_NEG_VEC3)
	bone := mustBoneByName(t, skeleton, "UpperArm_L")
	if !bone.LocalRotation.NearEquals(expected, 1e-6) {
		t.Fatalf("first apply should write target exactly: %v != %v",
			bone.LocalRotation.ToDegrees(), expected.ToDegrees())
	}
}

func TestApplySmoothingConvergesMonotonically(t *testing.T) {
	skeleton := newTestSkeleton()
	engine := newBoundEngine(t, NewDefaultEngineConfig(), skeleton)

	if err := engine.Apply(newNeutralFrame()); err != nil {
		t.Fatalf("apply neutral failed: %v", err)
	}

	frame := newNeutralFrame()
	setTestLandmark(frame, model.LandmarkLeftElbow, 0.6, 0.55)
	setTestLandmark(frame, model.LandmarkLeftWrist, 0.6, 0.7)
	target := mmath.NewQuaternionRotate(mmath.UNIT_X_VEC3, mmath.UNIT_Y_NEG_VEC3)

	bone := mustBoneByName(t, skeleton, "UpperArm_L")
	previousDot := math.Abs(bone.LocalRotation.Dot(target))
	for cycle := 0; cycle < 30; cycle++ {
		if err := engine.Apply(frame); err != nil {
			t.Fatalf("apply failed at cycle %d: %v", cycle, err)
		}
		dot := math.Abs(bone.LocalRotation.Dot(target))
		if dot < previousDot-1e-9 {
			t.Fatalf("convergence should be monotone: cycle=%d %f -> %f", cycle, previousDot, dot)
		}
		previousDot = dot
	}
	if !bone.LocalRotation.NearEquals(target, 1e-4) {
		t.Fatalf("rotation should converge to target: %v", bone.LocalRotation.ToDegrees())
	}
}

func TestApplyDegenerateDirectionKeepsRestAndWarnsOnce(t *testing.T) {
	skeleton := newTestSkeleton()
	engine := newBoundEngine(t, NewDefaultEngineConfig(), skeleton)

	// 左肘を肩と完全一致させ、左上腕の方向を縮退させる。
	frame := newNeutralFrame()
	setTestLandmark(frame, model.LandmarkLeftElbow, 0.6, 0.4)
	for cycle := 0; cycle < 3; cycle++ {
		if err := engine.Apply(frame); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
	}

	bone := mustBoneByName(t, skeleton, "UpperArm_L")
	if !bone.LocalRotation.IsFinite() {
		t.Fatalf("rotation should stay finite: %v", bone.LocalRotation)
	}
	if !bone.LocalRotation.NearEquals(mmath.NewQuaternion(), 1e-6) {
		t.Fatalf("degenerate direction should keep rest rotation: %v", bone.LocalRotation.ToDegrees())
	}

	degenerateCount := 0
	for _, warning := range engine.Warnings() {
		if strings.Contains(warning, model.RigWarningDegenerateDirection) {
			degenerateCount++
		}
	}
	if degenerateCount != 1 {
		t.Fatalf("degenerate warning should be recorded once: %d", degenerateCount)
	}
}

func TestApplyMalformedFrameSkipsAndWarns(t *testing.T) {
	skeleton := newTestSkeleton()
	engine := newBoundEngine(t, NewDefaultEngineConfig(), skeleton)

	frame := newNeutralFrame()
	setTestLandmark(frame, model.LandmarkLeftElbow, 0.6, 0.55)
	if err := engine.Apply(frame); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	bone := mustBoneByName(t, skeleton, "UpperArm_L")
	before := bone.LocalRotation

	malformed := &model.LandmarkFrame{Index: 1, Landmarks: make([]model.Landmark, 10)}
	if err := engine.Apply(malformed); err != nil {
		t.Fatalf("malformed frame should not be fatal: %v", err)
	}
	if err := engine.Apply(nil); err != nil {
		t.Fatalf("nil frame should not be fatal: %v", err)
	}
	if !bone.LocalRotation.NearEquals(before, 1e-9) {
		t.Fatalf("malformed frame should keep previous rotation")
	}

	found := false
	for _, warning := range engine.Warnings() {
		if strings.Contains(warning, model.RigWarningFrameMalformed) {
			found = true
		}
	}
	if !found {
		t.Fatalf("malformed frame warning not recorded: %v", engine.Warnings())
	}
}

func TestApplyFansOutToAllArmatures(t *testing.T) {
	skeleton := model.NewSkeleton()
	appendTestArmature(skeleton, "main")
	appendTestArmature(skeleton, "mirror")
	engine := newBoundEngine(t, NewDefaultEngineConfig(), skeleton)

	frame := newNeutralFrame()
	setTestLandmark(frame, model.LandmarkLeftElbow, 0.6, 0.55)
	setTestLandmark(frame, model.LandmarkLeftWrist, 0.6, 0.7)
	if err := engine.Apply(frame); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	expected := mmath.NewQuaternionRotate(mmath.UNIT_X_VEC3, mmath.UNIT_Y_NEG_VEC3)
	dirtySet := map[int]struct{}{}
	for _, index := range skeleton.ConsumeDirty() {
		dirtySet[index] = struct{}{}
	}

	written := 0
	for _, bone := range skeleton.Bones.Values() {
		if bone.Name() != "UpperArm_L" {
			continue
		}
		written++
		if !bone.LocalRotation.NearEquals(expected, 1e-6) {
			t.Fatalf("armature %s should receive rotation: %v",
				bone.Armature, bone.LocalRotation.ToDegrees())
		}
		if _, exists := dirtySet[bone.Index()]; !exists {
			t.Fatalf("armature %s bone should be invalidated", bone.Armature)
		}
	}
	if written != 2 {
		t.Fatalf("both armatures should be written: %d", written)
	}
}

func TestManualOverridePassesThroughSmoothing(t *testing.T) {
	skeleton := newTestSkeleton()
	engine := newBoundEngine(t, NewDefaultEngineConfig(), skeleton)

	if err := engine.Apply(newNeutralFrame()); err != nil {
		t.Fatalf("apply neutral failed: %v", err)
	}

	override := mmath.NewQuaternionFromDegrees(0, 0, 90)
	engine.SetManualOverride(model.JointLeftUpperArm, override)
	if err := engine.Apply(newNeutralFrame()); err != nil {
		t.Fatalf("apply with override failed: %v", err)
	}

	// 平滑化を経由するため全量ではなくalpha分だけ回る。
	bone := mustBoneByName(t, skeleton, "UpperArm_L")
	angle := rotationAngleDegree(bone.LocalRotation)
	expected := 90.0 * NewDefaultEngineConfig().SmoothingFactor
	if math.Abs(angle-expected) > 1.0 {
		t.Fatalf("override should be smoothed: angle=%f expected=%f", angle, expected)
	}

	engine.ClearManualOverride(model.JointLeftUpperArm)
	for cycle := 0; cycle < 50; cycle++ {
		if err := engine.Apply(newNeutralFrame()); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
	}
	if !bone.LocalRotation.NearEquals(mmath.NewQuaternion(), 1e-3) {
		t.Fatalf("cleared override should track back to rest: %v", bone.LocalRotation.ToDegrees())
	}
}

func TestRebindResetsSmoothingState(t *testing.T) {
	skeleton := newTestSkeleton()
	engine := newBoundEngine(t, NewDefaultEngineConfig(), skeleton)

	frame := newNeutralFrame()
	setTestLandmark(frame, model.LandmarkLeftElbow, 0.6, 0.55)
	setTestLandmark(frame, model.LandmarkLeftWrist, 0.6, 0.7)
	if err := engine.Apply(newNeutralFrame()); err != nil {
		t.Fatalf("apply neutral failed: %v", err)
	}

	// 再バインド後の初回適用は平滑化履歴なしで目標値そのものとなる。
	if err := engine.Bind(skeleton, nil); err != nil {
		t.Fatalf("rebind failed: %v", err)
	}
	if err := engine.Apply(frame); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	expected := mmath.NewQuaternionRotate(mmath.UNIT_X_VEC3, mmath.UNIT_Y_NEG_VEC3)
	bone := mustBoneByName(t, skeleton, "UpperArm_L")
	if !bone.LocalRotation.NearEquals(expected, 1e-6) {
		t.Fatalf("rebind should reset smoothing: %v", bone.LocalRotation.ToDegrees())
	}
}

func TestApplyWithoutBindIsNoop(t *testing.T) {
	engine, err := NewRetargetEngine(NewDefaultEngineConfig(), golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("engine creation failed: %v", err)
	}
	if err := engine.Apply(newNeutralFrame()); err != nil {
		t.Fatalf("apply without bind should be noop: %v", err)
	}
}

func TestAxisStrategyArmDownConverges(t *testing.T) {
	skeleton := newTestSkeleton()
	config := NewDefaultEngineConfig()
	config.Strategy = StrategyAxis
	engine := newBoundEngine(t, config, skeleton)

	// 左肘を肩の真下へ。腕下げ端点の13度へ写る。
	frame := newNeutralFrame()
	setTestLandmark(frame, model.LandmarkLeftShoulder, 0.3, 0.4)
	setTestLandmark(frame, model.LandmarkLeftElbow, 0.3, 0.6)
	for cycle := 0; cycle < 5; cycle++ {
		if err := engine.Apply(frame); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
	}

	bone := mustBoneByName(t, skeleton, "UpperArm_L")
	degrees := bone.LocalRotation.ToDegrees()
	if math.Abs(degrees.Z-config.ArmsDownDegree) > 1.0 {
		t.Fatalf("arm down should converge to %f: %v", config.ArmsDownDegree, degrees)
	}
}

func TestAxisStrategyHorizontalArmMapsToTpose(t *testing.T) {
	skeleton := newTestSkeleton()
	config := NewDefaultEngineConfig()
	config.Strategy = StrategyAxis
	engine := newBoundEngine(t, config, skeleton)

	if err := engine.Apply(newNeutralFrame()); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	left := mustBoneByName(t, skeleton, "UpperArm_L")
	right := mustBoneByName(t, skeleton, "UpperArm_R")
	leftDegrees := left.LocalRotation.ToDegrees()
	rightDegrees := right.LocalRotation.ToDegrees()
	if math.Abs(leftDegrees.Z-config.TposeDegree) > 1e-6 {
		t.Fatalf("left horizontal arm should map to %f: %v", config.TposeDegree, leftDegrees)
	}
	if math.Abs(rightDegrees.Z+config.TposeDegree) > 1e-6 {
		t.Fatalf("right roll sign should be inverted: %v", rightDegrees)
	}
}

func TestAxisStrategyPreservesRestAxes(t *testing.T) {
	skeleton := newTestSkeleton()
	bone := mustBoneByName(t, skeleton, "UpperArm_L")
	bone.LocalRotation = mmath.NewQuaternionFromDegrees(20, 0, 0)

	config := NewDefaultEngineConfig()
	config.Strategy = StrategyAxis
	engine := newBoundEngine(t, config, skeleton)

	if err := engine.Apply(newNeutralFrame()); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	degrees := bone.LocalRotation.ToDegrees()
	if math.Abs(degrees.X-20) > 1e-4 {
		t.Fatalf("non-target axis should keep rest value: %v", degrees)
	}
	if math.Abs(degrees.Z-config.TposeDegree) > 1e-6 {
		t.Fatalf("target axis should be written: %v", degrees)
	}
}
