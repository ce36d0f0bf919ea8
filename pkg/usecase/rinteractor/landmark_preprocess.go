// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"math"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// degenerateLengthEpsilon は方向ベクトルの縮退判定しきい値。
const degenerateLengthEpsilon = 1e-6

// preprocessOptions はランドマーク前処理の調整値を表す。
type preprocessOptions struct {
	Mirror        bool
	AspectRatio   float64
	DepthScale    float64
	BodyTurnScale float64
}

// PreprocessedFrame は前処理済みの1フレームを表す。
// ワールド位置に加え、正規化画像座標のまま評価すべき派生量も保持する。
type PreprocessedFrame struct {
	positions  [model.LandmarkCount]mmath.Vec3
	imageX     [model.LandmarkCount]float64
	imageY     [model.LandmarkCount]float64
	visibility [model.LandmarkCount]float64

	// ShoulderWidth は正規化画像座標上の両肩距離。
	ShoulderWidth float64
	// ShoulderTiltAngle は両肩の傾き角(ラジアン、符号付き)。
	ShoulderTiltAngle float64
	// BodyTurnAngle は胴体ひねり角(ラジアン、スケール適用済み)。
	BodyTurnAngle float64
}

// preprocessFrame はフレームをミラーリング・ワールド座標化し派生量を計算する。
// ミラーリングはここで一度だけ適用され、下流は結果を再反転しない。
func preprocessFrame(frame *model.LandmarkFrame, options preprocessOptions) (*PreprocessedFrame, error) {
	if !frame.IsValid() {
		return nil, fmt.Errorf("ランドマークフレームが不正です: len=%d", landmarkLen(frame))
	}

	processed := &PreprocessedFrame{}
	for i := 0; i < model.LandmarkCount; i++ {
		landmark := frame.Landmarks[i]
		x := landmark.X
		if options.Mirror {
			x = 1.0 - x
		}
		processed.imageX[i] = x
		processed.imageY[i] = landmark.Y
		processed.visibility[i] = landmark.Visibility
		processed.positions[i] = mmath.NewVec3(
			(x-0.5)*options.AspectRatio,
			0.5-landmark.Y,
			landmark.Z*options.DepthScale,
		)
	}

	leftShoulder := int(model.LandmarkLeftShoulder)
	rightShoulder := int(model.LandmarkRightShoulder)
	deltaX := processed.imageX[leftShoulder] - processed.imageX[rightShoulder]
	deltaY := processed.imageY[leftShoulder] - processed.imageY[rightShoulder]
	processed.ShoulderWidth = math.Hypot(deltaX, deltaY)
	processed.ShoulderTiltAngle = math.Atan2(deltaY, deltaX)

	depthDiff := (frame.Landmarks[leftShoulder].Z - frame.Landmarks[rightShoulder].Z) * options.DepthScale
	if options.Mirror {
		depthDiff = -depthDiff
	}
	if processed.ShoulderWidth > degenerateLengthEpsilon {
		processed.BodyTurnAngle = math.Atan2(depthDiff, processed.ShoulderWidth) * options.BodyTurnScale
	}

	return processed, nil
}

// landmarkLen はnil安全にランドマーク数を返す。
func landmarkLen(frame *model.LandmarkFrame) int {
	if frame == nil {
		return 0
	}
	return len(frame.Landmarks)
}

// Position は指定ランドマークのワールド位置を返す。
func (p *PreprocessedFrame) Position(index model.LandmarkIndex) mmath.Vec3 {
	return p.positions[index]
}

// Visibility は指定ランドマークの可視度を返す。
func (p *PreprocessedFrame) Visibility(index model.LandmarkIndex) float64 {
	return p.visibility[index]
}

// IsVisible は指定ランドマークがしきい値以上の可視度を持つか判定する。
// しきい値0以下はゲーティング無効として常にtrueを返す。
func (p *PreprocessedFrame) IsVisible(index model.LandmarkIndex, threshold float64) bool {
	if threshold <= 0 {
		return true
	}
	return p.visibility[index] >= threshold
}

// MidPosition は2ランドマークのワールド中点を返す。
func (p *PreprocessedFrame) MidPosition(a, b model.LandmarkIndex) mmath.Vec3 {
	return mmath.MidPoint(p.positions[a], p.positions[b])
}

// Direction はfromからtoへのワールド方向ベクトル(非正規化)を返す。
func (p *PreprocessedFrame) Direction(from, to model.LandmarkIndex) mmath.Vec3 {
	return p.positions[to].Subed(p.positions[from])
}

// VerticalArmAngle は肩→肘の対垂直角(ラジアン)を正規化画像座標上で返す。
// 真下で-π/2、水平で0となる。横方向成分は絶対値で評価するためミラー不変。
func (p *PreprocessedFrame) VerticalArmAngle(shoulder, elbow model.LandmarkIndex) float64 {
	deltaX := p.imageX[elbow] - p.imageX[shoulder]
	deltaY := p.imageY[elbow] - p.imageY[shoulder]
	return math.Atan2(-deltaY, math.Abs(deltaX))
}
