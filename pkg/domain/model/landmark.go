// 指示: miu200521358
// Package model はリターゲット対象のランドマーク・骨格のドメイン型を提供する。
package model

import "fmt"

// LandmarkCount は1フレームあたりのランドマーク数(MediaPipe Pose準拠)。
const LandmarkCount = 33

// LandmarkIndex はランドマーク表内の固定indexを表す。
type LandmarkIndex int

// ランドマークindex一覧(表は固定・versioned)。
const (
	LandmarkNose          LandmarkIndex = 0
	LandmarkLeftEyeInner  LandmarkIndex = 1
	LandmarkLeftEye       LandmarkIndex = 2
	LandmarkLeftEyeOuter  LandmarkIndex = 3
	LandmarkRightEyeInner LandmarkIndex = 4
	LandmarkRightEye      LandmarkIndex = 5
	LandmarkRightEyeOuter LandmarkIndex = 6
	LandmarkLeftEar       LandmarkIndex = 7
	LandmarkRightEar      LandmarkIndex = 8
	LandmarkMouthLeft     LandmarkIndex = 9
	LandmarkMouthRight    LandmarkIndex = 10
	LandmarkLeftShoulder  LandmarkIndex = 11
	LandmarkRightShoulder LandmarkIndex = 12
	LandmarkLeftElbow     LandmarkIndex = 13
	LandmarkRightElbow    LandmarkIndex = 14
	LandmarkLeftWrist     LandmarkIndex = 15
	LandmarkRightWrist    LandmarkIndex = 16
	LandmarkLeftPinky     LandmarkIndex = 17
	LandmarkRightPinky    LandmarkIndex = 18
	LandmarkLeftIndex     LandmarkIndex = 19
	LandmarkRightIndex    LandmarkIndex = 20
	LandmarkLeftThumb     LandmarkIndex = 21
	LandmarkRightThumb    LandmarkIndex = 22
	LandmarkLeftHip       LandmarkIndex = 23
	LandmarkRightHip      LandmarkIndex = 24
	LandmarkLeftKnee      LandmarkIndex = 25
	LandmarkRightKnee     LandmarkIndex = 26
	LandmarkLeftAnkle     LandmarkIndex = 27
	LandmarkRightAnkle    LandmarkIndex = 28
	LandmarkLeftHeel      LandmarkIndex = 29
	LandmarkRightHeel     LandmarkIndex = 30
	LandmarkLeftFootIndex LandmarkIndex = 31
	LandmarkRightFootIndex LandmarkIndex = 32
)

// landmarkNames はindexからランドマーク名への固定対応を保持する。
var landmarkNames = [LandmarkCount]string{
	"nose",
	"left eye (inner)",
	"left eye",
	"left eye (outer)",
	"right eye (inner)",
	"right eye",
	"right eye (outer)",
	"left ear",
	"right ear",
	"mouth (left)",
	"mouth (right)",
	"left shoulder",
	"right shoulder",
	"left elbow",
	"right elbow",
	"left wrist",
	"right wrist",
	"left pinky",
	"right pinky",
	"left index",
	"right index",
	"left thumb",
	"right thumb",
	"left hip",
	"right hip",
	"left knee",
	"right knee",
	"left ankle",
	"right ankle",
	"left heel",
	"right heel",
	"left foot index",
	"right foot index",
}

// String はランドマーク名を返す。
func (i LandmarkIndex) String() string {
	if i < 0 || int(i) >= LandmarkCount {
		return fmt.Sprintf("landmark(%d)", int(i))
	}
	return landmarkNames[i]
}

// Landmark は1関節の推定サンプルを表す。
// X,Yは正規化画像座標[0,1]、Zは相対深度(負=手前)。
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
	Presence   float64 `json:"presence"`
}

// LandmarkFrame は1更新分のランドマーク列を表す。
type LandmarkFrame struct {
	Index     int        `json:"index"`
	Landmarks []Landmark `json:"landmarks"`
}

// IsValid はフレームが固定スキーマを満たすか判定する。
func (f *LandmarkFrame) IsValid() bool {
	return f != nil && len(f.Landmarks) == LandmarkCount
}

// Get は指定indexのランドマークを返す。
func (f *LandmarkFrame) Get(index LandmarkIndex) (Landmark, error) {
	if !f.IsValid() {
		return Landmark{}, fmt.Errorf("ランドマークフレームが不正です: len=%d", len(f.Landmarks))
	}
	if index < 0 || int(index) >= LandmarkCount {
		return Landmark{}, fmt.Errorf("ランドマークindexが範囲外です: %d", int(index))
	}
	return f.Landmarks[index], nil
}
