// 指示: miu200521358
// Package io_skeleton は骨格定義(JSON)の読み込みを提供する。
package io_skeleton

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// rigFile は骨格定義JSONのルートを表す。
type rigFile struct {
	Armatures []rigArmature `json:"armatures"`
}

// rigArmature は1アーマチュア分の定義を表す。
type rigArmature struct {
	Name  string    `json:"name"`
	Bones []rigBone `json:"bones"`
}

// rigBone は1ボーン分の定義を表す。
// Parentはアーマチュア内のローカルindexで、-1は親なしを表す。
// Rotationは[x,y,z,w]のクォータニオン。省略時は単位回転となる。
type rigBone struct {
	Name     string     `json:"name"`
	Parent   *int       `json:"parent"`
	Position [3]float64 `json:"position"`
	Rotation []float64  `json:"rotation"`
}

// SkeletonRepository は骨格定義入力の読み込み契約を表す。
type SkeletonRepository struct{}

// NewSkeletonRepository はSkeletonRepositoryを生成する。
func NewSkeletonRepository() *SkeletonRepository {
	return &SkeletonRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *SkeletonRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load は骨格定義を読み込み、全アーマチュアを1つの骨格へ束ねて返す。
// ボーンindexは登録順で採番され、親参照はアーマチュア内ローカルindexから
// 全体indexへ付け替える。
func (r *SkeletonRepository) Load(path string) (*model.Skeleton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("骨格定義ファイルを開けませんでした: %s: %w", path, err)
	}

	var file rigFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("骨格定義の解析に失敗しました: %s: %w", path, err)
	}

	skeleton := model.NewSkeleton()
	for armatureIndex, armature := range file.Armatures {
		armatureName := armature.Name
		if armatureName == "" {
			armatureName = fmt.Sprintf("armature%02d", armatureIndex)
		}
		baseIndex := skeleton.Bones.Len()
		for boneIndex, rig := range armature.Bones {
			if rig.Name == "" {
				return nil, fmt.Errorf("ボーン名が空です: %s: armature=%s index=%d",
					path, armatureName, boneIndex)
			}
			bone := model.NewBoneByName(rig.Name)
			bone.Armature = armatureName
			bone.Position = mmath.NewVec3(rig.Position[0], rig.Position[1], rig.Position[2])
			rotation, err := parseRotation(rig.Rotation)
			if err != nil {
				return nil, fmt.Errorf("ボーン回転が不正です: %s: %s.%s: %w",
					path, armatureName, rig.Name, err)
			}
			bone.LocalRotation = rotation
			if rig.Parent != nil && *rig.Parent >= 0 {
				if *rig.Parent >= len(armature.Bones) {
					return nil, fmt.Errorf("親ボーンindexが範囲外です: %s: %s.%s: %d",
						path, armatureName, rig.Name, *rig.Parent)
				}
				bone.ParentIndex = baseIndex + *rig.Parent
			}
			skeleton.Bones.AppendRaw(bone)
		}
	}

	return skeleton, nil
}

// parseRotation は[x,y,z,w]配列からクォータニオンを生成する。
func parseRotation(values []float64) (mmath.Quaternion, error) {
	if len(values) == 0 {
		return mmath.NewQuaternion(), nil
	}
	if len(values) != 4 {
		return mmath.Quaternion{}, fmt.Errorf("要素数が4ではありません: %d", len(values))
	}
	return mmath.NewQuaternionXYZW(values[0], values[1], values[2], values[3]), nil
}
