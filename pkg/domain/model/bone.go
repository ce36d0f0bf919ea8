// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/mmath"
)

// Bone は外部シーングラフ上の1ボーンを表す。
// このエンジンが書き換えるのはLocalRotationのみで、親子関係はシーングラフ側が所有する。
type Bone struct {
	name          string
	index         int
	ParentIndex   int
	Armature      string
	Position      mmath.Vec3
	LocalRotation mmath.Quaternion
}

// NewBoneByName は名前指定でボーンを生成する。
func NewBoneByName(name string) *Bone {
	return &Bone{
		name:          name,
		index:         -1,
		ParentIndex:   -1,
		LocalRotation: mmath.NewQuaternion(),
	}
}

// Name はボーン名を返す。
func (b *Bone) Name() string {
	return b.name
}

// Index はコレクション内indexを返す。未登録は-1。
func (b *Bone) Index() int {
	return b.index
}

// BoneCollection はボーン一覧をindex・名前の両方で引ける形で保持する。
// 複数アーマチュア間で名前は重複しうるため、名前引きは先勝ちとなる。
type BoneCollection struct {
	values      []*Bone
	nameIndexes map[string][]int
}

// NewBoneCollection は空のボーンコレクションを生成する。
func NewBoneCollection() *BoneCollection {
	return &BoneCollection{
		values:      make([]*Bone, 0),
		nameIndexes: map[string][]int{},
	}
}

// AppendRaw はボーンを末尾へ追加し、採番したindexを返す。
func (c *BoneCollection) AppendRaw(bone *Bone) int {
	if bone == nil {
		return -1
	}
	bone.index = len(c.values)
	c.values = append(c.values, bone)
	c.nameIndexes[bone.name] = append(c.nameIndexes[bone.name], bone.index)
	return bone.index
}

// Get は指定indexのボーンを返す。
func (c *BoneCollection) Get(index int) (*Bone, error) {
	if index < 0 || index >= len(c.values) {
		return nil, fmt.Errorf("ボーンindexが範囲外です: %d", index)
	}
	return c.values[index], nil
}

// GetByName は指定名のボーンを返す。重複時は最初の登録を返す。
func (c *BoneCollection) GetByName(name string) (*Bone, error) {
	indexes, exists := c.nameIndexes[name]
	if !exists || len(indexes) == 0 {
		return nil, fmt.Errorf("ボーンが見つかりません: %s", name)
	}
	return c.values[indexes[0]], nil
}

// Values は全ボーンを登録順で返す。
func (c *BoneCollection) Values() []*Bone {
	return c.values
}

// Len はボーン数を返す。
func (c *BoneCollection) Len() int {
	return len(c.values)
}
