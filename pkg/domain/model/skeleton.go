// 指示: miu200521358
package model

// Skeleton は外部アセットローダーから渡される骨格シーングラフのハンドルを表す。
// 複数の独立アーマチュアを含みうる。ワールド変換の再計算はレンダリング側の責務で、
// このエンジンはdirty通知のみ行う。
type Skeleton struct {
	Bones *BoneCollection

	dirtyIndexes []int
	dirtySet     map[int]struct{}
}

// NewSkeleton は空の骨格を生成する。
func NewSkeleton() *Skeleton {
	return &Skeleton{
		Bones:    NewBoneCollection(),
		dirtySet: map[int]struct{}{},
	}
}

// InvalidateWorld は指定ボーンのワールド変換を無効化する。
// レンダリング側が ConsumeDirty で回収するまで保持される。
func (s *Skeleton) InvalidateWorld(boneIndex int) {
	if s == nil || boneIndex < 0 {
		return
	}
	if s.dirtySet == nil {
		s.dirtySet = map[int]struct{}{}
	}
	if _, exists := s.dirtySet[boneIndex]; exists {
		return
	}
	s.dirtySet[boneIndex] = struct{}{}
	s.dirtyIndexes = append(s.dirtyIndexes, boneIndex)
}

// ConsumeDirty は無効化済みボーンindex一覧を返し、保持状態をクリアする。
func (s *Skeleton) ConsumeDirty() []int {
	if s == nil || len(s.dirtyIndexes) == 0 {
		return nil
	}
	consumed := s.dirtyIndexes
	s.dirtyIndexes = nil
	s.dirtySet = map[int]struct{}{}
	return consumed
}

// HasBones は1本以上のボーンを持つか判定する。
func (s *Skeleton) HasBones() bool {
	return s != nil && s.Bones != nil && s.Bones.Len() > 0
}
