// 指示: miu200521358
package rinteractor

import (
	"sync"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// FrameBox は最新1フレームのみを保持する受け渡し箱を表す。
// 推定側が適用側より速い場合、古いフレームは黙って上書きされる。
// エンジン本体と異なりStore/TakeLatestは別goroutineから呼んでよい。
type FrameBox struct {
	mu      sync.Mutex
	latest  *model.LandmarkFrame
	dropped int
}

// NewFrameBox は空のフレーム箱を生成する。
func NewFrameBox() *FrameBox {
	return &FrameBox{}
}

// Store は最新フレームを格納する。未回収フレームがあれば破棄して数える。
func (b *FrameBox) Store(frame *model.LandmarkFrame) {
	if frame == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest != nil {
		b.dropped++
	}
	b.latest = frame
}

// TakeLatest は最新フレームを取り出す。未格納ならnilを返す。
func (b *FrameBox) TakeLatest() *model.LandmarkFrame {
	b.mu.Lock()
	defer b.mu.Unlock()
	frame := b.latest
	b.latest = nil
	return frame
}

// DroppedCount は上書きにより破棄されたフレーム数を返す。
func (b *FrameBox) DroppedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
