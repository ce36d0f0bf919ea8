// 指示: miu200521358
// Package routput はリターゲットエンジンの外部協調者との契約を表す。
package routput

import "github.com/miu200521358/mu_pose2rig/pkg/domain/model"

// IFrameReader はランドマークキャプチャの読み込み契約を表す。
type IFrameReader interface {
	// CanLoad は指定パスを読み込み可能か判定する。
	CanLoad(path string) bool
	// Load はキャプチャを読み込み、フレーム列を返す。
	Load(path string) ([]*model.LandmarkFrame, error)
}

// ISkeletonReader は骨格定義の読み込み契約を表す。
type ISkeletonReader interface {
	// CanLoad は指定パスを読み込み可能か判定する。
	CanLoad(path string) bool
	// Load は骨格定義を読み込む。
	Load(path string) (*model.Skeleton, error)
}
