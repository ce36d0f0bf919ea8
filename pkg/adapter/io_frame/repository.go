// 指示: miu200521358
// Package io_frame はランドマークキャプチャ(JSON Lines)の読み込みを提供する。
package io_frame

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
)

// 1行あたりの最大バイト数。33ランドマークのフレームには十分な余裕を持たせる。
const maxLineBytes = 1024 * 1024

// FrameRepository はランドマークキャプチャ入力の読み込み契約を表す。
// 1行1フレームのJSON Lines形式を扱う。
type FrameRepository struct{}

// NewFrameRepository はFrameRepositoryを生成する。
func NewFrameRepository() *FrameRepository {
	return &FrameRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *FrameRepository) CanLoad(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".jsonl") || strings.EqualFold(ext, ".ndjson")
}

// Load はキャプチャを読み込み、フレーム列を行順で返す。
// 空行は読み飛ばす。JSONとして不正な行は行番号付きのエラーとなる。
// ランドマーク数が揃わないフレームもそのまま返し、扱いは適用側に委ねる。
func (r *FrameRepository) Load(path string) ([]*model.LandmarkFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("キャプチャファイルを開けませんでした: %s: %w", path, err)
	}
	defer file.Close()

	var frames []*model.LandmarkFrame
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		frame := &model.LandmarkFrame{Index: -1}
		if err := json.Unmarshal([]byte(line), frame); err != nil {
			return nil, fmt.Errorf("キャプチャの解析に失敗しました: %s:%d: %w",
				path, lineNumber, err)
		}
		if frame.Index < 0 {
			frame.Index = len(frames)
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("キャプチャの読み込みに失敗しました: %s: %w", path, err)
	}

	return frames, nil
}
