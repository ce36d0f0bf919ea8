// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/edaniels/golog"

	"github.com/miu200521358/mu_pose2rig/pkg/adapter/io_frame"
	"github.com/miu200521358/mu_pose2rig/pkg/adapter/io_skeleton"
	"github.com/miu200521358/mu_pose2rig/pkg/usecase/rinteractor"
)

// batchConfig はバッチリプレイの実行設定を表す。
type batchConfig struct {
	CaptureDir string
	RigPath    string
	Strategy   string
	DryRun     bool
	FailFast   bool
}

// replayEntry は1キャプチャ分のリプレイ入力情報を表す。
type replayEntry struct {
	Index       int
	CapturePath string
	CaseName    string
}

// replayResult は1キャプチャ分のリプレイ結果を表す。
type replayResult struct {
	Entry         replayEntry
	Status        string
	Duration      time.Duration
	Err           error
	FrameCount    int
	DroppedFrames int
	WarningCount  int
	BindInfo      string
}

// bindProgressCollector はBindの進捗イベントを収集する。
type bindProgressCollector struct {
	eventCounts   map[rinteractor.BindProgressEventType]int
	resolvedCount int
	boneCount     int
}

// ReportBindProgress はバインド進捗を収集する。
func (c *bindProgressCollector) ReportBindProgress(event rinteractor.BindProgressEvent) {
	if c.eventCounts == nil {
		c.eventCounts = map[rinteractor.BindProgressEventType]int{}
	}
	c.eventCounts[event.Type]++
	if event.ResolvedCount > 0 {
		c.resolvedCount = event.ResolvedCount
	}
	if event.BoneCount > 0 {
		c.boneCount = event.BoneCount
	}
}

// summary はバインド進捗の要約文字列を返す。
func (c *bindProgressCollector) summary() string {
	return fmt.Sprintf("events=%d resolved=%d bones=%d",
		len(c.eventCounts), c.resolvedCount, c.boneCount)
}

// main は骨格検証向けのキャプチャ一括リプレイを実行する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括リプレイを実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries, err := buildReplayEntries(config.CaptureDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "キャプチャ列挙に失敗しました: %v\n", err)
		return 2
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "リプレイ対象キャプチャがありません")
		return 2
	}

	results := executeBatchReplay(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	captureDir := flag.String("capture-dir", "", "リプレイ対象キャプチャ(.jsonl)のディレクトリ")
	rigPath := flag.String("rig", "", "バインド対象の骨格定義ファイル(JSON)")
	strategy := flag.String("strategy", string(rinteractor.StrategyDirection),
		"ソルバー戦略 (direction / axis)")
	dryRun := flag.Bool("dry-run", false, "実リプレイせず、入力解決の計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "最初の失敗で残りを打ち切る")
	flag.Parse()

	if *captureDir == "" {
		return batchConfig{}, fmt.Errorf("キャプチャディレクトリを指定してください (-capture-dir)")
	}
	if *rigPath == "" {
		return batchConfig{}, fmt.Errorf("骨格定義ファイルを指定してください (-rig)")
	}
	switch rinteractor.StrategyType(*strategy) {
	case rinteractor.StrategyDirection, rinteractor.StrategyAxis:
	default:
		return batchConfig{}, fmt.Errorf("ソルバー戦略が不正です: %s", *strategy)
	}

	return batchConfig{
		CaptureDir: *captureDir,
		RigPath:    *rigPath,
		Strategy:   *strategy,
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// buildReplayEntries はキャプチャディレクトリから対象一覧を名前順で構築する。
func buildReplayEntries(captureDir string) ([]replayEntry, error) {
	dirEntries, err := os.ReadDir(captureDir)
	if err != nil {
		return nil, fmt.Errorf("ディレクトリを開けませんでした: %s: %w", captureDir, err)
	}

	var entries []replayEntry
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		name := dirEntry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".jsonl") {
			continue
		}
		entries = append(entries, replayEntry{
			CapturePath: filepath.Join(captureDir, name),
			CaseName:    strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CaseName < entries[j].CaseName
	})
	for i := range entries {
		entries[i].Index = i
	}
	return entries, nil
}

// executeBatchReplay は全キャプチャを順次リプレイする。
func executeBatchReplay(config batchConfig, entries []replayEntry) []replayResult {
	results := make([]replayResult, 0, len(entries))
	for _, entry := range entries {
		if config.DryRun {
			fmt.Printf("[%02d] plan: %s -> rig=%s strategy=%s\n",
				entry.Index, entry.CapturePath, config.RigPath, config.Strategy)
			results = append(results, replayResult{Entry: entry, Status: "planned"})
			continue
		}

		result := replayOne(config, entry)
		results = append(results, result)
		if result.Status == "failed" && config.FailFast {
			break
		}
	}
	return results
}

// replayOne は1キャプチャ分のリプレイを実行する。
func replayOne(config batchConfig, entry replayEntry) replayResult {
	started := time.Now()
	result := replayResult{Entry: entry, Status: "failed"}

	frames, err := io_frame.NewFrameRepository().Load(entry.CapturePath)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(started)
		return result
	}
	skeleton, err := io_skeleton.NewSkeletonRepository().Load(config.RigPath)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(started)
		return result
	}

	engineConfig := rinteractor.NewDefaultEngineConfig()
	engineConfig.Strategy = rinteractor.StrategyType(config.Strategy)
	engine, err := rinteractor.NewRetargetEngine(engineConfig, golog.NewLogger("integration"))
	if err != nil {
		result.Err = err
		result.Duration = time.Since(started)
		return result
	}

	collector := &bindProgressCollector{}
	if err := engine.Bind(skeleton, collector); err != nil {
		result.Err = err
		result.Duration = time.Since(started)
		return result
	}
	result.BindInfo = collector.summary()

	// フレームの受け渡しは実運用と同じくFrameBoxを経由する。
	// 逐次リプレイでは取りこぼしは発生しないため、dropped>0は契約違反を示す。
	box := rinteractor.NewFrameBox()
	for _, frame := range frames {
		box.Store(frame)
		latest := box.TakeLatest()
		if latest == nil {
			continue
		}
		if err := engine.Apply(latest); err != nil {
			result.Err = fmt.Errorf("フレーム適用に失敗しました: index=%d: %w", latest.Index, err)
			result.Duration = time.Since(started)
			return result
		}
	}

	result.Status = "ok"
	result.FrameCount = len(frames)
	result.DroppedFrames = box.DroppedCount()
	result.WarningCount = len(engine.Warnings())
	result.Duration = time.Since(started)
	return result
}

// printBatchSummary はバッチリプレイの結果一覧を表示する。
func printBatchSummary(results []replayResult) {
	fmt.Println("---- batch replay summary ----")
	for _, result := range results {
		if result.Err != nil {
			fmt.Printf("[%02d] %-8s %-24s %v\n",
				result.Entry.Index, result.Status, result.Entry.CaseName, result.Err)
			continue
		}
		fmt.Printf("[%02d] %-8s %-24s frames=%d dropped=%d warnings=%d %s (%s)\n",
			result.Entry.Index, result.Status, result.Entry.CaseName,
			result.FrameCount, result.DroppedFrames, result.WarningCount, result.BindInfo,
			result.Duration.Round(time.Millisecond))
	}
}
