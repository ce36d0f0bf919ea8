// 指示: miu200521358
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/edaniels/golog"

	"github.com/miu200521358/mu_pose2rig/pkg/adapter/io_frame"
	"github.com/miu200521358/mu_pose2rig/pkg/adapter/io_skeleton"
	"github.com/miu200521358/mu_pose2rig/pkg/adapter/rpresenter/messages"
	"github.com/miu200521358/mu_pose2rig/pkg/domain/model"
	"github.com/miu200521358/mu_pose2rig/pkg/usecase/port/routput"
	"github.com/miu200521358/mu_pose2rig/pkg/usecase/rinteractor"
)

// options はCLI引数を保持する。
type options struct {
	capturePath string
	rigPath     string
	outputPath  string
	strategy    string
	mirror      bool
	alpha       float64
}

// main はキャプチャを骨格へリプレイ適用し、最終ボーン回転を出力する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	var frameRepository routput.IFrameReader = io_frame.NewFrameRepository()
	if !frameRepository.CanLoad(opts.capturePath) {
		return fmt.Errorf("%s: %s", messages.MessageCaptureUnsupported, opts.capturePath)
	}
	var skeletonRepository routput.ISkeletonReader = io_skeleton.NewSkeletonRepository()
	if !skeletonRepository.CanLoad(opts.rigPath) {
		return fmt.Errorf("%s: %s", messages.MessageRigUnsupported, opts.rigPath)
	}

	fmt.Fprintf(out, "[mu_pose2rig] %s: %s\n", messages.LogCaptureLoading, opts.capturePath)
	frames, err := frameRepository.Load(opts.capturePath)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageCaptureLoadFailed, err)
	}

	fmt.Fprintf(out, "[mu_pose2rig] %s: %s\n", messages.LogRigLoading, opts.rigPath)
	skeleton, err := skeletonRepository.Load(opts.rigPath)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageRigLoadFailed, err)
	}

	config := rinteractor.NewDefaultEngineConfig()
	config.Strategy = rinteractor.StrategyType(opts.strategy)
	config.Mirror = opts.mirror
	config.SmoothingFactor = opts.alpha

	engine, err := rinteractor.NewRetargetEngine(config, golog.NewLogger("mu_pose2rig"))
	if err != nil {
		return err
	}
	if err := engine.Bind(skeleton, nil); err != nil {
		return fmt.Errorf("%s: %w", messages.MessageBindFailed, err)
	}
	for _, warning := range engine.Warnings() {
		fmt.Fprintf(errOut, "[mu_pose2rig] %s: %s\n", messages.LogWarning, warning)
	}

	bar := newProgressBar(len(frames), "[mu_pose2rig] "+messages.LogReplayPrefix)
	for _, frame := range frames {
		if err := engine.Apply(frame); err != nil {
			bar.Finish()
			return fmt.Errorf("%s: index=%d: %w", messages.MessageApplyFailed, frame.Index, err)
		}
		bar.Increment()
	}
	bar.Finish()

	if opts.outputPath != "" {
		if err := savePoseResult(opts.outputPath, skeleton); err != nil {
			return err
		}
		fmt.Fprintf(out, "[mu_pose2rig] %s: %s\n", messages.LogSaveCompleted, opts.outputPath)
	}
	fmt.Fprintf(out, "[mu_pose2rig] "+messages.LogReplaySuccess+"\n", len(frames))
	return nil
}

// newProgressBar は経過・残り時間付きのプログレスバーを生成する。
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	template := `{{ string . "prefix" }} {{counters . "%s/%s" "%s/?"}} {{bar . }} {{percent . "%.03f%%" "?"}} {{etime . "%s elapsed"}} {{rtime . "%s remain" "%s total" "???"}}`
	bar := pb.ProgressBarTemplate(template).Start(total)
	bar.Set("prefix", prefix)
	return bar
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_pose2rig", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", messages.UsageCapturePath)
	rig := fs.String("rig", "", messages.UsageRigPath)
	out := fs.String("out", "", messages.UsageOutputPath)
	strategy := fs.String("strategy", string(rinteractor.StrategyDirection),
		messages.UsageStrategy)
	mirror := fs.Bool("mirror", false, messages.UsageMirror)
	alpha := fs.Float64("alpha", rinteractor.NewDefaultEngineConfig().SmoothingFactor,
		messages.UsageAlpha)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *rig == "" && fs.NArg() > 1 {
		*rig = fs.Arg(1)
	}
	if *in == "" {
		return options{}, errors.New(messages.MessageCaptureRequired)
	}
	if *rig == "" {
		return options{}, errors.New(messages.MessageRigRequired)
	}

	switch rinteractor.StrategyType(*strategy) {
	case rinteractor.StrategyDirection, rinteractor.StrategyAxis:
	default:
		return options{}, fmt.Errorf("%s: %s", messages.MessageStrategyInvalid, *strategy)
	}
	if *alpha <= 0 || *alpha > 1 {
		return options{}, fmt.Errorf("%s: %f", messages.MessageAlphaOutOfRange, *alpha)
	}

	return options{
		capturePath: *in,
		rigPath:     *rig,
		outputPath:  *out,
		strategy:    *strategy,
		mirror:      *mirror,
		alpha:       *alpha,
	}, nil
}

// poseResultBone は結果出力の1ボーン分を表す。
type poseResultBone struct {
	Armature string     `json:"armature"`
	Name     string     `json:"name"`
	Rotation [4]float64 `json:"rotation"`
}

// savePoseResult はリプレイ後の全ボーンローカル回転をJSONで保存する。
func savePoseResult(outputPath string, skeleton *model.Skeleton) error {
	if !strings.EqualFold(filepath.Ext(outputPath), ".json") {
		return fmt.Errorf("出力拡張子が .json ではありません: %s", outputPath)
	}
	if err := ensureOutputDir(outputPath); err != nil {
		return err
	}

	results := make([]poseResultBone, 0, skeleton.Bones.Len())
	for _, bone := range skeleton.Bones.Values() {
		rotation := bone.LocalRotation
		results = append(results, poseResultBone{
			Armature: bone.Armature,
			Name:     bone.Name(),
			Rotation: [4]float64{
				rotation.X(), rotation.Y(), rotation.Z(), rotation.W,
			},
		})
	}

	data, err := json.MarshalIndent(map[string]any{"bones": results}, "", "  ")
	if err != nil {
		return fmt.Errorf("結果のJSON化に失敗しました: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("結果の保存に失敗しました: %s: %w", outputPath, err)
	}
	return nil
}

// ensureOutputDir は出力先ディレクトリを作成する。
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("出力先ディレクトリの作成に失敗しました: %w", err)
	}
	return nil
}
