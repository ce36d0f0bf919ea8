// 指示: miu200521358
// Package messages はCLI表示・ログに使うメッセージ定義を提供する。
package messages

// フラグ説明。
const (
	UsageCapturePath = "入力キャプチャファイルパス(JSON Lines)"
	UsageRigPath     = "入力骨格定義ファイルパス(JSON)"
	UsageOutputPath  = "最終ボーン回転の出力パス(JSON)"
	UsageStrategy    = "ソルバー戦略 (direction / axis)"
	UsageMirror      = "ミラーリングを有効にする"
	UsageAlpha       = "平滑化係数 (0..1]"
)

// エラーメッセージ。
const (
	MessageCaptureRequired    = "入力キャプチャファイルを指定してください (-in)"
	MessageRigRequired        = "入力骨格定義ファイルを指定してください (-rig)"
	MessageCaptureUnsupported = "キャプチャ形式が未対応です"
	MessageRigUnsupported     = "骨格定義形式が未対応です"
	MessageCaptureLoadFailed  = "キャプチャ読み込みに失敗しました"
	MessageRigLoadFailed      = "骨格定義読み込みに失敗しました"
	MessageBindFailed         = "バインドに失敗しました"
	MessageApplyFailed        = "フレーム適用に失敗しました"
	MessageStrategyInvalid    = "ソルバー戦略が不正です"
	MessageAlphaOutOfRange    = "平滑化係数が範囲外です"
)

// 進捗・結果メッセージ。
const (
	LogCaptureLoading = "キャプチャ読み込み開始"
	LogRigLoading     = "骨格定義読み込み開始"
	LogReplayPrefix   = "リプレイ"
	LogWarning        = "警告"
	LogSaveCompleted  = "結果保存完了"
	LogReplaySuccess  = "リプレイ完了: %dフレーム適用"
)
