package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run level messages (info)
		"Starting search scenario with %s": "%s で検索シナリオを開始します",
		"Scenario completed in %d ms":      "シナリオが %d ms で完了しました",
		"Summary written to %s":            "サマリーを %s に書き出しました",
		"Interrupted, shutting down...":    "中断されました。シャットダウン中...",

		// Launch step
		"Launching browser in headless mode": "ヘッドレスモードでブラウザを起動中",
		"Launching browser in visible mode":  "表示モードでブラウザを起動中",
		"Browser arguments: %s":              "ブラウザ引数: %s",
		"Using Chrome at %s":                 "Chrome を使用: %s",
		"Installing Playwright Chromium":     "Playwright の Chromium をインストール中",
		"Launching Chromium with %s":         "%s で Chromium を起動中",

		// Search steps
		"Navigating to %s":                      "%s へ移動中",
		"Waiting for page load":                 "ページの読み込みを待機中",
		"Ready state: %s":                       "readyState: %s",
		"Page state probe failed: %s":           "ページ状態の取得に失敗しました: %s",
		"Locating element named %s":             "name 属性が %s の要素を検索中",
		"%d elements match %s, using the first": "%d 個の要素が %s に一致しました。最初の要素を使用します",
		"Typing %s":                             "%s を入力中",
		"Submitting search form":                "検索フォームを送信中",
		"Waiting for search results":            "検索結果を待機中",
		"Search results loaded: %s":             "検索結果を読み込みました: %s",

		// Close step
		"Browser closed":              "ブラウザを閉じました",
		"Failed to close browser: %s": "ブラウザを閉じられませんでした: %s",

		// Errors and debug output
		"Scenario failed at %s: %s":        "シナリオが %s で失敗しました: %s",
		"Failed to capture screenshot: %s": "スクリーンショットの取得に失敗しました: %s",
		"Failed to save debug output: %s":  "デバッグ出力の保存に失敗しました: %s",
		"Failed to write summary: %s":      "サマリーの書き出しに失敗しました: %s",
	})
}
