// Package main provides localization for the searchprobe CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Browser": "ブラウザ設定",
		"Waits":   "待機",
		"Output":  "出力",
		"Debug":   "デバッグ",
		"Logging": "ログ",

		// Commands
		"Search a web page through a real browser":                  "実際のブラウザでWebページを検索",
		"Open the search page, submit a query and wait for results": "検索ページを開き、クエリを送信して結果を待機",
		"Show version information":                                  "バージョン情報を表示",
		"searchprobe version %s":                                    "searchprobe バージョン %s",

		// Flags
		"YAML config file; flags override its values":              "YAML設定ファイル（フラグが優先されます）",
		"Run the browser headless; only \"false\" disables it":     "ヘッドレスで実行（\"false\" のみ無効化）",
		"Browser driver (chromedp, playwright)":                    "ブラウザドライバ（chromedp, playwright）",
		"Path to the Chrome executable (chromedp driver)":          "Chrome実行ファイルのパス（chromedpドライバ）",
		"Download Playwright Chromium before launching":            "起動前にPlaywrightのChromiumをダウンロード",
		"Maximum wait for the search page to load":                 "検索ページ読み込みの最大待機時間",
		"Maximum wait for the results page after submitting":       "送信後の結果ページの最大待機時間",
		"Interval between page state probes":                       "ページ状態の確認間隔",
		"Write a run summary (.json for JSON, Markdown otherwise)": "実行サマリーを書き出す（.json はJSON、それ以外はMarkdown）",
		"Save a screenshot and step trace when the run fails":      "失敗時にスクリーンショットとステップ記録を保存",
		"Directory for debug output":                               "デバッグ出力先ディレクトリ",
		"Log level (debug, info, warn, error)":                     "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                  "すべてのログ出力を抑制",
		"Interrupted":                                              "中断されました",

		// Summary labels
		"Search Scenario Summary": "検索シナリオ サマリー",
		"Generated":               "生成日時",
		"Result":                  "結果",
		"Item":                    "項目",
		"Value":                   "値",
		"Outcome":                 "結果",
		"Total Duration":          "合計時間",
		"Error":                   "エラー",
		"Target":                  "対象",
		"Locator":                 "ロケータ",
		"Query":                   "クエリ",
		"Steps":                   "ステップ",
		"Step":                    "ステップ",
		"Duration":                "所要時間",
		"Settings":                "設定",
		"Driver":                  "ドライバ",
		"Headless":                "ヘッドレス",
		"Arguments":               "引数",
		"Page Load Timeout":       "ページ読み込みタイムアウト",
		"Results Timeout":         "結果待機タイムアウト",
	})
}
