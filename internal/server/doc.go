// Package server は、HTTPサーバーとリクエストの振り分けを管理します。
//
// このパッケージは、HTTPサーバーの起動と停止、
// クエリパラメータに応じたスナップショット/ストリーム配信の選択を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - action/fps パラメータの解釈と配信処理の選択
//   - 配信セッションの登録と終了ログ
//   - 配信失敗時の接続切断
//
// 仕様:
//   - ルーティングはginを使用。パスとメソッドは区別しない
//   - 接続ごとに独立したゴルーチンで処理し、同時接続数の上限は設けない
//   - 配信中のエラーはレスポンスに書かず、接続を切るだけにする
//   - グレースフルシャットダウンに対応。終わらないストリームは猶予後に切断する
package server
