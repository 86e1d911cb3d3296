// Package stream は画像の配信を担います。
//
// スナップショットは画像を1枚読み込んでそのまま返します。
// ストリームは multipart/x-mixed-replace 形式で、画像の読み込み・フレームの書き込み・
// フラッシュ・待機を接続が切れるまで繰り返します。
//
// 仕様:
//   - フレームは "\r\n--myboundary\r\nContent-Length: n\r\nContent-Type: image/jpeg\r\n\r\n" と画像本体
//   - フレーム間隔は 1000/fps ミリ秒（整数除算）
//   - fpsが解釈できないときは2fps
//   - 終了条件は読み込みか書き込みの失敗のみ。キャンセル用のシグナルは持たない
//   - 接続ごとに独立したゴルーチンで動作し、他の接続を待たせない
package stream
