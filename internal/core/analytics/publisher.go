// Package analytics は分析基盤へ送る完了イベントのポートを定義します。
package analytics

import "context"

// Channel は分析イベントの論理チャネルです。
type Channel string

const (
	ChannelJobOffer          Channel = "job_offer_crm_to_analytics"
	ChannelCompletedJobOffer Channel = "completed_job_offer_crm_to_analytics"
	ChannelMessage           Channel = "message_crm_to_analytics"
	ChannelCompletedMessage  Channel = "completed_message_crm_to_analytics"
)

// Publisher はエンティティを分析チャネルへ送信します。
// 送信失敗はコアの遷移を取り消しません。呼び出し側はエラーをログに残すだけです。
type Publisher interface {
	Publish(ctx context.Context, channel Channel, payload any) error
}

// NoopPublisher は何も送信しない Publisher です。
type NoopPublisher struct{}

// Publish は常に nil を返します。
func (NoopPublisher) Publish(context.Context, Channel, any) error {
	return nil
}
