package types

// SubscriptionResult 订阅切换结果
type SubscriptionResult struct {
	Subscribed       bool  `json:"subscribed"`
	SubscribersCount int64 `json:"subscribersCount"`
}
