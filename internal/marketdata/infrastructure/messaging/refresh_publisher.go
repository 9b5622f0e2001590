package messaging

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/industrytracker/internal/marketdata/domain"
	"github.com/wyfcoding/industrytracker/pkg/mq"
)

// KafkaRefreshPublisher 把快照刷新事件发到 Kafka，供下游（比如价格看板的
// 推送服务）消费。
type KafkaRefreshPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// RefreshedEvent 快照刷新事件
type RefreshedEvent struct {
	RegionID  int64     `json:"region_id"`
	TypeID    int64     `json:"type_id"`
	Orders    int       `json:"orders"`
	FetchedAt time.Time `json:"fetched_at"`
}

// NewKafkaRefreshPublisher 创建 Kafka 发布器
func NewKafkaRefreshPublisher(producer *mq.KafkaProducer, topic string) domain.RefreshPublisher {
	return &KafkaRefreshPublisher{producer: producer, topic: topic}
}

// PublishRefreshed 发布刷新事件。用 type_id 做 Key 保证同一商品的时序性。
func (p *KafkaRefreshPublisher) PublishRefreshed(ctx context.Context, snapshot *domain.Snapshot) error {
	event := RefreshedEvent{
		RegionID:  snapshot.RegionID,
		TypeID:    snapshot.TypeID,
		Orders:    len(snapshot.Orders),
		FetchedAt: snapshot.FetchedAt,
	}
	return p.producer.SendMessage(ctx, p.topic, strconv.FormatInt(snapshot.TypeID, 10), event)
}
