// Package mq 提供事件总线的 Kafka 实现
// 入站事件序列化后写入 Kafka，消费循环反序列化后交给分发函数
// 与内存通道实现互换，由配置 eventMode 选择
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "wavechat_server/internal/config"
	"wavechat_server/internal/service/chat"
	"wavechat_server/pkg/errorx"
)

// KafkaBus 基于 Kafka 的事件总线
type KafkaBus struct {
	producer *kafka.Writer
	consumer *kafka.Reader
}

// NewKafkaBus 按配置创建 Kafka 事件总线
func NewKafkaBus() *KafkaBus {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	return &KafkaBus{
		producer: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.ChatTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{kafkaConfig.HostPort},
			Topic:          kafkaConfig.ChatTopic,
			CommitInterval: kafkaConfig.Timeout * time.Second,
			GroupID:        "wavechat",
			StartOffset:    kafka.LastOffset,
		}),
	}
}

// Publish 把入站事件写入 Kafka，以连接 ID 作为分区键
func (b *KafkaBus) Publish(ctx context.Context, ev chat.InboundEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeInvalidParam, "序列化入站事件失败")
	}
	if err := b.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.ConnID.String()),
		Value: value,
	}); err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "写入kafka失败")
	}
	return nil
}

// Consume 消费循环，读到的事件逐条交给 dispatch
// Reader 关闭后返回
func (b *KafkaBus) Consume(dispatch func(chat.InboundEvent)) {
	for {
		kafkaMessage, err := b.consumer.ReadMessage(context.Background())
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			zap.L().Error("read kafka message failed", zap.Error(err))
			continue
		}
		var ev chat.InboundEvent
		if err := json.Unmarshal(kafkaMessage.Value, &ev); err != nil {
			zap.L().Error("unmarshal inbound event failed",
				zap.Int64("offset", kafkaMessage.Offset),
				zap.Error(err),
			)
			continue
		}
		dispatch(ev)
	}
}

// Close 关闭生产者与消费者
func (b *KafkaBus) Close() error {
	if err := b.producer.Close(); err != nil {
		zap.L().Error("close kafka producer failed", zap.Error(err))
	}
	return b.consumer.Close()
}
