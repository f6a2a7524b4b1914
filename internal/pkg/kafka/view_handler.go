package kafka

import (
	"BlogPress/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ViewEvent 埋点上报的浏览事件
type ViewEvent struct {
	BlogID    uint64 `json:"blogId"`
	Username  string `json:"username"`
	IPAddress string `json:"ipAddress"`
}

// ViewsHandler 消费浏览事件写入浏览流水
type ViewsHandler struct {
	engagementService service.EngagementService
}

func NewViewsHandler(engagementService service.EngagementService) *ViewsHandler {
	return &ViewsHandler{engagementService: engagementService}
}

func (s *ViewsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("blog view consumer setup")
	return nil
}

func (s *ViewsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("blog view consumer cleanup")
	return nil
}

func (s *ViewsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("blog view consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("blog view process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ViewsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event ViewEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return errors.Wrap(err, "unmarshal view event")
	}
	if event.BlogID == 0 {
		return errors.New("view event missing blogId")
	}

	if err := s.engagementService.RecordView(ctx, event.BlogID, event.Username, event.IPAddress); err != nil {
		return errors.Wrapf(err, "record view blogID %d", event.BlogID)
	}
	return nil
}
