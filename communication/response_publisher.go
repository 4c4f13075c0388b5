package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bikeshare/domain/business/queryresponse"
	log "github.com/sirupsen/logrus"
)

const (
	contentTypeJson       = "application/json"
	defaultPublishTimeout = 5 * time.Second
)

// messagePublisher publishes raw messages in a queue. RabbitMQ implements it
type messagePublisher interface {
	PublishMessageInQueue(ctx context.Context, queueName string, message []byte, contentType string) error
}

// ResponsePublisher publishes query responses as JSON in a queue
type ResponsePublisher struct {
	publisher messagePublisher
	queueName string
	timeout   time.Duration
}

func NewResponsePublisher(publisher messagePublisher, publisherConfig PublisherConfig) *ResponsePublisher {
	timeout := time.Duration(publisherConfig.PublishTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	return &ResponsePublisher{
		publisher: publisher,
		queueName: publisherConfig.OutputQueue.Name,
		timeout:   timeout,
	}
}

// Publish sends each response to the output queue. It stops at the first error
func (rp *ResponsePublisher) Publish(ctx context.Context, responses []*queryresponse.QueryResponse) error {
	for _, response := range responses {
		responseBytes, err := json.Marshal(response)
		if err != nil {
			return fmt.Errorf("error marshalling query response %s: %w", response.GetQueryID(), err)
		}

		publishCtx, cancel := context.WithTimeout(ctx, rp.timeout)
		err = rp.publisher.PublishMessageInQueue(publishCtx, rp.queueName, responseBytes, contentTypeJson)
		cancel()
		if err != nil {
			log.Errorf("[publisher][query: %s][method: Publish][status: ERROR] error publishing query response: %s", response.GetQueryID(), err.Error())
			return fmt.Errorf("error publishing query response %s: %w", response.GetQueryID(), err)
		}

		metadata := response.GetMetadata()
		log.Debugf("[publisher][city: %s][stage: %s][query: %s][method: Publish][status: OK] query response published in %s", metadata.GetCity(), metadata.GetStage(), response.GetQueryID(), rp.queueName)
	}
	return nil
}
