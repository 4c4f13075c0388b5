package communication

// PublisherConfig config of the publisher of query responses
// + Enabled: if false, responses are not published
// + OutputQueue: queue in which the responses are published
// + PublishTimeoutSeconds: max time to wait for each publishing
type PublisherConfig struct {
	Enabled               bool                   `yaml:"enabled"`
	OutputQueue           QueueDeclarationConfig `yaml:"output_queue"`
	PublishTimeoutSeconds int                    `yaml:"publish_timeout_seconds" validate:"gte=0"`
}

// QueueDeclarationConfig contains the parameters to declare a RabbitMQ queue
type QueueDeclarationConfig struct {
	Name             string `yaml:"name"`
	Durable          bool   `yaml:"durable"`
	DeleteWhenUnused bool   `yaml:"delete_when_unused"`
	Exclusive        bool   `yaml:"exclusive"`
	NoWait           bool   `yaml:"no_wait"`
}
