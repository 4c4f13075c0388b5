package main

import (
	"context"
	"os"

	"bikeshare/analyzer"
	"bikeshare/client/config"
	"bikeshare/communication"
	"bikeshare/domain/loader"
	"bikeshare/utils"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// InitLogger Receives the log level to be set in logrus as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   false,
	}
	log.SetFormatter(customFormatter)
	log.SetLevel(level)
	return nil
}

func main() {
	// .env is optional, the environment can also be set by other means
	_ = godotenv.Load()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	if err := InitLogger(logLevel); err != nil {
		log.Fatalf("%s", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.DefaultConfigFilepath
	}

	clientConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("[client][status: ERROR] error loading config: %s", err.Error())
	}

	var publisher analyzer.Publisher
	openResources := &resources{}
	defer openResources.Close()

	rabbitURL := os.Getenv("RABBIT_URL")
	if clientConfig.Publisher.Enabled && rabbitURL != "" {
		rabbitMQ, err := communication.NewRabbitMQ(rabbitURL)
		if err != nil {
			log.Fatalf("[client][status: ERROR] failed to connect to RabbitMQ: %s", err.Error())
		}
		openResources.Add(rabbitMQ.KillBadBunny)

		err = rabbitMQ.DeclareNonAnonymousQueues([]communication.QueueDeclarationConfig{clientConfig.Publisher.OutputQueue})
		if err != nil {
			openResources.Close()
			log.Fatalf("[client][status: ERROR] %s", err.Error())
		}
		publisher = communication.NewResponsePublisher(rabbitMQ, clientConfig.Publisher)
		log.Infof("[client][status: OK] publishing responses in %s", clientConfig.Publisher.OutputQueue.Name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// stdin reads cannot be interrupted, so the process exits from here once resources are closed
	signalChannel := utils.GetSignalChannel()
	go func() {
		<-signalChannel
		log.Info("[client] signal received, finishing")
		cancel()
		openResources.Close()
		os.Exit(0)
	}()

	dataLoader := loader.NewLoader(clientConfig.Loader)
	client := NewClient(clientConfig, analyzer.NewAnalyzer(dataLoader, publisher), os.Stdin, os.Stdout)
	if err := client.Run(ctx); err != nil {
		log.Errorf("[client][status: ERROR] %s", err.Error())
	}
	log.Debug("Finish main.go")
}
