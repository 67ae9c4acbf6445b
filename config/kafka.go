package config

import (
	"fairway/utils"
	"fmt"
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"
)

func topicName(competitionId int) string {
	return fmt.Sprintf("leaderboard-updates-%d", competitionId)
}

func CreateTopic(competitionId int) error {
	broker := Env().KafkaBroker
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER environment variable not set")
	}

	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return err
	}
	defer utils.Closer(conn)()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer utils.Closer(controllerConn)()

	topicConfig := kafka.TopicConfig{
		Topic:             topicName(competitionId),
		NumPartitions:     1,
		ReplicationFactor: 1,
		ConfigEntries: []kafka.ConfigEntry{
			// 1 day retention; a leaderboard diff is worthless once the competition is finalized
			{
				ConfigName:  "retention.ms",
				ConfigValue: "86400000",
			},
			{
				ConfigName:  "retention.bytes",
				ConfigValue: "-1",
			},
		},
	}

	return controllerConn.CreateTopics(topicConfig)
}

func GetLeaderboardWriter(competitionId int) (*kafka.Writer, error) {
	broker := Env().KafkaBroker
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	err := CreateTopic(competitionId)
	if err != nil {
		return nil, err
	}
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers: []string{broker},
		Topic:   topicName(competitionId),
	}), nil
}
