package report

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTSink publishes each snapshot as JSON telemetry.
type MQTTSink struct {
	client mqtt.Client
	topic  string
}

func NewMQTTSink(broker, clientID, topic string) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connect: %w", token.Error())
	}
	fmt.Println("Report: connected to MQTT broker at", broker)
	return &MQTTSink{client: client, topic: topic}, nil
}

func (m *MQTTSink) Publish(s Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	// QoS 0, fire and forget: telemetry must never stall the cycle.
	m.client.Publish(m.topic, 0, false, payload)
	return nil
}

func (m *MQTTSink) Close() {
	m.client.Disconnect(250)
}
