package tele

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"

	"github.com/ivarc/trinkey-indicator/helpers"
	tele_config "github.com/ivarc/trinkey-indicator/internal/tele/config"
	"github.com/ivarc/trinkey-indicator/log2"
)

type transportMqtt struct {
	log  *log2.Log
	m    mqtt.Client
	mopt *mqtt.ClientOptions

	topicConnect string
	topicState   string
}

func (self *transportMqtt) Init(ctx context.Context, log *log2.Log, cfg tele_config.Config) error {
	self.log = log

	if cfg.MqttBroker == "" {
		return errors.NotValidf("tele config: mqtt_broker empty")
	}
	self.mopt = self.makeOptions(cfg)
	self.m = mqtt.NewClient(self.mopt)
	// network trouble is not an Init failure; ConnectRetry keeps trying
	// in background, failures surface in onConnectionLost
	self.m.Connect()
	return nil
}

func (self *transportMqtt) makeOptions(cfg tele_config.Config) *mqtt.ClientOptions {
	clientId := cfg.DeviceName
	if clientId == "" {
		clientId = "alsa-indicator"
	}
	credFun := func() (string, string) {
		return clientId, cfg.MqttPassword
	}
	self.topicConnect = fmt.Sprintf("%s/c", clientId)
	self.topicState = fmt.Sprintf("%s/w/state", clientId)
	keepAlive := helpers.IntSecondDefault(cfg.KeepaliveSec, 60*time.Second)
	pingTimeout := helpers.IntSecondDefault(cfg.PingTimeoutSec, 30*time.Second)

	return mqtt.NewClientOptions().
		AddBroker(cfg.MqttBroker).
		SetBinaryWill(self.topicConnect, []byte{0x00}, 1, true).
		SetCleanSession(false).
		SetClientID(clientId).
		SetCredentialsProvider(credFun).
		SetKeepAlive(keepAlive).
		SetPingTimeout(pingTimeout).
		SetOrderMatters(false).
		SetOnConnectHandler(self.onConnect).
		SetConnectionLostHandler(self.onConnectionLost).
		SetConnectRetry(true)
}

func (self *transportMqtt) SendState(payload []byte) bool {
	token := self.m.Publish(self.topicState, 1, true, payload)
	if !token.WaitTimeout(DefaultNetworkTimeout) {
		self.log.Debugf("tele mqtt state timeout")
		return false
	}
	if err := token.Error(); err != nil {
		self.log.Errorf("tele mqtt state err=%v", err)
		return false
	}
	return true
}

func (self *transportMqtt) Close() {
	if self.m != nil {
		self.m.Publish(self.topicConnect, 1, true, []byte{0x00})
		self.m.Disconnect(uint(DefaultNetworkTimeout.Milliseconds()))
	}
}

func (self *transportMqtt) onConnect(c mqtt.Client) {
	self.log.Debugf("tele mqtt connected")
	c.Publish(self.topicConnect, 1, true, []byte{0x01})
}

func (self *transportMqtt) onConnectionLost(c mqtt.Client, err error) {
	self.log.Debugf("tele mqtt connection lost err=%v", err)
}
