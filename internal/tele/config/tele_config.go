package tele_config

type Config struct { //nolint:maligned
	Enable         bool   `hcl:"enable"`
	DeviceName     string `hcl:"device_name"`
	LogDebug       bool   `hcl:"log_debug"`
	KeepaliveSec   int    `hcl:"keepalive_sec"`
	PingTimeoutSec int    `hcl:"ping_timeout_sec"`
	MqttBroker     string `hcl:"mqtt_broker"`
	MqttPassword   string `hcl:"mqtt_password"`
	PersistPath    string `hcl:"persist_path"`
}
