package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jasonrobot/sexp-parser/publisher"
	"github.com/jasonrobot/sexp-parser/sexp"
	"github.com/jasonrobot/sexp-parser/source"
)

type constErr string

func (e constErr) Error() string { return string(e) }

// errQueueDepth indicates a queue depth that could not hold a single record.
const errQueueDepth = constErr("queue depth must be at least 1")

type config struct {
	LogLevel    string
	Input       string
	Filter      string
	MetricsAddr string
	MaxDepth    int
	MaxRecord   int
	QueueDepth  int
	Strict      bool
	MQTT        publisher.MQTTOptions
}

func defEnvStr(k, dval string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return dval
}

func defEnvInt(k string, dval int) int {
	if v, ok := os.LookupEnv(k); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return dval
}

func defEnvBool(k string, dval bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return dval
}

func (c *config) Load(args []string) error {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.LogLevel, "log-level", defEnvStr("LOG_LEVEL", "info"), "logging level (debug, info, error)")
	fs.StringVar(&c.Input, "input", defEnvStr("INPUT", "-"), "file to read records from, - for stdin")
	fs.StringVar(&c.Filter, "filter", defEnvStr("RECORD_FILTER", ""), "record selection filter")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", defEnvStr("METRICS_ADDR", ""), "IP:Port to bind for /metrics endpoint")
	fs.IntVar(&c.MaxDepth, "max-depth", defEnvInt("MAX_DEPTH", sexp.DefaultMaxDepth), "deepest nesting allowed in a record")
	fs.IntVar(&c.MaxRecord, "max-record", defEnvInt("MAX_RECORD", source.DefaultMaxRecord), "largest record in bytes")
	fs.IntVar(&c.QueueDepth, "queue-depth", defEnvInt("QUEUE_DEPTH", 10000), "records held waiting to publish before dropping")
	fs.BoolVar(&c.Strict, "strict", defEnvBool("STRICT_RECORDS", false), "stop at the first incomplete record instead of skipping it")

	fs.StringVar(&c.MQTT.Broker, "broker", defEnvStr("BROKER", ""), "MQTT broker, records are written to stdout when empty")
	fs.StringVar(&c.MQTT.ClientID, "client-id", defEnvStr("CLIENT_ID", ""), "MQTT Client ID")
	fs.StringVar(&c.MQTT.Topic, "topic", defEnvStr("TOPIC", "records"), "MQTT publishing topic for records")
	fs.StringVar(&c.MQTT.TLSKeyFile, "key-file", defEnvStr("KEY_FILE", ""), "MQTT TLS key file (pem)")
	fs.StringVar(&c.MQTT.TLSCertFile, "cert-file", defEnvStr("CERT_FILE", ""), "MQTT TLS cert file (pem)")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if c.QueueDepth < 1 {
		return fmt.Errorf("%d: %w", c.QueueDepth, errQueueDepth)
	}
	return nil
}
