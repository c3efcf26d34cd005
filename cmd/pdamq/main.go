// Package main is a simple single-automaton process that talks to an
// MQTT broker: simulation requests arrive on a subscription, and
// verdicts go back out.
//
// The command line args follow those for mosquitto_sub.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
	"github.com/HermanPlay/pushdown-automata-simulator/def"
)

// Request is one simulation request.
type Request struct {
	// Id is echoed in the Response.
	Id string `json:"id,omitempty"`

	// Input is the input as explicit tokens.
	Input []string `json:"input"`

	// AppendEnd appends the input-end marker.
	AppendEnd bool `json:"appendEnd,omitempty"`

	// Topic optionally overrides the response topic.
	Topic string `json:"topic,omitempty"`
}

// Response is one verdict.
type Response struct {
	Id       string `json:"id,omitempty"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Consumed int    `json:"consumed"`
	Err      string `json:"err,omitempty"`
}

func main() {

	var (
		// Follow mosquitto_sub command line args.

		broker    = flag.String("h", "tcp://localhost", "Broker hostname")
		clientId  = flag.String("i", "pdamq", "Client id")
		port      = flag.Int("p", 1883, "Broker port")
		keepAlive = flag.Int("k", 10, "Keep-alive in seconds")
		userName  = flag.String("u", "", "Username")
		password  = flag.String("P", "", "Password")
		reconnect = flag.Bool("reconnect", false, "Automatically attempt to reconnect")
		clean     = flag.Bool("c", true, "Clean session")
		quiesce   = flag.Int("quiesce", 100, "Disconnection quiescence (in milliseconds)")

		subTopic = flag.String("t", "pda/requests", "subscription topic")
		outTopic = flag.String("def-outbound-topic", "pda/verdicts", "Default out-bound message topic")

		filename = flag.String("f", "", "definition filename")
	)

	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, warnings, err := def.ParseFile(*filename)
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w.String())
	}

	mqtt.ERROR = log.New(os.Stderr, "mqtt.error", 0)

	opts := mqtt.NewClientOptions()

	opts.AddBroker(fmt.Sprintf("%s:%d", *broker, *port))
	opts.SetClientID(*clientId)
	opts.SetKeepAlive(time.Second * time.Duration(*keepAlive))

	opts.Username = *userName
	opts.Password = *password
	opts.AutoReconnect = *reconnect
	opts.CleanSession = *clean

	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Printf("MQTT connection lost")
	}

	var client mqtt.Client

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		log.Printf("incoming: %s %s", msg.Topic(), msg.Payload())

		var req Request
		res := Response{}
		if err := json.Unmarshal(msg.Payload(), &req); err != nil {
			res.Err = err.Error()
		} else {
			res.Id = req.Id

			input := make([]core.Symbol, 0, len(req.Input)+1)
			for _, token := range req.Input {
				input = append(input, core.FromToken(token))
			}
			if req.AppendEnd {
				input = append(input, core.InputEnd)
			}

			// A fresh Machine per request; the shared Config is
			// read-only.
			r, err := core.NewMachine(cfg).Run(input)
			if err != nil {
				res.Err = err.Error()
			} else {
				res.Accepted = r.Accepted
				res.Reason = r.Reason.String()
				res.Consumed = r.Consumed
			}
		}

		topic := *outTopic
		if req.Topic != "" {
			topic = req.Topic
		}

		js, err := json.Marshal(&res)
		if err != nil {
			log.Printf("Failed to marshal %#v", res)
			return
		}
		token := client.Publish(topic, 0, false, js)
		token.Wait()
		if token.Error() != nil {
			log.Printf("Publish error: %s", token.Error())
		}
	}

	client = mqtt.NewClient(opts)

	log.Printf("Attempting to connect to broker")
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal(token.Error())
	}
	log.Printf("Connected to broker")

	topic, qos := parseTopic(*subTopic)
	log.Printf("Subscribing to %s (%d)", topic, qos)
	if t := client.Subscribe(topic, qos, handler); t.Wait() && t.Error() != nil {
		log.Fatal(t.Error())
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case s := <-sig:
		log.Printf("signal %s", s)
	}

	log.Printf("Disconnecting")
	client.Disconnect(uint(*quiesce))
}

// parseTopic can extract QoS from a topic name of the form TOPIC:QOS.
func parseTopic(s string) (string, byte) {
	var topic string
	var qos byte
	if _, err := fmt.Sscanf(strings.Replace(s, ":", " ", 1), "%s %d", &topic, &qos); err != nil {
		return s, 0
	}
	return topic, qos
}
