package sink

import (
	"log"

	"github.com/nats-io/nats.go"
	"google.golang.org/protobuf/proto"

	"FlowVigil/internal/config"
	"FlowVigil/internal/model"
)

// Publisher publishes statistics records to a NATS subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
	agent   string
}

// NewPublisher creates a new NATS publisher. The agent name is stamped
// onto every record so the store can tell exporting nodes apart.
func NewPublisher(cfg config.NATSConfig, agent string) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &Publisher{nc: nc, subject: cfg.Subject, agent: agent}, nil
}

// Export serializes one record to Protobuf and publishes it to the
// configured NATS subject.
func (p *Publisher) Export(rec *model.StatsRecord) error {
	data, err := proto.Marshal(ToProto(rec, p.agent))
	if err != nil {
		return err
	}
	return p.nc.Publish(p.subject, data)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}
