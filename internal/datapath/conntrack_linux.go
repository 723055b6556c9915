//go:build linux

package datapath

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ti-mo/conntrack"

	"FlowVigil/internal/config"
	"FlowVigil/internal/model"
)

func init() {
	Register("conntrack", func(cfg config.DatapathConfig, deps Deps) (model.Datapath, error) {
		return newConntrackPoller(cfg, deps)
	})
}

// conntrackPoller learns flows by periodically dumping the kernel
// connection tracking table over netlink.
type conntrackPoller struct {
	learner  *learner
	interval time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
}

func newConntrackPoller(cfg config.DatapathConfig, deps Deps) (*conntrackPoller, error) {
	interval := time.Second
	if cfg.PollInterval != "" {
		var err error
		interval, err = time.ParseDuration(cfg.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("failed to parse poll_interval: %w", err)
		}
	}
	return &conntrackPoller{
		learner:  newLearner(deps),
		interval: interval,
		done:     make(chan struct{}),
	}, nil
}

func (p *conntrackPoller) Start() error {
	enableAccounting()

	// Fail fast when the netlink socket is unavailable.
	conn, err := conntrack.Dial(nil)
	if err != nil {
		return fmt.Errorf("failed to open conntrack socket: %w", err)
	}
	conn.Close()

	p.wg.Add(1)
	go p.run()
	log.Printf("Conntrack datapath started, polling every %s", p.interval)
	return nil
}

func (p *conntrackPoller) Stop() {
	close(p.done)
	p.wg.Wait()
	log.Println("Conntrack datapath stopped.")
}

func (p *conntrackPoller) Sample(handle uint32) (model.CounterSample, bool) {
	return p.learner.Sample(handle)
}

func (p *conntrackPoller) run() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			if err := p.pollOnce(); err != nil {
				log.Printf("Failed to poll conntrack: %v", err)
			}
		}
	}
}

func (p *conntrackPoller) pollOnce() error {
	conn, err := conntrack.Dial(nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	flows, err := conn.DumpFilter(conntrack.NewFilter(), nil)
	if err != nil {
		return err
	}

	now := time.Now()
	p.learner.beginSweep()
	for i := range flows {
		obs, ok := observationFromFlow(&flows[i], p.learner.deps.VRFID)
		if !ok {
			continue
		}
		p.learner.observe(obs, now)
	}
	p.learner.prune()
	return nil
}

// observationFromFlow converts one netlink flow. Entries without valid
// tuple addresses, such as unconfirmed template entries, are dropped.
func observationFromFlow(f *conntrack.Flow, vrf uint32) (observation, bool) {
	src := f.TupleOrig.IP.SourceAddress
	dst := f.TupleOrig.IP.DestinationAddress
	replySrc := f.TupleReply.IP.SourceAddress
	replyDst := f.TupleReply.IP.DestinationAddress
	if !src.IsValid() || !dst.IsValid() || !replySrc.IsValid() || !replyDst.IsValid() {
		return observation{}, false
	}
	return observation{
		key: model.FlowKey{
			VRF:      vrf,
			SrcIP:    src.Unmap(),
			DstIP:    dst.Unmap(),
			Protocol: f.TupleOrig.Proto.Protocol,
			SrcPort:  f.TupleOrig.Proto.SourcePort,
			DstPort:  f.TupleOrig.Proto.DestinationPort,
		},
		reverseKey: model.FlowKey{
			VRF:      vrf,
			SrcIP:    replySrc.Unmap(),
			DstIP:    replyDst.Unmap(),
			Protocol: f.TupleReply.Proto.Protocol,
			SrcPort:  f.TupleReply.Proto.SourcePort,
			DstPort:  f.TupleReply.Proto.DestinationPort,
		},
		bytes:      f.CountersOrig.Bytes,
		packets:    f.CountersOrig.Packets,
		revBytes:   f.CountersReply.Bytes,
		revPackets: f.CountersReply.Packets,
		start:      f.Timestamp.Start,
		nat:        f.Status.SrcNAT() || f.Status.DstNAT(),
		dying:      f.Status.Dying(),
	}, true
}

// enableAccounting asks the kernel to keep per connection counters and
// timestamps. Without them flows still age on elapsed time, so failures
// only cost precision.
func enableAccounting() {
	for _, param := range []string{
		"net/netfilter/nf_conntrack_acct",
		"net/netfilter/nf_conntrack_timestamp",
	} {
		if err := os.WriteFile("/proc/sys/"+param, []byte("1"), 0644); err != nil {
			log.Printf("Could not enable %s: %v", param, err)
		}
	}
}
