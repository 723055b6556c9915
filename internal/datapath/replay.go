package datapath

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"FlowVigil/internal/config"
	"FlowVigil/internal/model"
	"FlowVigil/pkg/pcap"
)

func init() {
	Register("replay", func(cfg config.DatapathConfig, deps Deps) (model.Datapath, error) {
		return newReplayPlayer(cfg, deps)
	})
}

// replayPlayer synthesizes flows from a packet capture. It advances a
// virtual clock at wall speed from the capture's first timestamp, so
// counters grow between scan passes the way a live source's would. Once
// the capture runs out the flows idle and age normally.
type replayPlayer struct {
	learner  *learner
	interval time.Duration
	path     string

	packets []*pcap.Packet
	pos     int
	flows   map[model.FlowKey]*observation

	done chan struct{}
	wg   sync.WaitGroup
}

func newReplayPlayer(cfg config.DatapathConfig, deps Deps) (*replayPlayer, error) {
	if cfg.PcapPath == "" {
		return nil, fmt.Errorf("replay datapath requires pcap_path")
	}
	interval := time.Second
	if cfg.PollInterval != "" {
		var err error
		interval, err = time.ParseDuration(cfg.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("failed to parse poll_interval: %w", err)
		}
	}
	return &replayPlayer{
		learner:  newLearner(deps),
		interval: interval,
		path:     cfg.PcapPath,
		flows:    make(map[model.FlowKey]*observation),
		done:     make(chan struct{}),
	}, nil
}

func (p *replayPlayer) Start() error {
	reader, err := pcap.NewReader(p.path)
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}
	ch := make(chan *pcap.Packet, 64)
	go reader.ReadPackets(ch)
	for pkt := range ch {
		p.packets = append(p.packets, pkt)
	}
	reader.Close()

	if len(p.packets) == 0 {
		return fmt.Errorf("capture %s contains no usable packets", p.path)
	}
	sort.SliceStable(p.packets, func(i, j int) bool {
		return p.packets[i].Timestamp.Before(p.packets[j].Timestamp)
	})

	p.wg.Add(1)
	go p.run()
	log.Printf("Replay datapath started: %d packets from %s", len(p.packets), p.path)
	return nil
}

func (p *replayPlayer) Stop() {
	close(p.done)
	p.wg.Wait()
	log.Println("Replay datapath stopped.")
}

func (p *replayPlayer) Sample(handle uint32) (model.CounterSample, bool) {
	return p.learner.Sample(handle)
}

func (p *replayPlayer) run() {
	defer p.wg.Done()
	base := p.packets[0].Timestamp
	started := time.Now()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			cutoff := base.Add(time.Since(started))
			p.applyUpTo(cutoff, time.Now())
			if p.pos == len(p.packets) {
				log.Println("Replay capture exhausted; flows will idle out.")
				return
			}
		}
	}
}

// applyUpTo folds every packet at or before the cutoff into the per flow
// accumulators and reports the touched flows to the learner. The first
// packet of a tuple fixes the forward direction.
func (p *replayPlayer) applyUpTo(cutoff time.Time, now time.Time) int {
	dirty := make(map[model.FlowKey]*observation)
	for p.pos < len(p.packets) && !p.packets[p.pos].Timestamp.After(cutoff) {
		pkt := p.packets[p.pos]
		p.pos++

		key := p.keyOf(pkt)
		if obs, ok := p.flows[key]; ok {
			obs.bytes += uint64(pkt.Length)
			obs.packets++
			dirty[obs.key] = obs
			continue
		}
		rkey := reverseOf(key)
		if obs, ok := p.flows[rkey]; ok {
			obs.revBytes += uint64(pkt.Length)
			obs.revPackets++
			dirty[obs.key] = obs
			continue
		}
		obs := &observation{
			key:        key,
			reverseKey: rkey,
			bytes:      uint64(pkt.Length),
			packets:    1,
			start:      pkt.Timestamp,
		}
		p.flows[key] = obs
		dirty[key] = obs
	}

	for _, obs := range dirty {
		p.learner.observe(*obs, now)
	}
	return len(dirty)
}

func (p *replayPlayer) keyOf(pkt *pcap.Packet) model.FlowKey {
	return model.FlowKey{
		VRF:      p.learner.deps.VRFID,
		SrcIP:    pkt.SrcIP,
		DstIP:    pkt.DstIP,
		Protocol: pkt.Protocol,
		SrcPort:  pkt.SrcPort,
		DstPort:  pkt.DstPort,
	}
}

func reverseOf(key model.FlowKey) model.FlowKey {
	return model.FlowKey{
		VRF:      key.VRF,
		SrcIP:    key.DstIP,
		DstIP:    key.SrcIP,
		Protocol: key.Protocol,
		SrcPort:  key.DstPort,
		DstPort:  key.SrcPort,
	}
}
