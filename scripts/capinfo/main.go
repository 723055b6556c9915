package main

import (
	"fmt"
	"log"
	"net/netip"
	"os"
	"sort"
	"time"

	"FlowVigil/pkg/pcap"
)

// capinfo previews a capture the way the replay datapath will see it:
// packets grouped into bidirectional conversations keyed by the first
// direction observed.

type tuple struct {
	srcIP    netip.Addr
	dstIP    netip.Addr
	protocol uint8
	srcPort  uint16
	dstPort  uint16
}

type flowStat struct {
	key        tuple
	firstSeen  time.Time
	lastSeen   time.Time
	fwdPackets int
	fwdBytes   int
	revPackets int
	revBytes   int
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./scripts/capinfo <path_to_pcap_file>")
		os.Exit(1)
	}

	reader, err := pcap.NewReader(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open capture: %v", err)
	}
	defer reader.Close()

	packets := make(chan *pcap.Packet, 64)
	go reader.ReadPackets(packets)

	flows := make(map[tuple]*flowStat)
	var order []*flowStat
	total := 0

	for pkt := range packets {
		total++
		key := tuple{
			srcIP:    pkt.SrcIP,
			dstIP:    pkt.DstIP,
			protocol: pkt.Protocol,
			srcPort:  pkt.SrcPort,
			dstPort:  pkt.DstPort,
		}
		reverse := tuple{
			srcIP:    pkt.DstIP,
			dstIP:    pkt.SrcIP,
			protocol: pkt.Protocol,
			srcPort:  pkt.DstPort,
			dstPort:  pkt.SrcPort,
		}

		switch {
		case flows[key] != nil:
			s := flows[key]
			s.fwdPackets++
			s.fwdBytes += pkt.Length
			s.lastSeen = pkt.Timestamp
		case flows[reverse] != nil:
			s := flows[reverse]
			s.revPackets++
			s.revBytes += pkt.Length
			s.lastSeen = pkt.Timestamp
		default:
			s := &flowStat{
				key:        key,
				firstSeen:  pkt.Timestamp,
				lastSeen:   pkt.Timestamp,
				fwdPackets: 1,
				fwdBytes:   pkt.Length,
			}
			flows[key] = s
			order = append(order, s)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		return order[i].firstSeen.Before(order[j].firstSeen)
	})

	for _, s := range order {
		fmt.Printf("[%s] %s:%d -> %s:%d proto=%d fwd=%d/%dB rev=%d/%dB span=%s\n",
			s.firstSeen.Format("15:04:05.000"),
			s.key.srcIP, s.key.srcPort,
			s.key.dstIP, s.key.dstPort,
			s.key.protocol,
			s.fwdPackets, s.fwdBytes,
			s.revPackets, s.revBytes,
			s.lastSeen.Sub(s.firstSeen).Round(time.Millisecond),
		)
	}

	fmt.Printf("%d packets, %d conversations\n", total, len(order))
}
