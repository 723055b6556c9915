package main

import (
	"flag"
	"log"
	"math/rand"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// flowgen writes a synthetic capture of bidirectional conversations for
// the replay datapath. Packets from all flows interleave over the capture
// window, so a replay run learns flows gradually instead of all at once.

var servicePorts = []layers.TCPPort{22, 53, 80, 443, 5432, 8080}

type conversation struct {
	srcIP   net.IP
	dstIP   net.IP
	srcPort layers.TCPPort
	dstPort layers.TCPPort
	useUDP  bool
}

func main() {
	outputFile := flag.String("o", "flows.pcap", "Output pcap file path")
	flowCount := flag.Int("flows", 50, "Number of conversations to generate")
	packetsPerFlow := flag.Int("packets", 20, "Forward packets per conversation")
	duration := flag.Duration("duration", 30*time.Second, "Capture time span")
	srcNet := flag.String("src-net", "10.1.0.0/16", "Source address prefix")
	dstNet := flag.String("dst-net", "10.2.0.0/16", "Destination address prefix")
	seed := flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	flag.Parse()

	srcPrefix, err := netip.ParsePrefix(*srcNet)
	if err != nil {
		log.Fatalf("Invalid source prefix: %v", err)
	}
	dstPrefix, err := netip.ParsePrefix(*dstNet)
	if err != nil {
		log.Fatalf("Invalid destination prefix: %v", err)
	}
	if !srcPrefix.Addr().Is4() || !dstPrefix.Addr().Is4() {
		log.Fatal("Only IPv4 prefixes are supported")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	pcapWriter := pcapgo.NewWriter(f)
	if err := pcapWriter.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		log.Fatalf("Failed to write pcap header: %v", err)
	}

	flows := make([]conversation, *flowCount)
	for i := range flows {
		flows[i] = conversation{
			srcIP:   randomAddr(rng, srcPrefix),
			dstIP:   randomAddr(rng, dstPrefix),
			srcPort: layers.TCPPort(rng.Intn(65535-1024) + 1024),
			dstPort: servicePorts[rng.Intn(len(servicePorts))],
			useUDP:  rng.Intn(4) == 0,
		}
	}

	// Forward packet plus reply per round, every flow each round.
	totalPackets := *flowCount * *packetsPerFlow * 2
	if totalPackets <= 0 {
		log.Fatal("-flows and -packets must both be positive")
	}
	step := *duration / time.Duration(totalPackets)
	ts := time.Now().Add(-*duration)

	log.Printf("Generating %d conversations (%d packets) into %s with seed %d...",
		*flowCount, totalPackets, *outputFile, *seed)

	written := 0
	for round := 0; round < *packetsPerFlow; round++ {
		for _, flow := range flows {
			payload := rng.Intn(1400) + 50
			if err := writePacket(pcapWriter, rng, flow, false, payload, ts); err != nil {
				log.Fatalf("Failed to write packet: %v", err)
			}
			ts = ts.Add(step)

			// Replies run small, like ACKs and short responses.
			if err := writePacket(pcapWriter, rng, flow, true, rng.Intn(100)+20, ts); err != nil {
				log.Fatalf("Failed to write packet: %v", err)
			}
			ts = ts.Add(step)

			written += 2
			if written%100000 == 0 {
				log.Printf("Generated %d packets...", written)
			}
		}
	}

	log.Printf("Successfully generated %d packets into %s.", written, *outputFile)
}

// randomAddr picks a uniform host address inside an IPv4 prefix.
func randomAddr(rng *rand.Rand, prefix netip.Prefix) net.IP {
	base := prefix.Masked().Addr().As4()
	hostBits := 32 - prefix.Bits()
	offset := uint32(0)
	if hostBits > 0 {
		offset = uint32(rng.Int63n(1 << hostBits))
	}
	v := uint32(base[0])<<24 | uint32(base[1])<<16 | uint32(base[2])<<8 | uint32(base[3])
	v |= offset
	return net.IPv4(byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func writePacket(w *pcapgo.Writer, rng *rand.Rand, flow conversation, reply bool, payloadSize int, ts time.Time) error {
	srcIP, dstIP := flow.srcIP, flow.dstIP
	srcPort, dstPort := flow.srcPort, flow.dstPort
	if reply {
		srcIP, dstIP = dstIP, srcIP
		srcPort, dstPort = dstPort, srcPort
	}

	ethLayer := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		DstMAC:       net.HardwareAddr{0x00, 0x66, 0x77, 0x88, 0x99, 0xAA},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ipLayer := &layers.IPv4{
		SrcIP:   srcIP,
		DstIP:   dstIP,
		Version: 4,
		TTL:     64,
	}

	payload := make([]byte, payloadSize)
	rng.Read(payload)

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		ComputeChecksums: true,
		FixLengths:       true,
	}

	if flow.useUDP {
		ipLayer.Protocol = layers.IPProtocolUDP
		udpLayer := &layers.UDP{
			SrcPort: layers.UDPPort(srcPort),
			DstPort: layers.UDPPort(dstPort),
		}
		udpLayer.SetNetworkLayerForChecksum(ipLayer)
		if err := gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, udpLayer, gopacket.Payload(payload)); err != nil {
			return err
		}
	} else {
		ipLayer.Protocol = layers.IPProtocolTCP
		tcpLayer := &layers.TCP{
			SrcPort: srcPort,
			DstPort: dstPort,
			Seq:     rng.Uint32(),
			Ack:     rng.Uint32(),
			ACK:     true,
			Window:  14600,
		}
		tcpLayer.SetNetworkLayerForChecksum(ipLayer)
		if err := gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, tcpLayer, gopacket.Payload(payload)); err != nil {
			return err
		}
	}

	ci := gopacket.CaptureInfo{
		Timestamp:     ts,
		CaptureLength: len(buf.Bytes()),
		Length:        len(buf.Bytes()),
	}
	return w.WritePacket(ci, buf.Bytes())
}
