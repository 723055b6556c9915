package pcap

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

func tcpFrame(t *testing.T, src, dst string, sport, dport uint16, payload int) []byte {
	t.Helper()
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 1},
		DstMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 2},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.ParseIP(src).To4(),
		DstIP:    net.ParseIP(dst).To4(),
	}
	tcp := &layers.TCP{SrcPort: layers.TCPPort(sport), DstPort: layers.TCPPort(dport)}
	if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatalf("failed to bind checksum layer: %v", err)
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp, gopacket.Payload(make([]byte, payload))); err != nil {
		t.Fatalf("failed to serialize tcp frame: %v", err)
	}
	return buf.Bytes()
}

func udpFrame(t *testing.T, src, dst string, sport, dport uint16, payload int) []byte {
	t.Helper()
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 1},
		DstMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 2},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.ParseIP(src).To4(),
		DstIP:    net.ParseIP(dst).To4(),
	}
	udp := &layers.UDP{SrcPort: layers.UDPPort(sport), DstPort: layers.UDPPort(dport)}
	if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatalf("failed to bind checksum layer: %v", err)
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(make([]byte, payload))); err != nil {
		t.Fatalf("failed to serialize udp frame: %v", err)
	}
	return buf.Bytes()
}

func arpFrame(t *testing.T) []byte {
	t.Helper()
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 1},
		DstMAC:       net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		EthernetType: layers.EthernetTypeARP,
	}
	arp := &layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte{0x02, 0, 0, 0, 0, 1},
		SourceProtAddress: []byte{10, 1, 0, 5},
		DstHwAddress:      make([]byte, 6),
		DstProtAddress:    []byte{10, 1, 0, 1},
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, arp); err != nil {
		t.Fatalf("failed to serialize arp frame: %v", err)
	}
	return buf.Bytes()
}

func writeCapture(t *testing.T, frames [][]byte, base time.Time) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pcap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create capture file: %v", err)
	}
	defer f.Close()

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		t.Fatalf("failed to write capture header: %v", err)
	}
	for i, data := range frames {
		ci := gopacket.CaptureInfo{
			Timestamp:     base.Add(time.Duration(i) * time.Second),
			CaptureLength: len(data),
			Length:        len(data),
		}
		if err := w.WritePacket(ci, data); err != nil {
			t.Fatalf("failed to write packet %d: %v", i, err)
		}
	}
	return path
}

func TestReaderReadPackets(t *testing.T) {
	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	path := writeCapture(t, [][]byte{
		tcpFrame(t, "10.1.0.5", "10.2.0.9", 33000, 443, 100),
		arpFrame(t),
		udpFrame(t, "10.1.0.6", "10.2.0.9", 5353, 53, 40),
	}, base)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	defer reader.Close()

	out := make(chan *Packet)
	go reader.ReadPackets(out)

	var packets []*Packet
	for pkt := range out {
		packets = append(packets, pkt)
	}

	// The ARP frame is skipped, leaving the TCP and UDP packets.
	if len(packets) != 2 {
		t.Fatalf("read %d packets, want 2", len(packets))
	}
	first := packets[0]
	if first.SrcIP.String() != "10.1.0.5" || first.DstIP.String() != "10.2.0.9" {
		t.Errorf("addresses = %s -> %s, want 10.1.0.5 -> 10.2.0.9", first.SrcIP, first.DstIP)
	}
	if first.Protocol != 6 || first.SrcPort != 33000 || first.DstPort != 443 {
		t.Errorf("tuple = proto %d %d -> %d, want 6 33000 -> 443", first.Protocol, first.SrcPort, first.DstPort)
	}
	if !first.Timestamp.Equal(base) {
		t.Errorf("timestamp = %s, want %s", first.Timestamp, base)
	}
	if second := packets[1]; second.Protocol != 17 {
		t.Errorf("second packet protocol = %d, want 17", second.Protocol)
	}
}

func TestParseReportsWireLength(t *testing.T) {
	data := tcpFrame(t, "10.1.0.5", "10.2.0.9", 33000, 443, 100)
	ci := gopacket.CaptureInfo{
		Timestamp:     time.Now(),
		CaptureLength: len(data),
		Length:        1500,
	}

	pkt, err := Parse(data, ci)
	if err != nil {
		t.Fatalf("failed to parse frame: %v", err)
	}
	// The wire length counts, not the possibly truncated capture.
	if pkt.Length != 1500 {
		t.Errorf("length = %d, want the wire length 1500", pkt.Length)
	}
}

func TestParseRejectsNonIP(t *testing.T) {
	data := arpFrame(t)
	if _, err := Parse(data, gopacket.CaptureInfo{CaptureLength: len(data), Length: len(data)}); err == nil {
		t.Fatal("expected an error for a non-IP frame")
	}
}
