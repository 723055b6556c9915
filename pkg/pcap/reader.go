package pcap

import (
	"fmt"
	"io"
	"log"
	"net/netip"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Packet is one decoded TCP or UDP packet from a capture.
type Packet struct {
	Timestamp time.Time
	SrcIP     netip.Addr
	DstIP     netip.Addr
	Protocol  uint8
	SrcPort   uint16
	DstPort   uint16
	Length    int
}

// Reader reads packets from a pcap file.
type Reader struct {
	file *os.File
	r    *pcapgo.Reader
}

// NewReader creates a new pcap reader for the given file path.
func NewReader(filePath string) (*Reader, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	r, err := pcapgo.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read pcap header: %w", err)
	}
	return &Reader{file: f, r: r}, nil
}

// Close closes the underlying file.
func (r *Reader) Close() {
	r.file.Close()
}

// ReadPackets reads all packets from the pcap file and sends the decoded
// ones to the provided channel. It closes the channel when done. Frames
// that are not IP over TCP or UDP are skipped.
func (r *Reader) ReadPackets(out chan<- *Packet) {
	defer close(out)
	for {
		data, ci, err := r.r.ReadPacketData()
		if err != nil {
			if err != io.EOF {
				log.Printf("Error reading packet: %v", err)
			}
			return
		}
		pkt, err := Parse(data, ci)
		if err != nil {
			continue
		}
		out <- pkt
	}
}

// Parse decodes one raw Ethernet frame into a Packet.
func Parse(data []byte, ci gopacket.CaptureInfo) (*Packet, error) {
	packet := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)

	pkt := &Packet{Timestamp: ci.Timestamp, Length: ci.Length}
	if pkt.Length == 0 {
		pkt.Length = len(data)
	}

	if l := packet.Layer(layers.LayerTypeIPv4); l != nil {
		ip := l.(*layers.IPv4)
		src, ok := netip.AddrFromSlice(ip.SrcIP)
		if !ok {
			return nil, fmt.Errorf("bad IPv4 source address")
		}
		dst, ok := netip.AddrFromSlice(ip.DstIP)
		if !ok {
			return nil, fmt.Errorf("bad IPv4 destination address")
		}
		pkt.SrcIP = src.Unmap()
		pkt.DstIP = dst.Unmap()
		pkt.Protocol = uint8(ip.Protocol)
	} else if l := packet.Layer(layers.LayerTypeIPv6); l != nil {
		ip := l.(*layers.IPv6)
		src, ok := netip.AddrFromSlice(ip.SrcIP)
		if !ok {
			return nil, fmt.Errorf("bad IPv6 source address")
		}
		dst, ok := netip.AddrFromSlice(ip.DstIP)
		if !ok {
			return nil, fmt.Errorf("bad IPv6 destination address")
		}
		pkt.SrcIP = src
		pkt.DstIP = dst
		pkt.Protocol = uint8(ip.NextHeader)
	} else {
		return nil, fmt.Errorf("not an IP packet")
	}

	if l := packet.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		pkt.SrcPort = uint16(tcp.SrcPort)
		pkt.DstPort = uint16(tcp.DstPort)
	} else if l := packet.Layer(layers.LayerTypeUDP); l != nil {
		udp := l.(*layers.UDP)
		pkt.SrcPort = uint16(udp.SrcPort)
		pkt.DstPort = uint16(udp.DstPort)
	} else {
		return nil, fmt.Errorf("not a TCP or UDP packet")
	}

	return pkt, nil
}
