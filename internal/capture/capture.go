package capture

// Live capture of DIS traffic with libpcap.

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
	"github.com/google/gopacket/pcapgo"

	dispcap "github.com/tturner/disgo/internal/pcap"
)

// Options selects what a capture listens to.
type Options struct {
	Interface  string // empty picks the loopback interface
	Port       int    // 0 selects dispcap.DISPort
	Snaplen    int    // 0 selects 65535
	Promisc    bool
	OutputFile string // raw frames are also written here when set
}

func (o *Options) applyDefaults() {
	if o.Port == 0 {
		o.Port = dispcap.DISPort
	}
	if o.Snaplen == 0 {
		o.Snaplen = 65535
	}
}

// BPFFilter selects UDP traffic on port plus non-first IPv4 fragments,
// which carry no UDP header but may belong to a large DIS datagram.
func BPFFilter(port int) string {
	return fmt.Sprintf("udp port %d or (ip[6:2] & 0x1fff != 0)", port)
}

// Capture represents a packet capture session
type Capture struct {
	handle    *pcap.Handle
	writer    *pcapgo.Writer
	file      *os.File
	decoder   *dispcap.Decoder
	handler   func(dispcap.DISPacket)
	startTime time.Time
	stopChan  chan struct{}
	loopDone  chan struct{}
	stopOnce  sync.Once

	mu     sync.Mutex
	frames int
	pdus   int
	errs   int
}

// StartCapture opens opts.Interface and calls fn, from a background
// goroutine, for every DIS PDU or undecodable datagram seen.
func StartCapture(opts Options, fn func(dispcap.DISPacket)) (*Capture, error) {
	opts.applyDefaults()
	if opts.Interface == "" {
		iface, err := LoopbackInterface()
		if err != nil {
			return nil, err
		}
		opts.Interface = iface
	}

	// A read timeout lets Stop close the handle without blocking forever.
	handle, err := pcap.OpenLive(opts.Interface, int32(opts.Snaplen), opts.Promisc, 500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("open live capture on %s: %w", opts.Interface, err)
	}
	if err := handle.SetBPFFilter(BPFFilter(opts.Port)); err != nil {
		handle.Close()
		return nil, fmt.Errorf("set BPF filter: %w", err)
	}

	c := &Capture{
		handle:    handle,
		decoder:   dispcap.NewDecoder(opts.Port),
		handler:   fn,
		startTime: time.Now(),
		stopChan:  make(chan struct{}),
		loopDone:  make(chan struct{}),
	}

	if opts.OutputFile != "" {
		file, err := os.Create(opts.OutputFile)
		if err != nil {
			handle.Close()
			return nil, fmt.Errorf("create pcap file: %w", err)
		}
		writer := pcapgo.NewWriter(file)
		if err := writer.WriteFileHeader(uint32(opts.Snaplen), handle.LinkType()); err != nil {
			file.Close()
			handle.Close()
			return nil, fmt.Errorf("write pcap header: %w", err)
		}
		c.file, c.writer = file, writer
	}

	go c.captureLoop()

	return c, nil
}

// Sniff captures until ctx is done and returns the capture's final
// statistics.
func Sniff(ctx context.Context, opts Options, fn func(dispcap.DISPacket)) (Stats, error) {
	c, err := StartCapture(opts, fn)
	if err != nil {
		return Stats{}, err
	}
	<-ctx.Done()
	if err := c.Stop(); err != nil {
		return c.Stats(), err
	}
	return c.Stats(), nil
}

// LoopbackInterface finds the name libpcap uses for the loopback device.
func LoopbackInterface() (string, error) {
	devices, err := pcap.FindAllDevs()
	if err != nil {
		return "", fmt.Errorf("find network devices: %w", err)
	}
	for _, device := range devices {
		for _, addr := range device.Addresses {
			if addr.IP.IsLoopback() {
				return device.Name, nil
			}
		}
	}
	for _, device := range devices {
		switch device.Name {
		case "lo", "lo0", "Loopback", "Loopback Pseudo-Interface 1":
			return device.Name, nil
		}
	}
	return "", fmt.Errorf("could not find loopback interface")
}

// Interface is a capture device reported by libpcap.
type Interface struct {
	Name        string
	Description string
	Addresses   []string
}

// ListInterfaces returns the devices available for capture.
func ListInterfaces() ([]Interface, error) {
	devices, err := pcap.FindAllDevs()
	if err != nil {
		return nil, fmt.Errorf("find network devices: %w", err)
	}
	out := make([]Interface, 0, len(devices))
	for _, d := range devices {
		iface := Interface{Name: d.Name, Description: d.Description}
		for _, a := range d.Addresses {
			iface.Addresses = append(iface.Addresses, a.IP.String())
		}
		out = append(out, iface)
	}
	return out, nil
}

func (c *Capture) captureLoop() {
	defer close(c.loopDone)
	packetSource := gopacket.NewPacketSource(c.handle, c.handle.LinkType())
	packets := packetSource.Packets()

	for {
		select {
		case <-c.stopChan:
			return
		case packet, ok := <-packets:
			if !ok {
				return
			}
			c.handlePacket(packet)
		}
	}
}

func (c *Capture) handlePacket(packet gopacket.Packet) {
	if c.writer != nil {
		ci := packet.Metadata().CaptureInfo
		if err := c.writer.WritePacket(ci, packet.Data()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write packet: %v\n", err)
		}
	}

	found := c.decoder.Packets(packet)

	c.mu.Lock()
	c.frames++
	for _, p := range found {
		if p.Err != nil {
			c.errs++
		} else {
			c.pdus++
		}
	}
	c.mu.Unlock()

	if c.handler != nil {
		for _, p := range found {
			c.handler(p)
		}
	}
}

// Stop stops the capture and closes resources (idempotent)
func (c *Capture) Stop() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stopChan)
		c.handle.Close()
		<-c.loopDone

		if c.file != nil {
			err = c.file.Close()
			c.file = nil
		}
	})
	return err
}

// Stats counts what a capture has seen so far.
type Stats struct {
	Frames  int // frames that passed the filter
	PDUs    int
	Errors  int // undecodable datagrams
	Elapsed time.Duration
}

// Stats returns the counters of the running or stopped capture.
func (c *Capture) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Frames: c.frames, PDUs: c.pdus, Errors: c.errs, Elapsed: time.Since(c.startTime)}
}
