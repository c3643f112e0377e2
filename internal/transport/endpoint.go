package transport

// UDP endpoint for DIS traffic.
//
// DIS applications exchange PDUs as UDP datagrams, by convention on port
// 3000, using unicast, broadcast or multicast addressing. A datagram may
// carry several PDUs back to back.

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/ipv4"

	"github.com/tturner/disgo/internal/config"
	"github.com/tturner/disgo/internal/dis/pdu"
)

// maxDatagram is the largest UDP payload and the largest DIS PDU.
const maxDatagram = 65535

// EndpointConfig configures a DIS UDP endpoint.
type EndpointConfig struct {
	Mode          string // unicast, broadcast or multicast
	Address       string // unicast peer or broadcast address
	Group         string // multicast group
	Port          int    // destination port
	ListenAddress string // local bind address, default ":<Port>"
	Interface     string // multicast interface name, empty = default
	TTL           int
	Loopback      bool
	ReadBuffer    int
}

// EndpointConfigFrom builds an endpoint configuration from the network
// section of a config file.
func EndpointConfigFrom(n config.NetworkConfig) EndpointConfig {
	return EndpointConfig{
		Mode:       n.Mode,
		Address:    n.Address,
		Group:      n.MulticastGroup,
		Port:       n.Port,
		Interface:  n.Interface,
		TTL:        n.TTL,
		Loopback:   n.Loopback,
		ReadBuffer: n.ReadBuffer,
	}
}

func (c *EndpointConfig) applyDefaults() {
	if c.Mode == "" {
		c.Mode = config.ModeBroadcast
	}
	if c.Port == 0 {
		c.Port = config.DefaultPort
	}
	if c.Mode == config.ModeBroadcast && c.Address == "" {
		c.Address = config.DefaultBroadcast
	}
	if c.Group == "" {
		c.Group = config.DefaultMulticastGroup
	}
	if c.TTL == 0 {
		c.TTL = config.DefaultTTL
	}
	if c.ListenAddress == "" {
		c.ListenAddress = ":" + strconv.Itoa(c.Port)
	}
}

// destination returns the host the endpoint sends to.
func (c *EndpointConfig) destination() string {
	if c.Mode == config.ModeMulticast {
		return c.Group
	}
	return c.Address
}

// Datagram is one received UDP payload and the PDUs decoded from it.
type Datagram struct {
	Raw      []byte
	From     *net.UDPAddr
	Received time.Time
	PDUs     []pdu.PDU // PDUs decoded before Err, if any
	Err      error     // decode failure; the datagram itself was read
}

// Exercise returns the PDUs of d that belong to exercise id. Zero matches
// every exercise.
func (d Datagram) Exercise(id uint8) []pdu.PDU {
	if id == 0 {
		return d.PDUs
	}
	var out []pdu.PDU
	for _, p := range d.PDUs {
		if p.Header().ExerciseID == id {
			out = append(out, p)
		}
	}
	return out
}

// Endpoint sends and receives DIS PDUs over UDP.
type Endpoint struct {
	cfg    EndpointConfig
	conn   *net.UDPConn
	pconn  *ipv4.PacketConn
	ifi    *net.Interface
	dest   *net.UDPAddr
	connMu sync.RWMutex
}

// NewEndpoint creates an endpoint. Call Open before sending or receiving.
func NewEndpoint(cfg EndpointConfig) *Endpoint {
	cfg.applyDefaults()
	return &Endpoint{cfg: cfg}
}

// Config returns the effective configuration, defaults applied.
func (e *Endpoint) Config() EndpointConfig {
	return e.cfg
}

// Open binds the local socket and, in multicast mode, joins the group.
func (e *Endpoint) Open(ctx context.Context) error {
	e.connMu.Lock()
	defer e.connMu.Unlock()

	if e.conn != nil {
		return fmt.Errorf("already open")
	}

	switch e.cfg.Mode {
	case config.ModeUnicast, config.ModeBroadcast, config.ModeMulticast:
	default:
		return fmt.Errorf("unknown network mode %q", e.cfg.Mode)
	}

	var dest *net.UDPAddr
	if host := e.cfg.destination(); host != "" {
		var err error
		dest, err = net.ResolveUDPAddr("udp4", net.JoinHostPort(host, strconv.Itoa(e.cfg.Port)))
		if err != nil {
			return fmt.Errorf("resolve %s: %w", host, err)
		}
	}

	lc := net.ListenConfig{Control: socketControl(e.cfg.Mode == config.ModeBroadcast)}
	pc, err := lc.ListenPacket(ctx, "udp4", e.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen UDP %s: %w", e.cfg.ListenAddress, err)
	}
	conn := pc.(*net.UDPConn)

	if e.cfg.ReadBuffer > 0 {
		// Not fatal; the kernel may cap the size.
		_ = conn.SetReadBuffer(e.cfg.ReadBuffer)
	}

	var ifi *net.Interface
	if e.cfg.Interface != "" {
		ifi, err = net.InterfaceByName(e.cfg.Interface)
		if err != nil {
			_ = conn.Close()
			return fmt.Errorf("interface %q: %w", e.cfg.Interface, err)
		}
	}

	var p *ipv4.PacketConn
	if e.cfg.Mode == config.ModeMulticast {
		if dest == nil || !dest.IP.IsMulticast() {
			_ = conn.Close()
			return fmt.Errorf("invalid multicast group address: %s", e.cfg.Group)
		}
		p = ipv4.NewPacketConn(conn)
		if err := p.JoinGroup(ifi, &net.UDPAddr{IP: dest.IP}); err != nil {
			_ = conn.Close()
			return fmt.Errorf("join multicast group %s: %w", dest.IP, err)
		}
		if ifi != nil {
			if err := p.SetMulticastInterface(ifi); err != nil {
				_ = conn.Close()
				return fmt.Errorf("set multicast interface: %w", err)
			}
		}
		if err := p.SetMulticastTTL(e.cfg.TTL); err != nil {
			_ = conn.Close()
			return fmt.Errorf("set multicast TTL: %w", err)
		}
		if err := p.SetMulticastLoopback(e.cfg.Loopback); err != nil {
			_ = conn.Close()
			return fmt.Errorf("set multicast loopback: %w", err)
		}
	}

	e.conn = conn
	e.pconn = p
	e.ifi = ifi
	e.dest = dest
	return nil
}

// Close leaves the multicast group, if any, and closes the socket.
func (e *Endpoint) Close() error {
	e.connMu.Lock()
	defer e.connMu.Unlock()

	if e.conn == nil {
		return nil
	}
	if e.pconn != nil && e.dest != nil {
		_ = e.pconn.LeaveGroup(e.ifi, &net.UDPAddr{IP: e.dest.IP})
	}
	err := e.conn.Close()
	e.conn = nil
	e.pconn = nil
	return err
}

// IsOpen returns whether the socket is open.
func (e *Endpoint) IsOpen() bool {
	e.connMu.RLock()
	defer e.connMu.RUnlock()
	return e.conn != nil
}

// LocalAddr returns the bound address, or nil when closed.
func (e *Endpoint) LocalAddr() *net.UDPAddr {
	e.connMu.RLock()
	defer e.connMu.RUnlock()
	if e.conn == nil {
		return nil
	}
	return e.conn.LocalAddr().(*net.UDPAddr)
}

// Send encodes p and sends it as one datagram.
func (e *Endpoint) Send(ctx context.Context, p pdu.PDU) error {
	b, err := pdu.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.Type(), err)
	}
	return e.SendRaw(ctx, b)
}

// SendBatch packs ps into a single datagram. The total must fit in one UDP
// payload.
func (e *Endpoint) SendBatch(ctx context.Context, ps ...pdu.PDU) error {
	var b []byte
	for _, p := range ps {
		var err error
		if b, err = pdu.Append(b, p); err != nil {
			return fmt.Errorf("encode %s: %w", p.Type(), err)
		}
	}
	if len(b) > maxDatagram {
		return fmt.Errorf("batch of %d PDUs is %d bytes, larger than one datagram", len(ps), len(b))
	}
	return e.SendRaw(ctx, b)
}

// SendRaw sends b unchanged to the configured destination.
func (e *Endpoint) SendRaw(ctx context.Context, b []byte) error {
	e.connMu.RLock()
	defer e.connMu.RUnlock()

	if e.conn == nil {
		return fmt.Errorf("not open")
	}
	if e.dest == nil {
		return fmt.Errorf("no destination address configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := e.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	_, err := e.conn.WriteToUDP(b, e.dest)
	return err
}

// Receive waits up to timeout for one datagram and decodes the PDUs in it.
// A datagram that does not decode is still returned, with Err set; the
// error result is reserved for socket failures and timeouts.
func (e *Endpoint) Receive(ctx context.Context, timeout time.Duration) (Datagram, error) {
	// The lock only guards the conn field. Close may run while the read is
	// blocked, which ends it with net.ErrClosed.
	e.connMu.RLock()
	conn := e.conn
	e.connMu.RUnlock()

	if conn == nil {
		return Datagram{}, fmt.Errorf("not open")
	}
	if err := ctx.Err(); err != nil {
		return Datagram{}, err
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return Datagram{}, fmt.Errorf("set read deadline: %w", err)
	}

	buf := make([]byte, maxDatagram)
	n, from, err := conn.ReadFromUDP(buf)
	if err != nil {
		return Datagram{}, fmt.Errorf("read DIS datagram: %w", err)
	}

	raw := make([]byte, n)
	copy(raw, buf)
	d := Datagram{
		Raw:      raw,
		From:     from,
		Received: time.Now(),
	}
	d.PDUs, d.Err = pdu.DecodeAll(d.Raw)
	return d, nil
}

// IsTimeout reports whether err is a read or write deadline expiry.
func IsTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
