package kafka

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Broker is a single cluster node: its id, address, and (once opened) a
// live TCP connection (spec.md §3's Broker data model).
type Broker struct {
	id   int32
	host string
	port int32

	conf *Config

	lock          sync.Mutex
	conn          net.Conn
	correlationID int32
}

// NewBroker constructs a Broker descriptor without opening a connection;
// the connection is opened lazily by Open, matching spec.md §3's "opened
// lazily or eagerly when the broker is first needed" lifetime note.
func NewBroker(id int32, host string, port int32) *Broker {
	return &Broker{id: id, host: host, port: port}
}

// ID returns the broker's node id.
func (b *Broker) ID() int32 { return b.id }

// Addr returns the broker's host:port.
func (b *Broker) Addr() string {
	return fmt.Sprintf("%s:%d", b.host, b.port)
}

// Open establishes the broker's TCP connection if it isn't already open.
func (b *Broker) Open(conf *Config) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.conf = conf
	if b.conn != nil {
		return nil
	}

	conn, err := net.DialTimeout("tcp", b.Addr(), conf.Net.DialTimeout)
	if err != nil {
		return err
	}
	b.conn = conn
	return nil
}

// Close tears down the broker's connection, if any.
func (b *Broker) Close() error {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn = nil
	return err
}

func (b *Broker) nextCorrelationID() int32 {
	return atomic.AddInt32(&b.correlationID, 1)
}

// sendRequest writes a fully-framed request to the broker's socket, and —
// unless acks is NoResponse — reads back the int32 response_size followed
// by exactly that many bytes (spec.md §4.6 steps 4-5).
func (b *Broker) sendRequest(clientID string, body requestBody, acks RequiredAcks) ([]byte, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.conn == nil {
		return nil, errors.New("kafka: broker connection is not open")
	}

	req := &request{
		correlationID: b.nextCorrelationID(),
		clientID:      clientID,
		body:          body,
	}

	frame, err := req.encode()
	if err != nil {
		return nil, PacketEncodingError{Info: err.Error()}
	}

	if b.conf.Net.WriteTimeout > 0 {
		_ = b.conn.SetWriteDeadline(time.Now().Add(b.conf.Net.WriteTimeout))
	}
	if err := writeFullRetryingEINTR(b.conn, frame); err != nil {
		return nil, err
	}

	if acks == NoResponse {
		return nil, nil
	}

	if b.conf.Net.ReadTimeout > 0 {
		_ = b.conn.SetReadDeadline(time.Now().Add(b.conf.Net.ReadTimeout))
	}

	sizeBuf := make([]byte, 4)
	if err := readFullRetryingEINTR(b.conn, sizeBuf); err != nil {
		return nil, err
	}
	size := binary.BigEndian.Uint32(sizeBuf)

	body2 := make([]byte, size)
	if err := readFullRetryingEINTR(b.conn, body2); err != nil {
		return nil, err
	}

	return body2, nil
}

// writeFullRetryingEINTR writes all of p, transparently retrying the
// underlying write on EINTR (spec.md §4.6 step 4, §7 "EINTR on any syscall
// retries the syscall transparently").
func writeFullRetryingEINTR(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if n > 0 {
			p = p[n:]
		}
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			return err
		}
	}
	return nil
}

// readFullRetryingEINTR reads exactly len(p) bytes, retrying on EINTR.
func readFullRetryingEINTR(r io.Reader, p []byte) error {
	for len(p) > 0 {
		n, err := r.Read(p)
		if n > 0 {
			p = p[n:]
		}
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			if errors.Is(err, io.EOF) && len(p) > 0 {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// Metadata issues a Metadata request to this broker for the given topics
// (empty means "all topics", spec.md §4.3.2) and decodes the response.
func (b *Broker) Metadata(clientID string, topics []string) (*MetadataResponse, error) {
	raw, err := b.sendRequest(clientID, &MetadataRequest{Topics: topics}, WaitForLocal)
	if err != nil {
		return nil, err
	}
	resp := &MetadataResponse{}
	if _, err := readResponse(raw, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Produce issues a Produce request to this broker. If acks is NoResponse,
// the returned response is nil and the request is considered tentatively
// successful (spec.md §4.6 step 5).
func (b *Broker) Produce(clientID string, req *ProduceRequest) (*ProduceResponse, error) {
	raw, err := b.sendRequest(clientID, req, req.RequiredAcks)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	resp := &ProduceResponse{}
	if _, err := readResponse(raw, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
