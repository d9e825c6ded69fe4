package kafka

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"
	"testing"
)

// fakeBroker is a minimal in-process broker used to exercise the wire
// protocol end to end without a real cluster: it accepts TCP connections,
// decodes request envelopes itself, and answers Metadata/Produce requests
// through caller-supplied handlers. Grounded in the length-prefixed framing
// this package itself writes (request.go, response.go) rather than any
// particular mock-broker library, since the retrieval pack carried none for
// this spec's reduced two-request protocol.
type fakeBroker struct {
	t        *testing.T
	listener net.Listener

	onMetadata func(reqNum int) *MetadataResponse
	onProduce  func(reqNum int, req *ProduceRequest) *ProduceResponse

	mu           sync.Mutex
	produceCount int
}

func (fb *fakeBroker) nextProduceRequestNumber() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := fb.produceCount
	fb.produceCount++
	return n
}

func startFakeBroker(t *testing.T) *fakeBroker {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start fake broker listener: %s", err)
	}
	fb := &fakeBroker{t: t, listener: ln}
	go fb.acceptLoop()
	t.Cleanup(func() { _ = ln.Close() })
	return fb
}

func (fb *fakeBroker) port() int32 {
	return int32(fb.listener.Addr().(*net.TCPAddr).Port)
}

func (fb *fakeBroker) acceptLoop() {
	for {
		conn, err := fb.listener.Accept()
		if err != nil {
			return
		}
		go fb.handleConn(conn)
	}
}

func (fb *fakeBroker) handleConn(conn net.Conn) {
	defer conn.Close()

	for {
		sizeBuf := make([]byte, 4)
		if _, err := io.ReadFull(conn, sizeBuf); err != nil {
			return
		}
		size := binary.BigEndian.Uint32(sizeBuf)

		body := make([]byte, size)
		if _, err := io.ReadFull(conn, body); err != nil {
			return
		}

		pd := newRealDecoder(body)
		apiKey, _ := pd.getInt16()
		_, _ = pd.getInt16() // api_version
		correlationID, _ := pd.getInt32()
		_, _ = pd.getString() // client_id

		switch apiKey {
		case apiKeyMetadata:
			req := &MetadataRequest{}
			_ = req.decode(pd)
			resp := fb.onMetadata(0)
			frame, err := encodeResponseFrame(correlationID, resp)
			if err != nil {
				return
			}
			if _, err := conn.Write(frame); err != nil {
				return
			}

		case apiKeyProduce:
			req := &ProduceRequest{}
			_ = req.decode(pd)
			n := fb.nextProduceRequestNumber()
			resp := fb.onProduce(n, req)
			if req.RequiredAcks == NoResponse {
				continue
			}
			frame, err := encodeResponseFrame(correlationID, resp)
			if err != nil {
				return
			}
			if _, err := conn.Write(frame); err != nil {
				return
			}

		default:
			return
		}
	}
}

// fakeCoordinationClient hands out a single broker descriptor pointing at a
// fakeBroker, enough to drive bootstrap/Refresh (coordination.go) in tests
// without a real ZooKeeper ensemble.
type fakeCoordinationClient struct {
	host string
	port int32
	id   int32
}

func (f *fakeCoordinationClient) ListChildren(coordPath string) ([]string, error) {
	if coordPath != BrokerIDsPath {
		return nil, nil
	}
	return []string{fmt.Sprint(f.id)}, nil
}

func (f *fakeCoordinationClient) GetData(coordPath string) ([]byte, error) {
	return json.Marshal(brokerDescriptor{Host: f.host, Port: f.port, ID: f.id})
}

func (f *fakeCoordinationClient) Close() {}
