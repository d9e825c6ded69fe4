package kafka

import (
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/samuel/go-zookeeper/zk"
)

// CoordinationClient is the external collaborator spec.md §6 calls the
// "coordination-service interface": enumerate children of a well-known
// namespace, and fetch each child's associated descriptor. spec.md treats
// the coordination service itself as out of scope/external; this interface
// is the seam the producer's bootstrap (C6) depends on.
type CoordinationClient interface {
	ListChildren(coordPath string) ([]string, error)
	GetData(coordPath string) ([]byte, error)
	Close()
}

// Default znode roots, matching the layout classic Kafka clients (including
// kafka-pixy, whose go.mod supplies the samuel/go-zookeeper dependency this
// file wires) assumed before KIP-500 removed ZooKeeper from the broker side.
const (
	BrokerIDsPath    = "/brokers/ids"
	BrokerTopicsPath = "/brokers/topics"
)

// brokerDescriptor is the small key-value record each brokers-ids child
// node's data decodes to (spec.md §6: "a descriptor parseable as a small
// key-value record carrying at least host, port, id").
type brokerDescriptor struct {
	Host string `json:"host"`
	Port int32  `json:"port"`
	ID   int32  `json:"id,omitempty"`
}

// zkCoordinationClient implements CoordinationClient against a real
// ZooKeeper ensemble via github.com/samuel/go-zookeeper/zk.
type zkCoordinationClient struct {
	conn *zk.Conn
}

// NewZKCoordinationClient connects to the given ZooKeeper ensemble.
func NewZKCoordinationClient(endpoints []string, sessionTimeout time.Duration) (CoordinationClient, error) {
	conn, _, err := zk.Connect(endpoints, sessionTimeout)
	if err != nil {
		return nil, fmt.Errorf("kafka: coordination service connect failed: %w", err)
	}
	return &zkCoordinationClient{conn: conn}, nil
}

func (c *zkCoordinationClient) ListChildren(coordPath string) ([]string, error) {
	children, _, err := c.conn.Children(coordPath)
	if err != nil {
		return nil, err
	}
	return children, nil
}

func (c *zkCoordinationClient) GetData(coordPath string) ([]byte, error) {
	data, _, err := c.conn.Get(coordPath)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *zkCoordinationClient) Close() {
	c.conn.Close()
}

// bootstrapBrokerList asks the coordination service for the current broker
// list (spec.md §4.4 step 1): enumerate BrokerIDsPath's children and decode
// each child's descriptor.
func bootstrapBrokerList(cc CoordinationClient) ([]BrokerInfo, error) {
	ids, err := cc.ListChildren(BrokerIDsPath)
	if err != nil {
		return nil, fmt.Errorf("kafka: listing %s: %w", BrokerIDsPath, err)
	}

	brokers := make([]BrokerInfo, 0, len(ids))
	for _, id := range ids {
		data, err := cc.GetData(path.Join(BrokerIDsPath, id))
		if err != nil {
			Logger.Printf("kafka: failed to fetch descriptor for broker node %s: %s\n", id, err)
			continue
		}

		var desc brokerDescriptor
		if err := json.Unmarshal(data, &desc); err != nil {
			Logger.Printf("kafka: failed to parse descriptor for broker node %s: %s\n", id, err)
			continue
		}

		brokers = append(brokers, BrokerInfo{NodeID: desc.ID, Host: desc.Host, Port: desc.Port})
	}

	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: coordination service returned no usable broker descriptors")
	}

	return brokers, nil
}
