package kafka

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientBootstrapAndLeaderLookup(t *testing.T) {
	fb := startFakeBroker(t)
	meta := twoPartitionTestTopic(0)
	meta.Brokers[0].Port = fb.port()
	fb.onMetadata = func(int) *MetadataResponse { return meta }

	cc := &fakeCoordinationClient{host: "127.0.0.1", port: fb.port(), id: 0}

	conf := NewConfig()
	client, err := NewClient(cc, conf)
	require.NoError(t, err)
	defer client.Close()

	leader, err := client.Leader("test", 0)
	require.NoError(t, err)
	require.Equal(t, int32(0), leader.ID())

	_, err = client.Leader("test", 99)
	require.ErrorIs(t, err, ErrLeaderNotAvailable)

	_, err = client.Leader("missing-topic", 0)
	require.ErrorIs(t, err, ErrUnknownTopicOrPartition)

	partitions, err := client.Partitions("test")
	require.NoError(t, err)
	require.Len(t, partitions, 2)
}

func TestClientRefreshRebuildsTopology(t *testing.T) {
	fb := startFakeBroker(t)
	meta := twoPartitionTestTopic(0)
	meta.Brokers[0].Port = fb.port()
	fb.onMetadata = func(int) *MetadataResponse { return meta }

	cc := &fakeCoordinationClient{host: "127.0.0.1", port: fb.port(), id: 0}

	client, err := NewClient(cc, NewConfig())
	require.NoError(t, err)
	defer client.Close()

	before := client.topologySnapshot()
	require.NoError(t, client.Refresh())
	after := client.topologySnapshot()

	require.NotSame(t, before, after)
}
