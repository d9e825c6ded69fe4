package kafka

// API keys (spec.md §4.3.1).
const (
	apiKeyProduce  int16 = 0
	apiKeyMetadata int16 = 3
)

// apiVersion is fixed at 0 throughout this client; spec.md pins the wire
// format to the historical shape in §4.3 rather than the teacher's flexible
// multi-version protocol.
const apiVersion int16 = 0

// requestBody is satisfied by MetadataRequest and ProduceRequest, mirroring
// the teacher's protocolBody-style interface (see
// init_producer_id_request.go: key(), encode(pe)).
type requestBody interface {
	key() int16
	encode(pe packetEncoder) error
}

// request is the length-prefixed envelope every outgoing request is wrapped
// in (spec.md §4.3.1):
//
//	int32 request_size
//	int16 api_key
//	int16 api_version
//	int32 correlation_id
//	short_string client_id
//	<api-specific body>
type request struct {
	correlationID int32
	clientID      string
	body          requestBody
}

// encode serializes the full frame, back-patching request_size once the
// body has been written (spec.md §8: request_size == total bytes after the
// request_size field itself).
func (r *request) encode() ([]byte, error) {
	pe := newRealEncoder()

	sizeOffset := pe.reserveInt32()
	bodyStart := pe.offset()

	pe.putInt16(r.body.key())
	pe.putInt16(apiVersion)
	pe.putInt32(r.correlationID)
	pe.putString(r.clientID)

	if err := r.body.encode(pe); err != nil {
		return nil, err
	}

	pe.patchInt32(sizeOffset, int32(pe.offset()-bodyStart))

	return pe.bytes(), nil
}
