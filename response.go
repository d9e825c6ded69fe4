package kafka

// responseBody is satisfied by MetadataResponse and ProduceResponse.
type responseBody interface {
	decode(pd packetDecoder) error
}

// responseBodyEncoder is the encode-side counterpart, used by tests and by
// the in-memory fake broker to fabricate wire-exact response frames.
type responseBodyEncoder interface {
	encode(pe packetEncoder) error
}

// encodeResponseFrame builds a full length-prefixed response frame:
//
//	int32 response_size
//	int32 correlation_id
//	<api-specific body>
//
// matching the receive side of spec.md §4.3.3/§4.3.5.
func encodeResponseFrame(correlationID int32, body responseBodyEncoder) ([]byte, error) {
	pe := newRealEncoder()

	sizeOffset := pe.reserveInt32()
	bodyStart := pe.offset()

	pe.putInt32(correlationID)
	if err := body.encode(pe); err != nil {
		return nil, err
	}

	pe.patchInt32(sizeOffset, int32(pe.offset()-bodyStart))

	return pe.bytes(), nil
}

// readResponse reads a length-prefixed response frame off conn-supplied
// bytes (the int32 response_size has already been consumed by the caller,
// which needs it to know how many more bytes to read from the socket — see
// broker.go) and decodes the correlation id plus body.
func readResponse(raw []byte, body responseBody) (correlationID int32, err error) {
	pd := newRealDecoder(raw)

	correlationID, err = pd.getInt32()
	if err != nil {
		return 0, err
	}

	if err := body.decode(pd); err != nil {
		return correlationID, err
	}

	return correlationID, nil
}
