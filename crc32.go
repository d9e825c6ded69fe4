package kafka

import "hash/crc32"

// crc32IEEE computes the CRC-32 used by the message frame (spec.md §4.1,
// §4.3.4). It matches the original C client's `crc32(0, buf, len)` call
// (original_source/src/serialize.c): zlib's crc32() takes the *running*
// checksum as its first argument and starting it from 0 yields the standard
// CRC-32/IEEE value (polynomial 0xEDB88320, reflected), which is exactly
// Go's crc32.ChecksumIEEE.
func crc32IEEE(p []byte) uint32 {
	return crc32.ChecksumIEEE(p)
}
