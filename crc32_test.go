package kafka

import "testing"

func TestCRC32IEEEMatchesSpecVector(t *testing.T) {
	// spec.md §8 concrete scenario 2's 21-byte message suffix.
	suffix := []byte{
		0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0x00, 0x0B,
		'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd',
	}
	if got := crc32IEEE(suffix); got != 0x73ACF77C {
		t.Errorf("crc32IEEE = 0x%08X, want 0x73ACF77C", got)
	}
}
