// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// ToVarint64 - little-endian groups of seven bits, high bit set on
// every byte but the last; the ninth byte carries a full eight bits
func ToVarint64(value uint64) []byte {
	result := make([]byte, 0, Varint64MaximumBytes)
	if value < 0x80 {
		result = append(result, byte(value))
		return result
	}

	for i := 0; i < Varint64MaximumBytes && value != 0; i += 1 {
		ext := uint64(0x80)
		if value < 0x80 {
			ext = 0x00
		}
		result = append(result, byte(value|ext))
		value >>= 7
	}
	return result
}

// FromVarint64 - convert an array of up to Varint64MaximumBytes to a uint64
//
// also return the number of bytes used as second value
// returns 0, 0 if varint64 buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)

	shift := uint(0)
	count := 0

	for count < len(buffer) {
		currByte := uint64(buffer[count])
		count += 1
		if count < Varint64MaximumBytes {
			result |= currByte & 0x7f << shift
			if 0 == currByte&0x80 {
				return result, count
			}
		} else {
			result |= currByte << shift
			return result, count
		}
		shift += 7
	}
	return 0, 0
}

// ZigZag64 - map a signed value onto an unsigned one so that small
// magnitudes of either sign give short Varint64 encodings
func ZigZag64(value int64) uint64 {
	return uint64(value<<1) ^ uint64(value>>63)
}

// UnZigZag64 - inverse of ZigZag64
func UnZigZag64(value uint64) int64 {
	return int64(value>>1) ^ -int64(value&1)
}

// IsMinimalVarint64 - true if the first count bytes of buffer are
// exactly what ToVarint64 would produce for value
func IsMinimalVarint64(value uint64, count int) bool {
	return count == len(ToVarint64(value))
}
