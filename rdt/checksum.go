package rdt

import (
	"encoding/binary"
	"hash/crc32"
)

// ComputeChecksum computes the CRC-32 (IEEE) of the big-endian 4-byte
// encodings of seqnum and acknum followed by the payload bytes, mirroring
// the chained binascii.crc32(bytes, crc) calls in the original Python
// implementation.
func ComputeChecksum(p *Packet) uint32 {
	var crc uint32
	var buf [4]byte

	binary.BigEndian.PutUint32(buf[:], uint32(p.Seqnum))
	crc = crc32.Update(crc, crc32.IEEETable, buf[:])

	binary.BigEndian.PutUint32(buf[:], uint32(p.Acknum))
	crc = crc32.Update(crc, crc32.IEEETable, buf[:])

	crc = crc32.Update(crc, crc32.IEEETable, p.Payload)
	return crc
}

// InsertChecksum stamps p.Checksum with ComputeChecksum(p).
func InsertChecksum(p *Packet) {
	p.Checksum = ComputeChecksum(p)
}

// IsCorrupt reports whether p's stored checksum no longer matches its
// contents.
func IsCorrupt(p *Packet) bool {
	return ComputeChecksum(p) != p.Checksum
}
