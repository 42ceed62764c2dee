package icon

import (
	"encoding/binary"
	"errors"
)

var errShortRecord = errors.New("record: short buffer")

// Record is one generated icon as kept in the manifest.
type Record struct {
	Size       int
	Path       string
	UnixTime   int64
	Checksum   uint32
	PHash      uint64
	GlyphDrawn bool
}

const recordFixedLen = 8 + 4 + 8 + 1

func (r Record) Marshal() (out []byte) {
	out = binary.BigEndian.AppendUint64(out, uint64(r.UnixTime))
	out = binary.BigEndian.AppendUint32(out, r.Checksum)
	out = binary.BigEndian.AppendUint64(out, r.PHash)
	var flags byte
	if r.GlyphDrawn {
		flags |= 1
	}
	out = append(out, flags)
	out = binary.AppendUvarint(out, uint64(r.Size))
	out = binary.AppendUvarint(out, uint64(len(r.Path)))
	out = append(out, r.Path...)
	return
}

func (r *Record) Unmarshal(p []byte) error {
	if len(p) < recordFixedLen {
		return errShortRecord
	}
	r.UnixTime, p = int64(binary.BigEndian.Uint64(p)), p[8:]
	r.Checksum, p = binary.BigEndian.Uint32(p), p[4:]
	r.PHash, p = binary.BigEndian.Uint64(p), p[8:]
	r.GlyphDrawn, p = p[0]&1 != 0, p[1:]

	tmp, w := binary.Uvarint(p)
	if w <= 0 {
		return errShortRecord
	}
	r.Size, p = int(tmp), p[w:]

	tmp, w = binary.Uvarint(p)
	if w <= 0 || uint64(len(p[w:])) < tmp {
		return errShortRecord
	}
	p = p[w:]
	r.Path = string(p[:tmp])
	return nil
}
