// Package laz holds the conversion task: one LAZ file in, one LAS file out.
//
// lazconv never parses point-cloud data itself. Codec is the seam where an
// external decompressor plugs in; Laszip drives the LAStools binary, and tests
// substitute CodecFunc fakes. Failures to decode a source surface as
// *DecodeError, which matches ErrDecode under errors.Is.
package laz
