/*
Package digest computes SHA1 digests and renders them as 40-character
lowercase hexadecimal strings.

Byte sequences and strings hash their bytes directly. Slices of fixed-size
numeric values hash their little-endian memory representation, so a []uint32
of n elements contributes 4*n bytes. Empty input is valid and yields the
digest of zero bytes.
*/
package digest
