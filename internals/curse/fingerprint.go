package curse

import "os"

// CurseForge fingerprints files with a murmur2 variant computed over the
// file with every whitespace byte removed, so the same jar hashes the same
// regardless of line endings.
// Ported from https://github.com/meza/curseforge-fingerprint

const (
	fingerprintSeed      uint32 = 1
	fingerprintMultiplex uint32 = 1540483477
)

// Fingerprint computes the CurseForge fingerprint of data
func Fingerprint(data []byte) uint32 {
	length := uint32(0)
	for _, b := range data {
		if !isFingerprintWhitespace(b) {
			length++
		}
	}

	num2 := fingerprintSeed ^ length
	var num3, num4 uint32

	for _, b := range data {
		if isFingerprintWhitespace(b) {
			continue
		}

		num3 |= uint32(b) << num4
		num4 += 8
		if num4 == 32 {
			num6 := num3 * fingerprintMultiplex
			num7 := (num6 ^ num6>>24) * fingerprintMultiplex
			num2 = num2*fingerprintMultiplex ^ num7
			num3 = 0
			num4 = 0
		}
	}

	if num4 > 0 {
		num2 = (num2 ^ num3) * fingerprintMultiplex
	}

	num6 := (num2 ^ num2>>13) * fingerprintMultiplex
	return num6 ^ num6>>15
}

// FingerprintFile computes the CurseForge fingerprint of the file at path
func FingerprintFile(path string) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return Fingerprint(data), nil
}

func isFingerprintWhitespace(b byte) bool {
	return b == 9 || b == 10 || b == 13 || b == 32
}
