package headlines

import "github.com/cespare/xxhash/v2"

// fingerprint hashes a headline list. Collisions only cost a skipped update.
func fingerprint(headlines []string) uint64 {
	d := xxhash.New()
	for _, h := range headlines {
		d.WriteString(h)
		d.Write([]byte{0})
	}
	return d.Sum64()
}
