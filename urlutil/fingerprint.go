package urlutil

import "encoding/hex"

// Fingerprint returns the hex digest of rawURL's fingerprint form using the
// configured algorithm.
//
// The fingerprint form ignores the caller's query and path switches: every
// query and path normalization is applied, and only the tracking parameter
// list is taken from the configuration. URLs that differ only in parameter
// order, repeated keys or tracking parameters therefore share a fingerprint.
func (n *Normalizer) Fingerprint(rawURL string) (string, error) {
	return n.FingerprintWith(rawURL, n.cfg.Algorithm)
}

// FingerprintWith is Fingerprint with an explicit digest algorithm.
func (n *Normalizer) FingerprintWith(rawURL string, algo Algorithm) (string, error) {
	h, err := algo.newHash()
	if err != nil {
		return "", err
	}

	c, err := n.normalize(rawURL, n.cfg.fingerprintConfig())
	if err != nil {
		return "", err
	}

	h.Write([]byte(Build(c)))
	return hex.EncodeToString(h.Sum(nil)), nil
}
