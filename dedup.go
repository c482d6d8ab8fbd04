package catset

import (
	"crypto/md5" //nolint:gosec // duplicate detection, not security
	"encoding/hex"
	"io"
	"os"

	"github.com/corona10/goimagehash"
)

const (
	// md5ChunkSize bounds digest memory use regardless of file size.
	md5ChunkSize = 1 << 20

	// phashWidth/Height give a 256-bit difference hash: the image is
	// grayscaled, resized to a 17×16 grid, and each bit records whether a
	// pixel is brighter than its right neighbor.
	phashWidth  = 16
	phashHeight = 16
)

// fileMD5 returns the hex MD5 digest of the file's bytes, streamed in
// fixed-size chunks.
func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New() //nolint:gosec // duplicate detection, not security
	if _, err := io.CopyBuffer(h, f, make([]byte, md5ChunkSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// filePerceptualHash computes the 256-bit dHash of the image at path.
func filePerceptualHash(path string) (*goimagehash.ExtImageHash, error) {
	img, err := decodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return goimagehash.ExtDifferenceHash(img, phashWidth, phashHeight)
}

// phashIndex is the set of perceptual hashes accepted so far within one
// folder's near-duplicate pass. A folder pass is single-threaded, so the
// index needs no locking; scan order decides which member of a
// near-duplicate cluster is kept.
type phashIndex struct {
	threshold int
	hashes    []*goimagehash.ExtImageHash
}

// seen reports whether hash is within the Hamming threshold of any
// previously accepted hash. When it is not, the hash is accepted and stored
// for future comparisons, so no two accepted hashes are ever within the
// threshold of each other. Linear scan: folder sizes are bounded by the
// download target (hundreds, not millions).
func (idx *phashIndex) seen(hash *goimagehash.ExtImageHash) bool {
	for _, h := range idx.hashes {
		dist, err := hash.Distance(h)
		if err == nil && dist <= idx.threshold {
			return true
		}
	}
	idx.hashes = append(idx.hashes, hash)
	return false
}
