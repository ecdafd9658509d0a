package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// CalculateDataMD5 returns the hex MD5 digest of data. Used to derive
// collision-free temp filenames for uploads.
func CalculateDataMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
