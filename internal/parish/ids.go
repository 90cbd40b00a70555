package parish

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	dErrors "sgip/pkg/domain-errors"
)

// Identifier formats are a compatibility contract with printed cards and
// register books: FID-#### member numbers, prefix-<unix-ms> record ids,
// VERIF- keys on sacrament certificates. Generation is collision-checked
// against the live collection, which the original random scheme skipped.

const memberIDAttempts = 32

// newMemberID draws a FID-#### id (1000-9999) not present per exists.
func newMemberID(exists func(string) bool) (string, error) {
	for i := 0; i < memberIDAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(9000))
		if err != nil {
			return "", fmt.Errorf("could not draw member id: %w", err)
		}
		id := fmt.Sprintf("FID-%d", 1000+n.Int64())
		if !exists(id) {
			return id, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInternal, "member id space exhausted")
}

// timestampID builds prefix-<unix-ms>, bumping the millisecond until the
// id is free. Two records in the same millisecond stay distinguishable.
func timestampID(prefix string, now time.Time, exists func(string) bool) string {
	ms := now.UnixMilli()
	for {
		id := fmt.Sprintf("%s-%d", prefix, ms)
		if !exists(id) {
			return id
		}
		ms++
	}
}

// transactionID builds T-<unix-ms>-<random>.
func transactionID(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("could not draw transaction id: %w", err)
	}
	return fmt.Sprintf("T-%d-%06d", now.UnixMilli(), n.Int64()), nil
}

const verificationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newVerificationKey issues a VERIF- prefixed 6-character uppercase
// alphanumeric anti-fraud token, never reused per exists.
func newVerificationKey(exists func(string) bool) (string, error) {
	for {
		buf := make([]byte, 6)
		for i := range buf {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(verificationAlphabet))))
			if err != nil {
				return "", fmt.Errorf("could not draw verification key: %w", err)
			}
			buf[i] = verificationAlphabet[n.Int64()]
		}
		key := "VERIF-" + string(buf)
		if !exists(key) {
			return key, nil
		}
	}
}
