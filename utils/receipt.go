package utils

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"
)

var mu sync.Mutex
var seededRand *rand.Rand

func init() {
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ReceiptPrefix returns the configured receipt number prefix.
func ReceiptPrefix() string {
	p := strings.TrimSpace(os.Getenv("RECEIPT_PREFIX"))
	if p == "" {
		return "HRF"
	}
	return p
}

// GenerateReceiptNumber builds a receipt number of the form PREFIX-YEAR-SUFFIX,
// e.g. HRF-2026-48291736204. The suffix combines nanosecond time with a random
// component; the storage layer additionally enforces uniqueness and the caller
// retries on a duplicate.
func GenerateReceiptNumber() string {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now()
	nanoPart := now.UnixNano() % 100000000
	randPart := seededRand.Intn(900) + 100

	return fmt.Sprintf("%s-%d-%08d%03d", ReceiptPrefix(), now.Year(), nanoPart, randPart)
}
