package planstate

import (
	"crypto/rand"
	"fmt"
	"time"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewEntityID generates an identifier of the form
// {prefix}-{epochMillis}-{9 random base36 chars}. The millisecond component
// keeps ids roughly sortable by creation time; the random suffix makes them
// unique within the process.
func NewEntityID(prefix string) string {
	buf := make([]byte, 9)
	// rand.Read never fails on supported platforms.
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), buf)
}
