package utils

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ==================== UUID & ULID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// GenerateULID returns a lexicographically sortable id, monotonic within a process.
func GenerateULID() string {
	return ulid.Make().String()
}

// ==================== ORDER ID ====================

func GenerateOrderID(now time.Time) string {
	// Format: BOOK-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.IntN(10000))

	return fmt.Sprintf("BOOK-%s-%s-%s", datePart, timePart, randomPart)
}

// ==================== TICKET CODE ====================

// GenerateTicketCode returns the code printed on a ticket.
// Format: ETK-<order id>-<seat>-<6 digits>
func GenerateTicketCode(orderID, seatID string) string {
	return fmt.Sprintf("ETK-%s-%s-%06d", orderID, seatID, 100000+rand.IntN(900000))
}
