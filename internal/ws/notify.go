package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type AssignmentsCreatedEvent struct {
	Type       string `json:"type"`
	EmployeeID string `json:"employee_id"`
	Count      int    `json:"count"`
	Timestamp  string `json:"timestamp"`
}

type BandsRecalculatedEvent struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Updated   int    `json:"updated"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyAssignmentsCreated announces that new course assignments were created
// for an employee. A missing hub makes this a no-op so usecases never depend
// on the websocket layer being wired.
func NotifyAssignmentsCreated(employeeID uuid.UUID, count int) {
	h := defaultHub.Load()
	if h == nil || count <= 0 {
		return
	}

	evt := AssignmentsCreatedEvent{
		Type:       "assignments_created",
		EmployeeID: employeeID.String(),
		Count:      count,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func NotifyBandsRecalculated(total, updated int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := BandsRecalculatedEvent{
		Type:      "bands_recalculated",
		Total:     total,
		Updated:   updated,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
