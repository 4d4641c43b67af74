package http

import "time"

// ErrorResponse is the JSON body returned on request failures.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateSerialRequest registers a single serialized unit.
type CreateSerialRequest struct {
	OrderNumber string `json:"order_number"`
	PartNumber  string `json:"part_number"`
	CreatedBy   string `json:"created_by"`
}

// CreateSerialResponse returns the allocated serial code.
type CreateSerialResponse struct {
	SerialCode string `json:"serial_code"`
}

// CreateSerialBatchRequest registers several units against one order.
type CreateSerialBatchRequest struct {
	OrderNumber string `json:"order_number"`
	PartNumber  string `json:"part_number"`
	CreatedBy   string `json:"created_by"`
	Quantity    int    `json:"quantity"`
}

// CreateSerialBatchResponse returns the allocated codes in order.
type CreateSerialBatchResponse struct {
	SerialCodes []string `json:"serial_codes"`
}

// OperationActionRequest identifies the actor performing a start, release or
// approval-path action on an operation.
type OperationActionRequest struct {
	ActorID   string `json:"actor_id"`
	ActorRole string `json:"actor_role"`

	// Approve only.
	QualityPassed bool   `json:"quality_passed"`
	Notes         string `json:"notes"`

	// Reject only.
	Reason     string `json:"reason"`
	DefectType string `json:"defect_type"`
}

// ReassignOperationRequest moves a claim to another actor. An empty
// new_actor_id releases the claim back to pending.
type ReassignOperationRequest struct {
	RequestedBy   string `json:"requested_by"`
	RequestedRole string `json:"requested_role"`
	NewActorID    string `json:"new_actor_id"`
}

// AssignDefectRequest puts a defect into repair under the given repairer.
type AssignDefectRequest struct {
	RepairerID   string `json:"repairer_id"`
	RepairerRole string `json:"repairer_role"`
}

// ResolveDefectRequest closes a defect. Action is "repair" or "scrap";
// repair requires return_to_operation_id.
type ResolveDefectRequest struct {
	ResolverID          string `json:"resolver_id"`
	ResolverRole        string `json:"resolver_role"`
	Action              string `json:"action"`
	ReturnToOperationID string `json:"return_to_operation_id"`
	Notes               string `json:"notes"`
}

// SerialHistoryResponse is the header plus full record trail of one serial.
type SerialHistoryResponse struct {
	SerialCode  string                `json:"serial_code"`
	OrderNumber string                `json:"order_number"`
	Status      string                `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	Records     []SerialHistoryRecord `json:"records"`
}

// SerialHistoryRecord is one row of the process trail.
type SerialHistoryRecord struct {
	OperationID     string     `json:"operation_id"`
	OperationName   string     `json:"operation_name"`
	Sequence        int        `json:"sequence"`
	Status          string     `json:"status"`
	AssignedTo      *string    `json:"assigned_to,omitempty"`
	ProcessedBy     *string    `json:"processed_by,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	QualityPassed   bool       `json:"quality_passed"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	Superseded      bool       `json:"superseded"`
	CreatedAt       time.Time  `json:"created_at"`
}

// PendingWorkItem is one startable operation on one serial.
type PendingWorkItem struct {
	SerialCode    string    `json:"serial_code"`
	OrderNumber   string    `json:"order_number"`
	OperationID   string    `json:"operation_id"`
	OperationName string    `json:"operation_name"`
	Sequence      int       `json:"sequence"`
	WaitingSince  time.Time `json:"waiting_since"`
}

// YieldStatsResponse carries aggregated production numbers for a period.
type YieldStatsResponse struct {
	TotalSerials      int            `json:"total_serials"`
	CountsByStatus    map[string]int `json:"counts_by_status"`
	CompletedInPeriod int            `json:"completed_in_period"`
	FirstPassInPeriod int            `json:"first_pass_in_period"`
	FirstPassYield    float64        `json:"first_pass_yield"`
}

// DefectSummaryResponse carries aggregated defect numbers.
type DefectSummaryResponse struct {
	CountsByStatus map[string]int       `json:"counts_by_status"`
	CountsByType   map[string]int       `json:"counts_by_type"`
	Recent         []DefectSummaryEntry `json:"recent"`
}

// DefectSummaryEntry is one row of the recent-defects list.
type DefectSummaryEntry struct {
	DefectID    string    `json:"defect_id"`
	SerialCode  string    `json:"serial_code"`
	DefectType  string    `json:"defect_type"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reported_at"`
}
