// Package serial provides the Serial aggregate root: a tracked manufacturing
// unit identified by a structured code, moving through the catalog of
// operations in strict sequence order.
//
// The package includes:
//   - Serial: the aggregate root owning the per-operation ProcessRecords and
//     deriving its own status from them after every mutation
//   - ProcessRecord: the per-operation progress entity with its own
//     Pending -> InProgress -> Approved/Rejected state machine
//   - Code: the serial number value object ([YEAR][MONTH]###-###M) with pure
//     parse, format and successor logic used by the allocator
//   - Status: the derived unit status (Created, InProcess, Completed,
//     Rejected, Defective, Scrapped)
//
// Key business rules:
//   - An operation at sequence N can only be started or approved once every
//     active operation below N holds an approved record
//   - An actor holds at most one in-progress record at a time; the
//     system-wide part of that rule is enforced by the command layer inside
//     a transaction, the aggregate enforces it within a single serial
//   - Rejecting a record opens a defect and forces the serial to Defective;
//     a repair return supersedes the rejected records and issues fresh
//     pending ones, it never revives a rejected record
//   - Unit status is never set directly; it is recomputed from the record
//     set, except for the terminal Scrapped resolution
package serial
