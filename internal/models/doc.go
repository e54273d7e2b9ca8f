// Package models defines the core domain models for fairsplit.
//
// # Bill models
//
// The settlement engine works on these:
//   - BillState: items, people, tax, tip and coverage rules of one bill
//   - Item: a receipt line with weighted assignments to people
//   - Person: someone at the table
//   - CoverAssignment: one person's share is paid by another person or the group
//
// # History models
//
//   - BillRecord: a frozen BillState snapshot with status (draft or finalized)
//   - User: a registered account that owns a bill history
//
// # Design Principles
//
// 1. **Values, not pointers**: BillState is passed by value and never mutated by readers
// 2. **IDs for relationships**: items and coverage rules reference people by ID string
// 3. **Derived fields are methods**: the subtotal is always the sum of item prices
// 4. **Explicit variants**: a coverage payer is a person or the rest of the group, never a magic string
package models
