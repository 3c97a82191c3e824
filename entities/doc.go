// Package entities declares the business-level records ingested by the
// routing engine: Order, Technician, Catchment, and the Skill/SkillSet and
// Option[T] helpers they share.
//
// Entities are constructed once per plan request and are immutable value
// types thereafter; they carry derived fields (Order.LatestStartMinute,
// Technician.ShiftEndMinute, Technician.BreakStartMinute) computed at
// construction time so downstream packages never recompute them.
package entities
